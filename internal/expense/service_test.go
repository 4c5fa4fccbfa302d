package expense

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"

	"github.com/fkhayef/splitledger/internal/database/dbtest"
	"github.com/fkhayef/splitledger/internal/debt"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/money"
)

const (
	alice int64 = 1
	bob   int64 = 2
	carol int64 = 3
)

type fixture struct {
	db     *sql.DB
	svc    *Service
	debts  *debt.Service
	groups *group.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	debts := debt.NewService(debt.NewRepository(db))
	groups := group.NewService(group.NewRepository(db))
	factory := split.NewSplitStrategyFactory(split.WithRand(rand.New(rand.NewPCG(3, 4))))
	return &fixture{
		db:     db,
		svc:    NewService(db, NewRepository(db), factory, debts, groups),
		debts:  debts,
		groups: groups,
	}
}

func weight(v float64) *float64 { return &v }

func people(ids ...int64) []*SplitParticipant {
	out := make([]*SplitParticipant, len(ids))
	for i, id := range ids {
		out[i] = &SplitParticipant{UserID: id}
	}
	return out
}

func TestCalculate(t *testing.T) {
	is := is.New(t)
	f := setup(t)

	got, err := f.svc.Calculate(&CreateExpenseRequest{
		Amount:      100,
		PayersSplit: "AMOUNT",
		Payers: []*SplitParticipant{
			{UserID: alice, Weight: weight(60)},
			{UserID: bob, Weight: weight(40)},
		},
		OwersSplit: "EQUALLY",
		Owers:      people(alice, bob, carol),
	})
	is.NoErr(err)
	is.Equal(len(got), 3)
	is.Equal(got[alice].Paid, money.Amount(6000))
	is.Equal(got[carol].Paid, money.Amount(0))
	is.Equal(money.SumMap(Totals(got)), money.Amount(0))

	var owed money.Amount
	for _, b := range got {
		owed += b.Owed
		is.True(b.Owed == 3333 || b.Owed == 3334)
	}
	is.Equal(owed, money.Amount(10000))
}

func TestCalculateRejects(t *testing.T) {
	base := func() *CreateExpenseRequest {
		return &CreateExpenseRequest{
			Amount:      50,
			PayersSplit: "EQUALLY",
			Payers:      people(alice),
			OwersSplit:  "EQUALLY",
			Owers:       people(alice, bob),
		}
	}
	badGroup := int64(0)

	tests := []struct {
		name   string
		modify func(*CreateExpenseRequest)
		want   error
	}{
		{"zero amount", func(r *CreateExpenseRequest) { r.Amount = 0 }, ErrInvalidAmount},
		{"sub-cent amount", func(r *CreateExpenseRequest) { r.Amount = 0.004 }, ErrInvalidAmount},
		{"huge amount", func(r *CreateExpenseRequest) { r.Amount = 1.9e17 }, money.ErrAmountOutOfRange},
		{
			"huge amount weight",
			func(r *CreateExpenseRequest) {
				r.PayersSplit = "AMOUNT"
				r.Payers = []*SplitParticipant{{UserID: alice, Weight: weight(1.9e17)}}
			},
			money.ErrAmountOutOfRange,
		},
		{"bad group", func(r *CreateExpenseRequest) { r.GroupID = &badGroup }, group.ErrInvalidGroupID},
		{"no payers", func(r *CreateExpenseRequest) { r.Payers = nil }, split.ErrNoParticipants},
		{"unknown split", func(r *CreateExpenseRequest) { r.OwersSplit = "SHARES" }, split.ErrUnknownSplitType},
		{"null participant", func(r *CreateExpenseRequest) { r.Owers = []*SplitParticipant{nil} }, ErrInvalidParticipant},
		{"duplicate ower", func(r *CreateExpenseRequest) { r.Owers = people(bob, bob) }, split.ErrDuplicateParticipant},
		{
			"amounts off",
			func(r *CreateExpenseRequest) {
				r.PayersSplit = "AMOUNT"
				r.Payers = []*SplitParticipant{{UserID: alice, Weight: weight(49.99)}}
			},
			split.ErrInvalidAmounts,
		},
		{
			"percentages off",
			func(r *CreateExpenseRequest) {
				r.OwersSplit = "PERCENTAGE"
				r.Owers = []*SplitParticipant{{UserID: alice, Weight: weight(50)}, {UserID: bob, Weight: weight(40)}}
			},
			split.ErrInvalidPercentages,
		},
		{
			"missing weight",
			func(r *CreateExpenseRequest) { r.OwersSplit = "PERCENTAGE" },
			split.ErrMissingWeight,
		},
	}

	f := setup(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			req := base()
			tt.modify(req)
			_, err := f.svc.Calculate(req)
			is.True(errors.Is(err, tt.want))
		})
	}
}

func TestCreateDirectExpense(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx := context.Background()

	result, err := f.svc.CreateExpense(ctx, alice, &CreateExpenseRequest{
		Category:    "food",
		Description: " dinner ",
		Amount:      100,
		PayersSplit: "EQUALLY",
		Payers:      people(alice),
		OwersSplit:  "EQUALLY",
		Owers:       people(alice, bob),
	})
	is.NoErr(err)
	is.True(result.Expense.ID != 0)
	is.Equal(result.Expense.Description, "dinner")
	is.Equal(result.Balances[bob].Total, money.Amount(-5000))

	d, err := f.debts.Find(ctx, alice, bob, nil)
	is.NoErr(err)
	is.Equal(d.Amount, money.Amount(5000))
	is.Equal(*d.Description, "dinner")

	// bob pays the next one and it nets against the first
	_, err = f.svc.CreateExpense(ctx, bob, &CreateExpenseRequest{
		Amount:      30,
		PayersSplit: "EQUALLY",
		Payers:      people(bob),
		OwersSplit:  "EQUALLY",
		Owers:       people(alice, bob),
	})
	is.NoErr(err)

	d, err = f.debts.Find(ctx, alice, bob, nil)
	is.NoErr(err)
	is.Equal(d.Amount, money.Amount(3500))

	_, err = f.debts.Find(ctx, bob, alice, nil)
	is.True(errors.Is(err, debt.ErrDebtNotFound))

	got, err := f.svc.GetExpenseByID(ctx, result.Expense.ID)
	is.NoErr(err)
	is.Equal(got.Expense.Category, "food")
	is.Equal(got.Expense.GroupID, (*int64)(nil))
	is.Equal(got.Expense.PayersSplit, split.SplitTypeEqually)
	is.Equal(got.Balances, result.Balances)
}

func TestCreateGroupExpense(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx := context.Background()
	trip := int64(5)

	_, err := f.svc.CreateExpense(ctx, alice, &CreateExpenseRequest{
		GroupID:     &trip,
		Amount:      90,
		PayersSplit: "AMOUNT",
		Payers: []*SplitParticipant{
			{UserID: alice, Weight: weight(60)},
			{UserID: bob, Weight: weight(30)},
		},
		OwersSplit: "EQUALLY",
		Owers:      people(alice, bob, carol),
	})
	is.NoErr(err)

	balances, err := f.groups.Balances(ctx, trip)
	is.NoErr(err)
	is.Equal(balances, map[int64]money.Amount{alice: 3000, bob: 0, carol: -3000})

	// group expenses never touch the pairwise ledger
	summary, err := f.debts.Summary(ctx, alice)
	is.NoErr(err)
	is.Equal(len(summary.Lent), 0)

	expenses, total, err := f.svc.ListExpensesByGroupID(ctx, trip, 1, 10)
	is.NoErr(err)
	is.Equal(total, 1)
	is.Equal(*expenses[0].GroupID, trip)
}

func TestCreateExpenseRollsBack(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx := context.Background()

	_, err := f.db.ExecContext(ctx, `DROP TABLE debts`)
	is.NoErr(err)

	_, err = f.svc.CreateExpense(ctx, alice, &CreateExpenseRequest{
		Amount:      10,
		PayersSplit: "EQUALLY",
		Payers:      people(alice),
		OwersSplit:  "EQUALLY",
		Owers:       people(bob),
	})
	is.True(err != nil)

	var count int
	is.NoErr(f.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&count))
	is.Equal(count, 0)
	is.NoErr(f.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expense_balances`).Scan(&count))
	is.Equal(count, 0)

	_, err = f.svc.GetExpenseByID(ctx, 1)
	is.True(errors.Is(err, ErrExpenseNotFound))
}
