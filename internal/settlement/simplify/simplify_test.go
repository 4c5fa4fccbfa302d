package simplify

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"

	"github.com/fkhayef/splitledger/internal/money"
)

func TestSimplifyExample(t *testing.T) {
	is := is.New(t)

	got := Simplify(map[int64]money.Amount{1: -70, 2: -30, 3: 50, 4: 30, 5: 20})

	is.Equal(got, []Transaction{
		{DebtorID: 1, CreditorID: 3, Amount: 50},
		{DebtorID: 2, CreditorID: 4, Amount: 30},
		{DebtorID: 1, CreditorID: 5, Amount: 20},
	})
}

func TestSimplifyEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		balances map[int64]money.Amount
		want     []Transaction
	}{
		{name: "empty", balances: nil, want: nil},
		{name: "all zero", balances: map[int64]money.Amount{1: 0, 2: 0}, want: nil},
		{
			name:     "one pair",
			balances: map[int64]money.Amount{7: 1250, 9: -1250},
			want:     []Transaction{{DebtorID: 9, CreditorID: 7, Amount: 1250}},
		},
		{
			name:     "tie goes to lower id",
			balances: map[int64]money.Amount{1: 100, 2: 100, 3: -100, 4: -100},
			want: []Transaction{
				{DebtorID: 3, CreditorID: 1, Amount: 100},
				{DebtorID: 4, CreditorID: 2, Amount: 100},
			},
		},
		{
			name:     "unbalanced settles the smaller side",
			balances: map[int64]money.Amount{1: 100, 2: -40},
			want:     []Transaction{{DebtorID: 2, CreditorID: 1, Amount: 40}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(Simplify(tt.balances), tt.want)
		})
	}
}

func TestSimplifyProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 200; round++ {
		n := 2 + r.IntN(12)
		balances := make(map[int64]money.Amount, n)
		var sum money.Amount
		for id := int64(1); id < int64(n); id++ {
			b := money.Amount(r.IntN(20001) - 10000)
			balances[id] = b
			sum += b
		}
		balances[int64(n)] = -sum

		var positive money.Amount
		for _, b := range balances {
			if b > 0 {
				positive += b
			}
		}

		txns := Simplify(balances)

		if len(txns) > n-1 {
			t.Fatalf("round %d: %d payments for %d users", round, len(txns), n)
		}

		left := make(map[int64]money.Amount, n)
		for id, b := range balances {
			left[id] = b
		}
		var moved money.Amount
		for _, tx := range txns {
			if tx.Amount <= 0 {
				t.Fatalf("round %d: non-positive payment %+v", round, tx)
			}
			left[tx.DebtorID] += tx.Amount
			left[tx.CreditorID] -= tx.Amount
			moved += tx.Amount
		}
		for id, b := range left {
			if b != 0 {
				t.Fatalf("round %d: user %d left at %d", round, id, b)
			}
		}
		if moved != positive {
			t.Fatalf("round %d: moved %d, want %d", round, moved, positive)
		}
	}
}

func TestCheckZeroSum(t *testing.T) {
	is := is.New(t)

	is.NoErr(CheckZeroSum(map[int64]money.Amount{1: 10, 2: -10}))
	is.NoErr(CheckZeroSum(nil))

	err := CheckZeroSum(map[int64]money.Amount{1: 10, 2: -9})
	is.True(errors.Is(err, ErrUnbalanced))
	is.Equal(err.Error(), "balances do not sum to zero: off by 0.01")
}
