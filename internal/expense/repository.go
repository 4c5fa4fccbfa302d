package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/money"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpenseTx inserts an expense inside a caller-owned transaction and
// fills in its ID
func (r *Repository) CreateExpenseTx(ctx context.Context, tx database.DBTX, e *Expense) error {
	query := `
		INSERT INTO expenses (creator_id, group_id, category, description, amount, payers_split, owers_split, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := tx.QueryRowContext(ctx, query,
		e.CreatorID,
		database.NullID(e.GroupID),
		e.Category,
		e.Description,
		int64(e.Amount),
		string(e.PayersSplit),
		string(e.OwersSplit),
		e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// CreateBalancesTx stores the per-user balances of an expense
func (r *Repository) CreateBalancesTx(ctx context.Context, tx database.DBTX, expenseID int64, balances map[int64]Balance) error {
	query := `
		INSERT INTO expense_balances (expense_id, user_id, paid, owed, total)
		VALUES ($1, $2, $3, $4, $5)
	`

	for userID, b := range balances {
		if _, err := tx.ExecContext(ctx, query, expenseID, userID, int64(b.Paid), int64(b.Owed), int64(b.Total)); err != nil {
			return fmt.Errorf("failed to create expense balance: %w", err)
		}
	}

	return nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT id, creator_id, group_id, category, description, amount, payers_split, owers_split, created_at
		FROM expenses
		WHERE id = $1
	`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// GetBalancesByExpenseID retrieves the per-user balances of an expense
func (r *Repository) GetBalancesByExpenseID(ctx context.Context, expenseID int64) (map[int64]Balance, error) {
	query := `
		SELECT user_id, paid, owed, total
		FROM expense_balances
		WHERE expense_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[int64]Balance)
	for rows.Next() {
		var userID, paid, owed, total int64
		if err := rows.Scan(&userID, &paid, &owed, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense balance: %w", err)
		}
		balances[userID] = Balance{
			Paid:  money.Amount(paid),
			Owed:  money.Amount(owed),
			Total: money.Amount(total),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense balances: %w", err)
	}

	return balances, nil
}

// ListExpensesByGroupID retrieves a page of a group's expenses, newest first
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, creator_id, group_id, category, description, amount, payers_split, owers_split, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*Expense, error) {
	e := &Expense{}
	var (
		groupID     sql.NullInt64
		amount      int64
		payersSplit string
		owersSplit  string
	)
	err := row.Scan(
		&e.ID,
		&e.CreatorID,
		&groupID,
		&e.Category,
		&e.Description,
		&amount,
		&payersSplit,
		&owersSplit,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.GroupID = database.IDPtr(groupID)
	e.Amount = money.Amount(amount)
	e.PayersSplit = split.SplitType(payersSplit)
	e.OwersSplit = split.SplitType(owersSplit)
	return e, nil
}
