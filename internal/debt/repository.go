package debt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/money"
)

// Common errors
var (
	ErrInvalidAmount  = errors.New("debt amount must be positive")
	ErrInvalidUser    = errors.New("lender and borrower ids must be positive")
	ErrSelfDebt       = errors.New("lender and borrower must differ")
	ErrInvalidGroupID = errors.New("group id must be positive")
)

// Repository handles debt data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new debt repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const debtColumns = `id, lender_id, borrower_id, amount, description, group_id, updated_at`

// Find returns the debt borrower owes lender in the given scope, or nil if
// there is none. Only the exact direction is looked up.
func (r *Repository) Find(ctx context.Context, lenderID, borrowerID int64, groupID *int64) (*Debt, error) {
	return find(ctx, r.db, lenderID, borrowerID, groupID)
}

// Update records that borrower owes lender a further amount, netting it
// against any debt in the opposite direction. It runs in its own
// transaction.
func (r *Repository) Update(ctx context.Context, lenderID, borrowerID int64, amount money.Amount, groupID *int64, description *string) (*UpdateResult, error) {
	var result *UpdateResult
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		result, err = r.UpdateTx(ctx, tx, lenderID, borrowerID, amount, groupID, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTx is Update on a caller-owned transaction.
//
// The pair's row in the forward direction grows; a row in the reverse
// direction is cancelled, reduced, or replaced by a forward row holding the
// difference. The description is only stored on newly created rows.
func (r *Repository) UpdateTx(ctx context.Context, tx database.DBTX, lenderID, borrowerID int64, amount money.Amount, groupID *int64, description *string) (*UpdateResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > money.MaxAmount {
		return nil, fmt.Errorf("%w: %s", money.ErrAmountOutOfRange, money.Format(amount))
	}
	if lenderID <= 0 || borrowerID <= 0 {
		return nil, ErrInvalidUser
	}
	if lenderID == borrowerID {
		return nil, ErrSelfDebt
	}
	if groupID != nil && *groupID <= 0 {
		return nil, ErrInvalidGroupID
	}

	forward, err := find(ctx, tx, lenderID, borrowerID, groupID)
	if err != nil {
		return nil, err
	}
	if forward != nil {
		grown, err := money.Add(forward.Amount, amount)
		if err != nil {
			return nil, err
		}
		if err := setAmount(ctx, tx, forward, grown); err != nil {
			return nil, err
		}
		return &UpdateResult{Outcome: OutcomeIncreased, Debt: forward}, nil
	}

	reverse, err := find(ctx, tx, borrowerID, lenderID, groupID)
	if err != nil {
		return nil, err
	}
	if reverse == nil {
		created, err := create(ctx, tx, lenderID, borrowerID, amount, groupID, description)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Outcome: OutcomeCreated, Debt: created}, nil
	}

	switch {
	case reverse.Amount == amount:
		if err := remove(ctx, tx, reverse.ID); err != nil {
			return nil, err
		}
		return &UpdateResult{Outcome: OutcomeCancelled}, nil

	case reverse.Amount > amount:
		if err := setAmount(ctx, tx, reverse, reverse.Amount-amount); err != nil {
			return nil, err
		}
		return &UpdateResult{Outcome: OutcomeReduced, Debt: reverse}, nil

	default:
		if err := remove(ctx, tx, reverse.ID); err != nil {
			return nil, err
		}
		created, err := create(ctx, tx, lenderID, borrowerID, amount-reverse.Amount, groupID, description)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Outcome: OutcomeReversed, Debt: created}, nil
	}
}

// ListForUser retrieves every debt the user is party to, in all scopes
func (r *Repository) ListForUser(ctx context.Context, userID int64) ([]*Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE lender_id = $1 OR borrower_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	return debts, nil
}

// Count returns the number of rows in scope between the two users, in
// either direction.
func (r *Repository) Count(ctx context.Context, userA, userB int64, groupID *int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM debts
		WHERE ((lender_id = $1 AND borrower_id = $2) OR (lender_id = $2 AND borrower_id = $1))
		  AND COALESCE(group_id, 0) = COALESCE($3, 0)
	`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userA, userB, database.NullID(groupID)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count debts: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDebt(row scanner) (*Debt, error) {
	d := &Debt{}
	var (
		amount      int64
		description sql.NullString
		groupID     sql.NullInt64
	)
	if err := row.Scan(&d.ID, &d.LenderID, &d.BorrowerID, &amount, &description, &groupID, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Amount = money.Amount(amount)
	if description.Valid {
		d.Description = &description.String
	}
	d.GroupID = database.IDPtr(groupID)
	return d, nil
}

func find(ctx context.Context, q database.DBTX, lenderID, borrowerID int64, groupID *int64) (*Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE lender_id = $1 AND borrower_id = $2 AND COALESCE(group_id, 0) = COALESCE($3, 0)
	`

	d, err := scanDebt(q.QueryRowContext(ctx, query, lenderID, borrowerID, database.NullID(groupID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return d, nil
}

func create(ctx context.Context, q database.DBTX, lenderID, borrowerID int64, amount money.Amount, groupID *int64, description *string) (*Debt, error) {
	query := `
		INSERT INTO debts (lender_id, borrower_id, amount, description, group_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	d := &Debt{
		LenderID:    lenderID,
		BorrowerID:  borrowerID,
		Amount:      amount,
		Description: description,
		GroupID:     groupID,
		UpdatedAt:   time.Now().UTC(),
	}
	var desc sql.NullString
	if description != nil {
		desc = sql.NullString{String: *description, Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		lenderID,
		borrowerID,
		int64(amount),
		desc,
		database.NullID(groupID),
		d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	return d, nil
}

func setAmount(ctx context.Context, q database.DBTX, d *Debt, amount money.Amount) error {
	now := time.Now().UTC()
	if _, err := q.ExecContext(ctx, `UPDATE debts SET amount = $1, updated_at = $2 WHERE id = $3`, int64(amount), now, d.ID); err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	d.Amount = amount
	d.UpdatedAt = now
	return nil
}

func remove(ctx context.Context, q database.DBTX, id int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}
