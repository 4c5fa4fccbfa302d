package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/money"
)

// ErrInvalidGroupID is returned for group IDs that are not positive
var ErrInvalidGroupID = errors.New("group ID must be positive")

// Repository handles group balance persistence.
// Every write has a Tx variant for callers that need it inside a larger
// transaction.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the user's balance row for the group, or nil if none exists
func (r *Repository) Find(ctx context.Context, userID, groupID int64) (*Balance, error) {
	return find(ctx, r.db, userID, groupID)
}

// FindOrCreate returns the user's balance row, creating a zero balance on
// first use. Calling it again returns the same row.
func (r *Repository) FindOrCreate(ctx context.Context, userID, groupID int64) (*Balance, error) {
	return findOrCreate(ctx, r.db, userID, groupID)
}

// FindOrCreateTx is FindOrCreate on a caller-owned transaction
func (r *Repository) FindOrCreateTx(ctx context.Context, tx database.DBTX, userID, groupID int64) (*Balance, error) {
	return findOrCreate(ctx, tx, userID, groupID)
}

// UpdateBalance adds delta to the user's balance in the group
func (r *Repository) UpdateBalance(ctx context.Context, userID, groupID int64, delta money.Amount) (*Balance, error) {
	var b *Balance
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		b, err = r.UpdateBalanceTx(ctx, tx, userID, groupID, delta)
		return err
	})
	return b, err
}

// UpdateBalanceTx is UpdateBalance on a caller-owned transaction
func (r *Repository) UpdateBalanceTx(ctx context.Context, tx database.DBTX, userID, groupID int64, delta money.Amount) (*Balance, error) {
	b, err := findOrCreate(ctx, tx, userID, groupID)
	if err != nil {
		return nil, err
	}
	next, err := money.Add(b.Balance, delta)
	if err != nil {
		return nil, err
	}
	if err := setBalance(ctx, tx, b, next); err != nil {
		return nil, err
	}
	return b, nil
}

// SetBalance overwrites the user's balance in the group
func (r *Repository) SetBalance(ctx context.Context, userID, groupID int64, value money.Amount) (*Balance, error) {
	var b *Balance
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		b, err = r.SetBalanceTx(ctx, tx, userID, groupID, value)
		return err
	})
	return b, err
}

// SetBalanceTx is SetBalance on a caller-owned transaction
func (r *Repository) SetBalanceTx(ctx context.Context, tx database.DBTX, userID, groupID int64, value money.Amount) (*Balance, error) {
	b, err := findOrCreate(ctx, tx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if err := setBalance(ctx, tx, b, value); err != nil {
		return nil, err
	}
	return b, nil
}

// GetGroupBalances returns a snapshot of every member's balance in the group
func (r *Repository) GetGroupBalances(ctx context.Context, groupID int64) (map[int64]money.Amount, error) {
	return groupBalances(ctx, r.db, groupID)
}

// GetGroupBalancesTx is GetGroupBalances on a caller-owned transaction
func (r *Repository) GetGroupBalancesTx(ctx context.Context, tx database.DBTX, groupID int64) (map[int64]money.Amount, error) {
	return groupBalances(ctx, tx, groupID)
}

// ClearGroupBalances deletes every balance row of the group
func (r *Repository) ClearGroupBalances(ctx context.Context, groupID int64) error {
	return clearGroup(ctx, r.db, groupID)
}

// ClearGroupBalancesTx is ClearGroupBalances on a caller-owned transaction
func (r *Repository) ClearGroupBalancesTx(ctx context.Context, tx database.DBTX, groupID int64) error {
	return clearGroup(ctx, tx, groupID)
}

func find(ctx context.Context, q database.DBTX, userID, groupID int64) (*Balance, error) {
	query := `
		SELECT id, user_id, group_id, balance
		FROM group_balances
		WHERE user_id = $1 AND group_id = $2
	`

	b := &Balance{}
	var balance int64
	err := q.QueryRowContext(ctx, query, userID, groupID).Scan(&b.ID, &b.UserID, &b.GroupID, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group balance: %w", err)
	}
	b.Balance = money.Amount(balance)

	return b, nil
}

func findOrCreate(ctx context.Context, q database.DBTX, userID, groupID int64) (*Balance, error) {
	if groupID <= 0 {
		return nil, ErrInvalidGroupID
	}

	// ON CONFLICT keeps a concurrent creator from failing on the unique key.
	query := `
		INSERT INTO group_balances (user_id, group_id, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id, group_id) DO NOTHING
	`
	if _, err := q.ExecContext(ctx, query, userID, groupID); err != nil {
		return nil, fmt.Errorf("failed to create group balance: %w", err)
	}

	b, err := find(ctx, q, userID, groupID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("group balance for user %d in group %d vanished after insert", userID, groupID)
	}
	return b, nil
}

func setBalance(ctx context.Context, q database.DBTX, b *Balance, value money.Amount) error {
	if _, err := q.ExecContext(ctx, `UPDATE group_balances SET balance = $1 WHERE id = $2`, int64(value), b.ID); err != nil {
		return fmt.Errorf("failed to update group balance: %w", err)
	}
	b.Balance = value
	return nil
}

func groupBalances(ctx context.Context, q database.DBTX, groupID int64) (map[int64]money.Amount, error) {
	rows, err := q.QueryContext(ctx, `SELECT user_id, balance FROM group_balances WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[int64]money.Amount)
	for rows.Next() {
		var (
			userID  int64
			balance int64
		)
		if err := rows.Scan(&userID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan group balance: %w", err)
		}
		balances[userID] = money.Amount(balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group balances: %w", err)
	}

	return balances, nil
}

func clearGroup(ctx context.Context, q database.DBTX, groupID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM group_balances WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to clear group balances: %w", err)
	}
	return nil
}
