package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/money"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx inserts a settlement inside a caller-owned transaction
func (r *Repository) CreateTx(ctx context.Context, tx database.DBTX, s *Settlement) error {
	query := `
		INSERT INTO settlements (id, batch_id, group_id, debtor_id, creditor_id, amount, seq, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.ExecContext(ctx, query,
		s.ID.String(),
		s.BatchID.String(),
		s.GroupID,
		s.DebtorID,
		s.CreditorID,
		int64(s.Amount),
		s.Seq,
		string(s.Status),
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}

	return nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error) {
	return getByID(ctx, r.db, id)
}

// GetByIDTx is GetByID inside a caller-owned transaction
func (r *Repository) GetByIDTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*Settlement, error) {
	return getByID(ctx, tx, id)
}

// ListByGroup retrieves every settlement recorded for a group, oldest batch first
func (r *Repository) ListByGroup(ctx context.Context, groupID int64) ([]*Settlement, error) {
	query := `
		SELECT id, batch_id, group_id, debtor_id, creditor_id, amount, seq, status, created_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at, batch_id, seq
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// UpdateStatusTx sets a settlement's status inside a caller-owned transaction
func (r *Repository) UpdateStatusTx(ctx context.Context, tx database.DBTX, id uuid.UUID, status Status) error {
	res, err := tx.ExecContext(ctx, `UPDATE settlements SET status = $1 WHERE id = $2`, string(status), id.String())
	if err != nil {
		return fmt.Errorf("failed to update settlement status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update settlement status: %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row scanner) (*Settlement, error) {
	s := &Settlement{}
	var (
		amount int64
		status string
	)
	err := row.Scan(
		&s.ID,
		&s.BatchID,
		&s.GroupID,
		&s.DebtorID,
		&s.CreditorID,
		&amount,
		&s.Seq,
		&status,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Amount = money.Amount(amount)
	s.Status = Status(status)
	return s, nil
}

func getByID(ctx context.Context, q database.DBTX, id uuid.UUID) (*Settlement, error) {
	query := `
		SELECT id, batch_id, group_id, debtor_id, creditor_id, amount, seq, status, created_at
		FROM settlements
		WHERE id = $1
	`

	s, err := scanSettlement(q.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return s, nil
}
