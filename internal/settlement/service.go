package settlement

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/money"
	"github.com/fkhayef/splitledger/internal/settlement/simplify"
	"github.com/fkhayef/splitledger/pkg/metrics"
)

var (
	ErrSettlementNotFound  = errors.New("settlement not found")
	ErrNotDebtor           = errors.New("only the debtor can mark this settlement as paid")
	ErrNotCreditor         = errors.New("only the creditor can confirm or reject this settlement")
	ErrInvalidStatusChange = errors.New("invalid status change")
)

// ErrUnbalanced is returned when a group's balances do not net to zero
var ErrUnbalanced = simplify.ErrUnbalanced

// Service handles group settlement business logic
type Service struct {
	db     *sql.DB
	repo   *Repository
	groups *group.Service
}

// NewService creates a new settlement service
func NewService(db *sql.DB, repo *Repository, groups *group.Service) *Service {
	return &Service{db: db, repo: repo, groups: groups}
}

// Preview returns the payments that would settle the group, without
// writing anything.
func (s *Service) Preview(ctx context.Context, groupID int64) ([]simplify.Transaction, error) {
	balances, err := s.groups.Balances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := simplify.CheckZeroSum(balances); err != nil {
		return nil, err
	}
	return simplify.Simplify(balances), nil
}

// SettleGroup records the payments that zero every member's balance and
// clears the group's balances, all in one transaction.
func (s *Service) SettleGroup(ctx context.Context, groupID int64) (*Batch, error) {
	batch := &Batch{
		ID:        uuid.New(),
		GroupID:   groupID,
		CreatedAt: time.Now().UTC(),
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balances, err := s.groups.BalancesTx(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if err := simplify.CheckZeroSum(balances); err != nil {
			return err
		}

		for i, t := range simplify.Simplify(balances) {
			st := &Settlement{
				ID:         uuid.New(),
				BatchID:    batch.ID,
				GroupID:    groupID,
				DebtorID:   t.DebtorID,
				CreditorID: t.CreditorID,
				Amount:     t.Amount,
				Seq:        i,
				Status:     StatusPending,
				CreatedAt:  batch.CreatedAt,
			}
			if err := s.repo.CreateTx(ctx, tx, st); err != nil {
				return err
			}
			batch.Settlements = append(batch.Settlements, st)
		}

		return s.groups.ClearTx(ctx, tx, groupID)
	})
	if err != nil {
		return nil, err
	}

	metrics.SettlementTransactions.Add(float64(len(batch.Settlements)))
	slog.InfoContext(ctx, "Group settled",
		"group_id", groupID,
		"batch_id", batch.ID,
		"payments", len(batch.Settlements),
	)

	return batch, nil
}

// ListByGroup retrieves every settlement recorded for a group
func (s *Service) ListByGroup(ctx context.Context, groupID int64) ([]*Settlement, error) {
	if groupID <= 0 {
		return nil, group.ErrInvalidGroupID
	}
	return s.repo.ListByGroup(ctx, groupID)
}

// GetByID retrieves a settlement by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrSettlementNotFound
	}
	return st, nil
}

// MarkAsPaid allows the debtor to mark the settlement as paid
func (s *Service) MarkAsPaid(ctx context.Context, id uuid.UUID, userID int64) (*Settlement, error) {
	return s.transition(ctx, id, func(tx database.DBTX, st *Settlement) (Status, error) {
		if st.DebtorID != userID {
			return "", ErrNotDebtor
		}
		if st.Status != StatusPending {
			return "", ErrInvalidStatusChange
		}
		return StatusPaid, nil
	})
}

// Confirm allows the creditor to confirm they received the payment
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, userID int64) (*Settlement, error) {
	return s.transition(ctx, id, func(tx database.DBTX, st *Settlement) (Status, error) {
		if st.CreditorID != userID {
			return "", ErrNotCreditor
		}
		if st.Status != StatusPaid {
			return "", ErrInvalidStatusChange
		}
		return StatusConfirmed, nil
	})
}

// Reject allows the creditor to reject the settlement. The payment is put
// back into the group's balances.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, userID int64) (*Settlement, error) {
	return s.transition(ctx, id, func(tx database.DBTX, st *Settlement) (Status, error) {
		if st.CreditorID != userID {
			return "", ErrNotCreditor
		}
		if st.Status != StatusPending && st.Status != StatusPaid {
			return "", ErrInvalidStatusChange
		}
		if _, err := s.groups.UpdateBalanceTx(ctx, tx, st.DebtorID, st.GroupID, -st.Amount); err != nil {
			return "", err
		}
		if _, err := s.groups.UpdateBalanceTx(ctx, tx, st.CreditorID, st.GroupID, st.Amount); err != nil {
			return "", err
		}
		return StatusRejected, nil
	})
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next func(tx database.DBTX, st *Settlement) (Status, error)) (*Settlement, error) {
	var st *Settlement
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		st, err = s.repo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if st == nil {
			return ErrSettlementNotFound
		}

		status, err := next(tx, st)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateStatusTx(ctx, tx, id, status); err != nil {
			return err
		}

		slog.DebugContext(ctx, "Settlement status changed",
			"settlement_id", id,
			"from", st.Status,
			"to", status,
			"amount", money.Format(st.Amount),
		)
		st.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
