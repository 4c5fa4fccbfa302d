package group

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/money"
	"github.com/fkhayef/splitledger/pkg/metrics"
)

// ErrBalanceNotFound is returned when a user has no balance in a group
var ErrBalanceNotFound = errors.New("group balance not found")

// Service handles group balance business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group balance service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Find retrieves a user's balance in a group
func (s *Service) Find(ctx context.Context, userID, groupID int64) (*Balance, error) {
	b, err := s.repo.Find(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBalanceNotFound
	}
	return b, nil
}

// Balances returns the group's balance snapshot keyed by user ID
func (s *Service) Balances(ctx context.Context, groupID int64) (map[int64]money.Amount, error) {
	if groupID <= 0 {
		return nil, ErrInvalidGroupID
	}
	return s.repo.GetGroupBalances(ctx, groupID)
}

// BalancesTx is Balances inside a caller-owned transaction
func (s *Service) BalancesTx(ctx context.Context, tx database.DBTX, groupID int64) (map[int64]money.Amount, error) {
	if groupID <= 0 {
		return nil, ErrInvalidGroupID
	}
	return s.repo.GetGroupBalancesTx(ctx, tx, groupID)
}

// ClearTx deletes every balance of the group inside a caller-owned transaction
func (s *Service) ClearTx(ctx context.Context, tx database.DBTX, groupID int64) error {
	if err := s.repo.ClearGroupBalancesTx(ctx, tx, groupID); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Group balances cleared", "group_id", groupID)
	return nil
}

// UpdateBalance adds delta to a user's balance in a group
func (s *Service) UpdateBalance(ctx context.Context, userID, groupID int64, delta money.Amount) (*Balance, error) {
	b, err := s.repo.UpdateBalance(ctx, userID, groupID, delta)
	if err != nil {
		return nil, err
	}
	s.record(ctx, b, delta)
	return b, nil
}

// UpdateBalanceTx is UpdateBalance inside a caller-owned transaction
func (s *Service) UpdateBalanceTx(ctx context.Context, tx database.DBTX, userID, groupID int64, delta money.Amount) (*Balance, error) {
	b, err := s.repo.UpdateBalanceTx(ctx, tx, userID, groupID, delta)
	if err != nil {
		return nil, err
	}
	s.record(ctx, b, delta)
	return b, nil
}

// SetBalance overwrites a user's balance in a group
func (s *Service) SetBalance(ctx context.Context, userID, groupID int64, value money.Amount) (*Balance, error) {
	b, err := s.repo.SetBalance(ctx, userID, groupID, value)
	if err != nil {
		return nil, err
	}
	metrics.GroupBalanceUpdates.Inc()
	slog.DebugContext(ctx, "Group balance set",
		"user_id", userID,
		"group_id", groupID,
		"balance", money.Format(value),
	)
	return b, nil
}

func (s *Service) record(ctx context.Context, b *Balance, delta money.Amount) {
	metrics.GroupBalanceUpdates.Inc()
	slog.DebugContext(ctx, "Group balance updated",
		"user_id", b.UserID,
		"group_id", b.GroupID,
		"delta", money.Format(delta),
		"balance", money.Format(b.Balance),
	)
}
