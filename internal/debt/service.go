package debt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/money"
	"github.com/fkhayef/splitledger/internal/settlement/simplify"
	"github.com/fkhayef/splitledger/pkg/metrics"
)

// ErrDebtNotFound is returned when no debt exists in the requested direction
var ErrDebtNotFound = errors.New("debt not found")

// Service handles debt ledger business logic
type Service struct {
	repo *Repository
}

// NewService creates a new debt service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Find retrieves the debt borrower owes lender in the given scope
func (s *Service) Find(ctx context.Context, lenderID, borrowerID int64, groupID *int64) (*Debt, error) {
	d, err := s.repo.Find(ctx, lenderID, borrowerID, groupID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDebtNotFound
	}
	return d, nil
}

// Update adds a debt from borrower to lender, netting it against the
// pair's existing row.
func (s *Service) Update(ctx context.Context, lenderID, borrowerID int64, amount money.Amount, groupID *int64, description *string) (*UpdateResult, error) {
	result, err := s.repo.Update(ctx, lenderID, borrowerID, amount, groupID, description)
	if err != nil {
		return nil, err
	}
	s.record(ctx, lenderID, borrowerID, amount, groupID, result)
	return result, nil
}

// UpdateTx is Update inside a caller-owned transaction
func (s *Service) UpdateTx(ctx context.Context, tx database.DBTX, lenderID, borrowerID int64, amount money.Amount, groupID *int64, description *string) (*UpdateResult, error) {
	result, err := s.repo.UpdateTx(ctx, tx, lenderID, borrowerID, amount, groupID, description)
	if err != nil {
		return nil, err
	}
	s.record(ctx, lenderID, borrowerID, amount, groupID, result)
	return result, nil
}

// ApplyTx records each simplified payment as a debt from debtor to
// creditor, inside a caller-owned transaction.
func (s *Service) ApplyTx(ctx context.Context, tx database.DBTX, txns []simplify.Transaction, groupID *int64, description *string) ([]*UpdateResult, error) {
	results := make([]*UpdateResult, 0, len(txns))
	for _, t := range txns {
		result, err := s.UpdateTx(ctx, tx, t.CreditorID, t.DebtorID, t.Amount, groupID, description)
		if err != nil {
			return nil, fmt.Errorf("failed to apply payment %d -> %d: %w", t.DebtorID, t.CreditorID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Summary splits the user's debts into money lent and money borrowed and
// nets them.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	debts, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, d := range debts {
		if d.LenderID == userID {
			summary.Lent = append(summary.Lent, d)
		} else {
			summary.Borrowed = append(summary.Borrowed, d)
		}
	}
	summary.Total = TotalBalance(summary.Lent, summary.Borrowed)

	return summary, nil
}

func (s *Service) record(ctx context.Context, lenderID, borrowerID int64, amount money.Amount, groupID *int64, result *UpdateResult) {
	metrics.DebtUpdates.WithLabelValues(string(result.Outcome)).Inc()

	attrs := []any{
		"lender_id", lenderID,
		"borrower_id", borrowerID,
		"amount", money.Format(amount),
		"outcome", result.Outcome,
	}
	if groupID != nil {
		attrs = append(attrs, "group_id", *groupID)
	}
	if result.Debt != nil {
		attrs = append(attrs, "debt_id", result.Debt.ID, "balance", money.Format(result.Debt.Amount))
	}
	slog.DebugContext(ctx, "Debt updated", attrs...)
}
