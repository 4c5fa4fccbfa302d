package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/debt"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/money"
	"github.com/fkhayef/splitledger/internal/settlement/simplify"
	"github.com/fkhayef/splitledger/pkg/metrics"
)

// Common errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrInvalidAmount      = errors.New("expense amount must be positive")
	ErrInvalidParticipant = errors.New("participant must have a positive user ID")
)

// Service handles expense business logic
type Service struct {
	db           *sql.DB
	repo         *Repository
	splitFactory *split.Factory // Factory pattern for creating split strategies
	debts        *debt.Service
	groups       *group.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(db *sql.DB, repo *Repository, splitFactory *split.Factory, debts *debt.Service, groups *group.Service) *Service {
	return &Service{
		db:           db,
		repo:         repo,
		splitFactory: splitFactory,
		debts:        debts,
		groups:       groups,
	}
}

// Calculate validates the request and returns every participant's paid,
// owed and net amounts without touching the ledgers
func (s *Service) Calculate(req *CreateExpenseRequest) (map[int64]Balance, error) {
	total, err := money.ParseCents(req.Amount)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.GroupID != nil && *req.GroupID <= 0 {
		return nil, group.ErrInvalidGroupID
	}

	paid, err := s.splitSide(total, req.PayersSplit, req.Payers)
	if err != nil {
		return nil, fmt.Errorf("payers: %w", err)
	}
	owed, err := s.splitSide(total, req.OwersSplit, req.Owers)
	if err != nil {
		return nil, fmt.Errorf("owers: %w", err)
	}

	return Aggregate(paid, owed), nil
}

func (s *Service) splitSide(total money.Amount, splitType string, ps []*SplitParticipant) (map[int64]money.Amount, error) {
	// Use FACTORY PATTERN to get the appropriate split strategy
	strategy, err := s.splitFactory.CreateFromString(splitType)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		if p == nil || p.UserID <= 0 {
			return nil, ErrInvalidParticipant
		}
	}

	inputs := toSplitInput(ps)
	if err := split.ValidateWeights(strategy.Type(), total, inputs); err != nil {
		return nil, err
	}

	// Use STRATEGY PATTERN - calculate shares using the selected strategy
	return strategy.Split(total, inputs)
}

// CreateExpense calculates the expense and applies it to the ledgers in one
// transaction. Person to person expenses are simplified into pairwise debts;
// group expenses adjust each member's group balance.
func (s *Service) CreateExpense(ctx context.Context, creatorID int64, req *CreateExpenseRequest) (*ExpenseWithBalances, error) {
	balances, err := s.Calculate(req)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		CreatorID:   creatorID,
		GroupID:     req.GroupID,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      money.ToCents(req.Amount), // range checked by Calculate
		PayersSplit: split.SplitType(req.PayersSplit),
		OwersSplit:  split.SplitType(req.OwersSplit),
		CreatedAt:   time.Now().UTC(),
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.repo.CreateExpenseTx(ctx, tx, e); err != nil {
			return err
		}
		if err := s.repo.CreateBalancesTx(ctx, tx, e.ID, balances); err != nil {
			return err
		}

		if e.GroupID == nil {
			var desc *string
			if e.Description != "" {
				desc = &e.Description
			}
			_, err := s.debts.ApplyTx(ctx, tx, simplify.Simplify(Totals(balances)), nil, desc)
			return err
		}

		for userID, b := range balances {
			if _, err := s.groups.UpdateBalanceTx(ctx, tx, userID, *e.GroupID, b.Total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	scope := "direct"
	attrs := []any{
		"expense_id", e.ID,
		"creator_id", creatorID,
		"amount", money.Format(e.Amount),
		"participants", len(balances),
	}
	if e.GroupID != nil {
		scope = "group"
		attrs = append(attrs, "group_id", *e.GroupID)
	}
	metrics.ExpensesCreated.WithLabelValues(scope).Inc()
	slog.InfoContext(ctx, "Expense created", attrs...)

	return &ExpenseWithBalances{Expense: e, Balances: balances}, nil
}

// GetExpenseByID retrieves an expense with its balances
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithBalances, error) {
	e, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	balances, err := s.repo.GetBalancesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithBalances{Expense: e, Balances: balances}, nil
}

// ListExpensesByGroupID retrieves expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	page, perPage = pageBounds(page, perPage)
	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// pageBounds defaults page to 1 and perPage to 20, capping perPage at 100
func pageBounds(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
