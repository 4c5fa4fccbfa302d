package expense

import (
	"sort"

	"github.com/fkhayef/splitledger/internal/money"
)

// CreateExpenseRequest represents the request to create an expense.
// Both sides of the expense are split independently: payers share Amount
// by PayersSplit and owers share it by OwersSplit.
type CreateExpenseRequest struct {
	GroupID     *int64              `json:"group_id,omitempty"`
	Category    string              `json:"category" validate:"max=64"`
	Description string              `json:"description" validate:"max=255"`
	Amount      float64             `json:"amount" validate:"required,gt=0"`
	PayersSplit string              `json:"payers_split" validate:"required,oneof=EQUALLY AMOUNT PERCENTAGE"`
	Payers      []*SplitParticipant `json:"payers" validate:"required,min=1"`
	OwersSplit  string              `json:"owers_split" validate:"required,oneof=EQUALLY AMOUNT PERCENTAGE"`
	Owers       []*SplitParticipant `json:"owers" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64              `json:"id"`
	CreatorID   int64              `json:"creator_id"`
	GroupID     *int64             `json:"group_id,omitempty"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	PayersSplit string             `json:"payers_split"`
	OwersSplit  string             `json:"owers_split"`
	CreatedAt   string             `json:"created_at"`
	Balances    []*BalanceResponse `json:"balances,omitempty"`
}

// BalanceResponse represents one participant's share of an expense
type BalanceResponse struct {
	UserID int64   `json:"user_id"`
	Paid   float64 `json:"paid"`
	Owed   float64 `json:"owed"`
	Total  float64 `json:"total"` // positive: the user is owed money
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		CreatorID:   e.CreatorID,
		GroupID:     e.GroupID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      money.FromCents(e.Amount),
		PayersSplit: string(e.PayersSplit),
		OwersSplit:  string(e.OwersSplit),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts an ExpenseWithBalances to an ExpenseResponse DTO
func (e *ExpenseWithBalances) ToResponse() *ExpenseResponse {
	resp := e.Expense.ToResponse()
	resp.Balances = NewBalanceResponses(e.Balances)
	return resp
}

// NewBalanceResponses converts balances to DTOs ordered by user ID
func NewBalanceResponses(balances map[int64]Balance) []*BalanceResponse {
	resp := make([]*BalanceResponse, 0, len(balances))
	for userID, b := range balances {
		resp = append(resp, &BalanceResponse{
			UserID: userID,
			Paid:   money.FromCents(b.Paid),
			Owed:   money.FromCents(b.Owed),
			Total:  money.FromCents(b.Total),
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].UserID < resp[j].UserID })
	return resp
}
