package debt

import (
	"fmt"

	"github.com/fkhayef/splitledger/internal/money"
)

// UpdateDebtRequest records that the borrower owes the lender an amount,
// e.g. a loan or a repayment in the other direction
type UpdateDebtRequest struct {
	LenderID    int64   `json:"lender_id" validate:"required"`
	BorrowerID  int64   `json:"borrower_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	GroupID     *int64  `json:"group_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DebtResponse represents the response for a debt
type DebtResponse struct {
	ID          int64   `json:"id"`
	LenderID    int64   `json:"lender_id"`
	BorrowerID  int64   `json:"borrower_id"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	GroupID     *int64  `json:"group_id,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// UpdateDebtResponse represents the pair's state after an update
type UpdateDebtResponse struct {
	Outcome Outcome       `json:"outcome"`
	Debt    *DebtResponse `json:"debt,omitempty"`
}

// SummaryResponse represents a user's debts and their net total
type SummaryResponse struct {
	Lent         []*DebtResponse `json:"lent"`
	Borrowed     []*DebtResponse `json:"borrowed"`
	TotalBalance float64         `json:"total_balance"`
	Message      string          `json:"message"` // e.g., "You are owed $12.50 overall"
}

// ToResponse converts a Debt model to a DebtResponse DTO
func (d *Debt) ToResponse() *DebtResponse {
	return &DebtResponse{
		ID:          d.ID,
		LenderID:    d.LenderID,
		BorrowerID:  d.BorrowerID,
		Amount:      money.FromCents(d.Amount),
		Description: d.Description,
		GroupID:     d.GroupID,
		UpdatedAt:   d.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts an UpdateResult to an UpdateDebtResponse DTO
func (r *UpdateResult) ToResponse() *UpdateDebtResponse {
	resp := &UpdateDebtResponse{Outcome: r.Outcome}
	if r.Debt != nil {
		resp.Debt = r.Debt.ToResponse()
	}
	return resp
}

// ToResponse converts a Summary to a SummaryResponse DTO
func (s *Summary) ToResponse() *SummaryResponse {
	resp := &SummaryResponse{
		Lent:         make([]*DebtResponse, len(s.Lent)),
		Borrowed:     make([]*DebtResponse, len(s.Borrowed)),
		TotalBalance: money.FromCents(s.Total),
	}
	for i, d := range s.Lent {
		resp.Lent[i] = d.ToResponse()
	}
	for i, d := range s.Borrowed {
		resp.Borrowed[i] = d.ToResponse()
	}

	switch {
	case s.Total > 0:
		resp.Message = fmt.Sprintf("You are owed $%s overall", money.Format(s.Total))
	case s.Total < 0:
		resp.Message = fmt.Sprintf("You owe $%s overall", money.Format(-s.Total))
	default:
		resp.Message = "You are all settled up"
	}
	return resp
}
