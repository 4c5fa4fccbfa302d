package settlement

import (
	"github.com/fkhayef/splitledger/internal/money"
	"github.com/fkhayef/splitledger/internal/settlement/simplify"
)

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID         string  `json:"id"`
	BatchID    string  `json:"batch_id"`
	GroupID    int64   `json:"group_id"`
	DebtorID   int64   `json:"debtor_id"`
	CreditorID int64   `json:"creditor_id"`
	Amount     float64 `json:"amount"`
	Status     Status  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

// BatchResponse represents the payments recorded by one group settlement
type BatchResponse struct {
	ID          string                `json:"id"`
	GroupID     int64                 `json:"group_id"`
	Settlements []*SettlementResponse `json:"settlements"`
	CreatedAt   string                `json:"created_at"`
}

// PaymentResponse represents a proposed payment in a settlement preview
type PaymentResponse struct {
	DebtorID   int64   `json:"debtor_id"`
	CreditorID int64   `json:"creditor_id"`
	Amount     float64 `json:"amount"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:         s.ID.String(),
		BatchID:    s.BatchID.String(),
		GroupID:    s.GroupID,
		DebtorID:   s.DebtorID,
		CreditorID: s.CreditorID,
		Amount:     money.FromCents(s.Amount),
		Status:     s.Status,
		CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Batch model to a BatchResponse DTO
func (b *Batch) ToResponse() *BatchResponse {
	resp := &BatchResponse{
		ID:          b.ID.String(),
		GroupID:     b.GroupID,
		Settlements: make([]*SettlementResponse, len(b.Settlements)),
		CreatedAt:   b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for i, s := range b.Settlements {
		resp.Settlements[i] = s.ToResponse()
	}
	return resp
}

// NewPaymentResponses converts simplified transactions to PaymentResponse DTOs
func NewPaymentResponses(txns []simplify.Transaction) []*PaymentResponse {
	resp := make([]*PaymentResponse, len(txns))
	for i, t := range txns {
		resp[i] = &PaymentResponse{
			DebtorID:   t.DebtorID,
			CreditorID: t.CreditorID,
			Amount:     money.FromCents(t.Amount),
		}
	}
	return resp
}
