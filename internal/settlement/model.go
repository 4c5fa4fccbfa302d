package settlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/money"
)

// Status represents the status of a settlement payment
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

// Settlement is one payment emitted when a group was settled
type Settlement struct {
	ID         uuid.UUID    `json:"id"`
	BatchID    uuid.UUID    `json:"batch_id"`
	GroupID    int64        `json:"group_id"`
	DebtorID   int64        `json:"debtor_id"`   // Who sends the money
	CreditorID int64        `json:"creditor_id"` // Who receives the money
	Amount     money.Amount `json:"amount"`
	Seq        int          `json:"seq"` // Order within the batch
	Status     Status       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Batch is the set of payments produced by settling a group once
type Batch struct {
	ID          uuid.UUID     `json:"id"`
	GroupID     int64         `json:"group_id"`
	Settlements []*Settlement `json:"settlements"`
	CreatedAt   time.Time     `json:"created_at"`
}
