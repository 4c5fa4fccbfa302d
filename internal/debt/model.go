package debt

import (
	"time"

	"github.com/fkhayef/splitledger/internal/money"
)

// Debt records that BorrowerID owes LenderID Amount, either directly
// (GroupID nil) or within a group.
//
// For a given scope there is at most one row per unordered pair of users,
// and Amount is always positive.
type Debt struct {
	ID          int64        `json:"id"`
	LenderID    int64        `json:"lender_id"`
	BorrowerID  int64        `json:"borrower_id"`
	Amount      money.Amount `json:"amount"`
	Description *string      `json:"description,omitempty"`
	GroupID     *int64       `json:"group_id,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Outcome describes what an update did to the pair's row
type Outcome string

const (
	OutcomeCreated   Outcome = "created"   // no row existed
	OutcomeIncreased Outcome = "increased" // same direction, amount added
	OutcomeCancelled Outcome = "cancelled" // reverse row matched exactly and was deleted
	OutcomeReduced   Outcome = "reduced"   // reverse row was larger and shrank
	OutcomeReversed  Outcome = "reversed"  // reverse row was smaller; direction flipped
)

// UpdateResult is the state of the pair after an update. Debt is nil when
// the debts cancelled out.
type UpdateResult struct {
	Outcome Outcome
	Debt    *Debt
}

// Summary lists a user's debts in both directions
type Summary struct {
	Lent     []*Debt
	Borrowed []*Debt
	Total    money.Amount // positive: the user is owed overall
}

// TotalBalance returns what the user is owed through lent minus what they
// owe through borrowed.
func TotalBalance(lent, borrowed []*Debt) money.Amount {
	var total money.Amount
	for _, d := range lent {
		total += d.Amount
	}
	for _, d := range borrowed {
		total -= d.Amount
	}
	return total
}
