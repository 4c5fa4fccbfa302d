package expense

import (
	"time"

	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/money"
)

// Expense represents an expense applied to the ledgers
type Expense struct {
	ID          int64           `json:"id"`
	CreatorID   int64           `json:"creator_id"`
	GroupID     *int64          `json:"group_id,omitempty"` // nil for person to person expenses
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      money.Amount    `json:"amount"`
	PayersSplit split.SplitType `json:"payers_split"`
	OwersSplit  split.SplitType `json:"owers_split"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseWithBalances combines an expense with its per-user balances
type ExpenseWithBalances struct {
	Expense  *Expense
	Balances map[int64]Balance
}

// SplitParticipant is used when creating an expense. Weight is a currency
// amount for AMOUNT splits, a percentage for PERCENTAGE splits and ignored
// for EQUALLY.
type SplitParticipant struct {
	UserID int64    `json:"user_id"`
	Weight *float64 `json:"weight,omitempty"`
}

func toSplitInput(ps []*SplitParticipant) []split.Participant {
	out := make([]split.Participant, len(ps))
	for i, p := range ps {
		out[i] = split.Participant{UserID: p.UserID, Weight: p.Weight}
	}
	return out
}
