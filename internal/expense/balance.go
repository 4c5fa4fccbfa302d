package expense

import "github.com/fkhayef/splitledger/internal/money"

// Balance is one participant's position in a single expense
type Balance struct {
	Paid  money.Amount `json:"paid"`
	Owed  money.Amount `json:"owed"`
	Total money.Amount `json:"total"` // Paid - Owed
}

// Aggregate merges the payer-side and ower-side splits into per-user
// balances. A user missing from one side counts zero there.
func Aggregate(paid, owed map[int64]money.Amount) map[int64]Balance {
	balances := make(map[int64]Balance, len(paid)+len(owed))
	for userID, amount := range paid {
		b := balances[userID]
		b.Paid = amount
		balances[userID] = b
	}
	for userID, amount := range owed {
		b := balances[userID]
		b.Owed = amount
		balances[userID] = b
	}
	for userID, b := range balances {
		b.Total = b.Paid - b.Owed
		balances[userID] = b
	}
	return balances
}

// Totals projects the net totals out of a set of balances
func Totals(balances map[int64]Balance) map[int64]money.Amount {
	totals := make(map[int64]money.Amount, len(balances))
	for userID, b := range balances {
		totals[userID] = b.Total
	}
	return totals
}
