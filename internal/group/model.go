package group

import "github.com/fkhayef/splitledger/internal/money"

// Balance is a user's net position towards a group's pool.
// Positive means the group owes the user; negative means the user owes.
type Balance struct {
	ID      int64        `json:"id"`
	UserID  int64        `json:"user_id"`
	GroupID int64        `json:"group_id"`
	Balance money.Amount `json:"balance"`
}
