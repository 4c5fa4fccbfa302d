package group

import (
	"sort"

	"github.com/fkhayef/splitledger/internal/money"
)

// BalanceResponse represents a member's position in a group
type BalanceResponse struct {
	UserID  int64   `json:"user_id"`
	GroupID int64   `json:"group_id"`
	Balance float64 `json:"balance"` // positive: the group owes the user
}

// GroupBalancesResponse represents every member's balance in a group
type GroupBalancesResponse struct {
	GroupID  int64              `json:"group_id"`
	Balances []*BalanceResponse `json:"balances"`
	Settled  bool               `json:"settled"`
}

// ToResponse converts a Balance model to a BalanceResponse DTO
func (b *Balance) ToResponse() *BalanceResponse {
	return &BalanceResponse{
		UserID:  b.UserID,
		GroupID: b.GroupID,
		Balance: money.FromCents(b.Balance),
	}
}

// NewGroupBalancesResponse builds the snapshot response ordered by user ID
func NewGroupBalancesResponse(groupID int64, balances map[int64]money.Amount) *GroupBalancesResponse {
	resp := &GroupBalancesResponse{
		GroupID:  groupID,
		Balances: make([]*BalanceResponse, 0, len(balances)),
		Settled:  true,
	}
	for userID, b := range balances {
		resp.Balances = append(resp.Balances, &BalanceResponse{
			UserID:  userID,
			GroupID: groupID,
			Balance: money.FromCents(b),
		})
		if b != 0 {
			resp.Settled = false
		}
	}
	sort.Slice(resp.Balances, func(i, j int) bool {
		return resp.Balances[i].UserID < resp.Balances[j].UserID
	})
	return resp
}
