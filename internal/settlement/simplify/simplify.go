// Package simplify reduces a set of net balances to a short list of
// payments that zeroes all of them.
package simplify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fkhayef/splitledger/internal/money"
)

// ErrUnbalanced is returned by CheckZeroSum when balances do not net to zero.
var ErrUnbalanced = errors.New("balances do not sum to zero")

// Transaction is a payment of Amount from DebtorID to CreditorID.
type Transaction struct {
	DebtorID   int64        `json:"debtor_id"`
	CreditorID int64        `json:"creditor_id"`
	Amount     money.Amount `json:"amount"`
}

// CheckZeroSum reports ErrUnbalanced unless the balances net to exactly zero.
func CheckZeroSum(balances map[int64]money.Amount) error {
	if sum := money.SumMap(balances); sum != 0 {
		return fmt.Errorf("%w: off by %s", ErrUnbalanced, money.Format(sum))
	}
	return nil
}

type party struct {
	id     int64
	amount money.Amount // magnitude still to settle
}

// Simplify greedily matches the largest debtor with the largest creditor
// until every balance is settled. Positive balances are owed money,
// negative ones owe it. Ties go to the lower user ID, so the result is
// deterministic.
//
// For zero-summing input the result has at most n-1 payments and moves
// exactly the sum of the positive balances. Input that does not sum to
// zero is settled as far as the smaller side allows; see CheckZeroSum.
func Simplify(balances map[int64]money.Amount) []Transaction {
	var debtors, creditors []*party
	for id, b := range balances {
		switch {
		case b < 0:
			debtors = append(debtors, &party{id: id, amount: -b})
		case b > 0:
			creditors = append(creditors, &party{id: id, amount: b})
		}
	}

	var txns []Transaction
	for len(debtors) > 0 && len(creditors) > 0 {
		// A full sort per step keeps the order obvious; groups are small.
		sortParties(debtors)
		sortParties(creditors)

		d, c := debtors[0], creditors[0]
		transfer := min(d.amount, c.amount)
		txns = append(txns, Transaction{DebtorID: d.id, CreditorID: c.id, Amount: transfer})

		d.amount -= transfer
		c.amount -= transfer
		if d.amount == 0 {
			debtors = debtors[1:]
		}
		if c.amount == 0 {
			creditors = creditors[1:]
		}
	}

	return txns
}

func sortParties(ps []*party) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].amount != ps[j].amount {
			return ps[i].amount > ps[j].amount
		}
		return ps[i].id < ps[j].id
	})
}
