package split

import "github.com/fkhayef/splitledger/internal/money"

// =============================================================================
// AMOUNT SPLIT STRATEGY
// Each participant's weight is their contribution
// =============================================================================

// AmountStrategy implements the Strategy interface for exact amount splits
type AmountStrategy struct{}

// Type returns the split type identifier
func (s *AmountStrategy) Type() SplitType {
	return SplitTypeAmount
}

// Split returns the weights converted to cents. It does not check that they
// add up to total; ValidateWeights does that before an expense is split.
func (s *AmountStrategy) Split(_ money.Amount, participants []Participant) (map[int64]money.Amount, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	result := make(map[int64]money.Amount, len(participants))
	for _, p := range participants {
		if p.Weight == nil {
			return nil, ErrMissingWeight
		}
		result[p.UserID] += money.ToCents(*p.Weight)
	}

	return result, nil
}
