package split

import "github.com/fkhayef/splitledger/internal/money"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the amount by percentage; rounding drift is spread at random
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct {
	picker *picker
}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Split rounds each participant's percentage of total to the cent, then
// moves the signed difference to the total one cent at a time. Recipients
// are drawn without replacement from a shuffled pool that is refilled when
// it runs dry.
func (s *PercentageStrategy) Split(total money.Amount, participants []Participant) (map[int64]money.Amount, error) {
	n := len(participants)
	if n == 0 {
		return nil, ErrNoParticipants
	}

	shares := make([]money.Amount, n)
	for i, p := range participants {
		if p.Weight == nil {
			return nil, ErrMissingWeight
		}
		shares[i] = money.Percent(total, *p.Weight)
	}

	spare := total - money.Sum(shares...)
	step := money.Amount(1)
	if spare < 0 {
		step = -1
	}

	var pool []int
	for spare != 0 {
		if len(pool) == 0 {
			pool = s.picker.perm(n)
		}
		i := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		shares[i] += step
		spare -= step
	}

	result := make(map[int64]money.Amount, n)
	for i, p := range participants {
		result[p.UserID] += shares[i]
	}

	return result, nil
}
