package split

import "github.com/fkhayef/splitledger/internal/money"

// =============================================================================
// EQUALLY SPLIT STRATEGY
// Divides the amount equally; leftover cents go to randomly drawn participants
// =============================================================================

// EquallyStrategy implements the Strategy interface for equal splits
type EquallyStrategy struct {
	picker *picker
}

// Type returns the split type identifier
func (s *EquallyStrategy) Type() SplitType {
	return SplitTypeEqually
}

// Split gives every participant floor(total/n) cents. The remaining r < n
// cents go one each to r distinct participants picked at random, so the
// same person is not always the one rounding up.
func (s *EquallyStrategy) Split(total money.Amount, participants []Participant) (map[int64]money.Amount, error) {
	n := len(participants)
	if n == 0 {
		return nil, ErrNoParticipants
	}

	base, rest := money.DivFloor(total, n)

	result := make(map[int64]money.Amount, n)
	for _, p := range participants {
		result[p.UserID] += base
	}
	for _, i := range s.picker.sample(n, int(rest)) {
		result[participants[i].UserID]++
	}

	return result, nil
}
