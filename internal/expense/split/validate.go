package split

import (
	"fmt"
	"math"

	"github.com/fkhayef/splitledger/internal/money"
)

// ValidateWeights checks one side of an expense before it is split.
// AMOUNT weights must add up to total and PERCENTAGE weights to 100.
// Strategies assume this has passed and do not re-check.
func ValidateWeights(splitType SplitType, total money.Amount, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}

	seen := make(map[int64]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p.UserID]; dup {
			return fmt.Errorf("%w: user %d", ErrDuplicateParticipant, p.UserID)
		}
		seen[p.UserID] = struct{}{}
	}

	switch splitType {
	case SplitTypeEqually:
		return nil

	case SplitTypeAmount:
		var sum money.Amount
		for _, p := range participants {
			if p.Weight == nil {
				return ErrMissingWeight
			}
			if *p.Weight < 0 {
				return ErrNegativeWeight
			}
			c, err := money.ParseCents(*p.Weight)
			if err != nil {
				return err
			}
			if sum, err = money.Add(sum, c); err != nil {
				return err
			}
		}
		if sum != total {
			return fmt.Errorf("%w: got %s, want %s", ErrInvalidAmounts, money.Format(sum), money.Format(total))
		}
		return nil

	case SplitTypePercentage:
		var sum float64
		for _, p := range participants {
			if p.Weight == nil {
				return ErrMissingWeight
			}
			if *p.Weight < 0 || *p.Weight > 100 {
				return ErrPercentageOutOfRange
			}
			sum += *p.Weight
		}
		// Allow for small floating point errors (99.99 to 100.01)
		if math.Abs(sum-100) > 0.01 {
			return ErrInvalidPercentages
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownSplitType, splitType)
	}
}
