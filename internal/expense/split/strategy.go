package split

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fkhayef/splitledger/internal/money"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqually    SplitType = "EQUALLY"
	SplitTypeAmount     SplitType = "AMOUNT"
	SplitTypePercentage SplitType = "PERCENTAGE"
)

// Valid reports whether t names a known strategy
func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEqually, SplitTypeAmount, SplitTypePercentage:
		return true
	}
	return false
}

// Participant is one side of an expense: a payer or an ower.
// Weight is ignored by EQUALLY, is the amount itself for AMOUNT and a
// percentage of the total for PERCENTAGE.
type Participant struct {
	UserID int64    `json:"user_id"`
	Weight *float64 `json:"weight,omitempty"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Split allocates total among participants. The result is keyed by user ID.
	Split(total money.Amount, participants []Participant) (map[int64]money.Amount, error)

	// Type returns the type identifier for this strategy
	Type() SplitType
}

// Factory creates split strategies based on the requested type
type Factory struct {
	picker *picker
}

// Option configures a Factory
type Option func(*Factory)

// WithRand makes the strategies draw remainder cents from r.
func WithRand(r *rand.Rand) Option {
	return func(f *Factory) {
		f.picker = &picker{rnd: r}
	}
}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory(opts ...Option) *Factory {
	f := &Factory{
		picker: &picker{rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqually:
		return &EquallyStrategy{picker: f.picker}, nil
	case SplitTypeAmount:
		return &AmountStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{picker: f.picker}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrUnknownSplitType     = errors.New("unknown split type")
	ErrMissingWeight        = errors.New("weight value required for all participants")
	ErrNegativeWeight       = errors.New("weights cannot be negative")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrInvalidAmounts       = errors.New("amounts must sum to total amount")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
)

// picker hands out participant indexes for remainder cents.
// rand.Rand is not safe for concurrent use, hence the mutex.
type picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// sample returns k distinct indexes in [0, n).
func (p *picker) sample(n, k int) []int {
	return p.perm(n)[:k]
}

func (p *picker) perm(n int) []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Perm(n)
}
