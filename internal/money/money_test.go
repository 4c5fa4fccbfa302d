package money

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want Amount
	}{
		{0, 0},
		{0.1, 10},
		{0.1 + 0.2, 30},
		{1.005, 101},
		{2.675, 268},
		{19.99, 1999},
		{-1.005, -101},
		{100, 10000},
	}

	for _, tt := range tests {
		if got := ToCents(tt.in); got != tt.want {
			t.Errorf("ToCents(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromCents(t *testing.T) {
	is := is.New(t)
	is.Equal(FromCents(1999), 19.99)
	is.Equal(FromCents(-50), -0.5)
	is.Equal(FromCents(0), 0.0)
}

func TestPercent(t *testing.T) {
	is := is.New(t)
	is.Equal(Percent(10000, 33.33), Amount(3333))
	is.Equal(Percent(1000, 33.333), Amount(333))
	is.Equal(Percent(1001, 50), Amount(501)) // 500.5 rounds away from zero
	is.Equal(Percent(999, 100), Amount(999))
	is.Equal(Percent(999, 0), Amount(0))
}

func TestDivFloor(t *testing.T) {
	tests := []struct {
		a       Amount
		n       int
		q, rest Amount
	}{
		{1000, 3, 333, 1},
		{1000, 4, 250, 0},
		{2, 3, 0, 2},
		{-1000, 3, -334, 2},
	}

	for _, tt := range tests {
		q, rest := DivFloor(tt.a, tt.n)
		if q != tt.q || rest != tt.rest {
			t.Errorf("DivFloor(%d, %d) = (%d, %d), want (%d, %d)", tt.a, tt.n, q, rest, tt.q, tt.rest)
		}
	}
}

func TestSumAndFormat(t *testing.T) {
	is := is.New(t)
	is.Equal(Sum(), Amount(0))
	is.Equal(Sum(10, 20, -5), Amount(25))
	is.Equal(SumMap(map[int64]Amount{1: 100, 2: -40}), Amount(60))
	is.Equal(Format(1230), "12.30")
	is.Equal(Format(-5), "-0.05")
	is.Equal(Format(0), "0.00")
}

func TestParseCentsRange(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want Amount
		err  bool
	}{
		{"max", 100_000_000_000, MaxAmount, false},
		{"min", -100_000_000_000, -MaxAmount, false},
		{"just over", 100_000_000_000.01, 0, true},
		{"beyond int64 cents", 1.9e17, 0, true},
		{"negative beyond int64 cents", -1.9e17, 0, true},
		{"nan", math.NaN(), 0, true},
		{"inf", math.Inf(1), 0, true},
		{"cents", 12.34, 1234, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			got, err := ParseCents(tt.in)
			if tt.err {
				is.True(errors.Is(err, ErrAmountOutOfRange))
				return
			}
			is.NoErr(err)
			is.Equal(got, tt.want)
		})
	}
}

func TestToCentsPinsOutOfRange(t *testing.T) {
	is := is.New(t)
	is.Equal(ToCents(1.9e17), MaxAmount)
	is.Equal(ToCents(-1.9e17), -MaxAmount)
}

func TestAdd(t *testing.T) {
	is := is.New(t)

	sum, err := Add(MaxAmount-1, 1)
	is.NoErr(err)
	is.Equal(sum, MaxAmount)

	_, err = Add(MaxAmount, 1)
	is.True(errors.Is(err, ErrAmountOutOfRange))

	_, err = Add(-MaxAmount, -1)
	is.True(errors.Is(err, ErrAmountOutOfRange))

	_, err = Add(Amount(math.MaxInt64), Amount(math.MaxInt64))
	is.True(errors.Is(err, ErrAmountOutOfRange))
}

func TestPercentPinsOutOfRange(t *testing.T) {
	is := is.New(t)
	is.Equal(Percent(MaxAmount, 100), MaxAmount)
	is.Equal(Percent(MaxAmount, 1e9), MaxAmount)
	is.Equal(Percent(100, math.NaN()), Amount(0))
}
