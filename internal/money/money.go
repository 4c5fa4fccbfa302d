// Package money holds the cent arithmetic shared by the split strategies,
// the ledgers and the settlement algorithm.
//
// Amounts are kept as integer hundredths of the currency unit. Floats only
// appear at the edges: request decoding on the way in and JSON responses on
// the way out.
package money

import (
	"errors"
	"fmt"
	"math"

	exact "github.com/shopspring/decimal"
	"github.com/strongo/decimal"
)

// Amount is a currency value in cents.
type Amount = decimal.Decimal64p2

// MaxAmount is the largest magnitude a single amount or ledger balance may
// hold: one hundred billion currency units. Sums of many such amounts still
// fit in an int64.
const MaxAmount Amount = 100_000_000_000_00

// ErrAmountOutOfRange is returned for amounts whose magnitude exceeds MaxAmount
var ErrAmountOutOfRange = errors.New("amount out of range")

var (
	hundred  = exact.NewFromInt(100)
	maxExact = exact.NewFromInt(int64(MaxAmount))
)

// ParseCents converts a currency amount from the outside world to cents,
// rounding half away from zero. NaN, infinities and magnitudes above
// MaxAmount are rejected with ErrAmountOutOfRange.
func ParseCents(amount float64) (Amount, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", ErrAmountOutOfRange, amount)
	}
	c := exact.NewFromFloat(amount).Shift(2).Round(0)
	if c.Abs().GreaterThan(maxExact) {
		return 0, fmt.Errorf("%w: %v exceeds %s", ErrAmountOutOfRange, amount, Format(MaxAmount))
	}
	return Amount(c.IntPart()), nil
}

// ToCents converts a currency amount to cents, rounding half away from zero.
// The float goes through its shortest decimal form first, so 1.005 is 101
// cents and not 100. The amount must already be within MaxAmount (see
// ParseCents); out of range input is pinned to ±MaxAmount rather than wrapped.
func ToCents(amount float64) Amount {
	c, err := ParseCents(amount)
	if err != nil {
		if amount < 0 {
			return -MaxAmount
		}
		return MaxAmount
	}
	return c
}

// Add returns a + b, or ErrAmountOutOfRange when the result's magnitude
// exceeds MaxAmount.
func Add(a, b Amount) (Amount, error) {
	sum := a + b
	if a > MaxAmount || a < -MaxAmount || b > MaxAmount || b < -MaxAmount ||
		sum > MaxAmount || sum < -MaxAmount {
		return 0, fmt.Errorf("%w: %s + %s", ErrAmountOutOfRange, Format(a), Format(b))
	}
	return sum, nil
}

// FromCents converts cents back to the currency unit.
func FromCents(a Amount) float64 {
	return float64(a) / 100
}

// Percent returns pct percent of total, rounded to the nearest cent. For
// 0 <= pct <= 100 the result's magnitude never exceeds |total|; anything
// larger is pinned to ±MaxAmount.
func Percent(total Amount, pct float64) Amount {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	v := exact.NewFromInt(int64(total)).Mul(exact.NewFromFloat(pct)).Div(hundred).Round(0)
	switch {
	case v.GreaterThan(maxExact):
		return MaxAmount
	case v.LessThan(maxExact.Neg()):
		return -MaxAmount
	}
	return Amount(v.IntPart())
}

// Sum adds up amounts.
func Sum(values ...Amount) Amount {
	var total Amount
	for _, v := range values {
		total += v
	}
	return total
}

// SumMap adds up the values of an amount map.
func SumMap[K comparable](m map[K]Amount) Amount {
	var total Amount
	for _, v := range m {
		total += v
	}
	return total
}

// DivFloor divides a by n rounding toward negative infinity and returns the
// quotient with the non-negative remainder.
func DivFloor(a Amount, n int) (Amount, Amount) {
	d := Amount(n)
	q := a / d
	if a%d != 0 && a < 0 {
		q--
	}
	return q, a - q*d
}

// Format renders an amount with two decimals, e.g. "12.30".
func Format(a Amount) string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, int64(a)/100, int64(a)%100)
}
