package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places in a minor unit.
const Places = 2

var (
	// ErrInvalid is returned when a string is not a usable amount.
	ErrInvalid = errors.New("invalid amount")

	hundred = decimal.New(1, Places)
)

// Money is an exact amount in minor units (cents, paisa).
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromMinor wraps a minor-unit count.
func FromMinor(units int64) Money { return Money(units) }

// Minor returns the raw minor-unit count.
func (m Money) Minor() int64 { return int64(m) }

// Add returns m + o.
func (m Money) Add(o Money) Money { return m + o }

// Sub returns m - o.
func (m Money) Sub(o Money) Money { return m - o }

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool { return m > 0 }

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool { return m < 0 }

// Decimal converts m to a decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -Places)
}

// Float returns m in major units. Display only.
func (m Money) Float() float64 {
	return m.Decimal().InexactFloat64()
}

// String renders m in major units with exactly two decimals, e.g. "4990.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(Places)
}

// Format renders m with thousands separators and an optional symbol prefix,
// e.g. "Rs 1,234.50" or "-1,234.50".
func (m Money) Format(symbol string) string {
	units := int64(m)
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	whole := units / 100
	frac := units % 100
	s := fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(whole), frac)
	if symbol == "" {
		return s
	}
	return symbol + " " + s
}

// Parse converts a decimal string in major units ("12.50", "3500") to Money.
// More than two decimal places is rejected rather than rounded.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalid)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts a major-unit decimal to Money.
func FromDecimal(d decimal.Decimal) (Money, error) {
	minor := d.Mul(hundred)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalid, d, Places)
	}
	bi := minor.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalid, d)
	}
	return Money(bi.Int64()), nil
}

// DivRound divides m by n and rounds half away from zero to the nearest
// minor unit. It panics if n is zero.
func (m Money) DivRound(n int64) Money {
	if n == 0 {
		panic("money: division by zero")
	}
	q := decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(n)).Round(0)
	return Money(q.IntPart())
}

// Percent returns part/whole*100 for display. A zero whole yields 0.
func Percent(part, whole Money) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
