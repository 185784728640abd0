package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Money
	}{
		{"12.50", 1250},
		{"12.5", 1250},
		{"3500", 350000},
		{"0.10", 10},
		{"0.01", 1},
		{" 42.99 ", 4299},
		{"-5.25", -525},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1.234", "12,50", "99999999999999999999"} {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "4990.00", Money(499000).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-10.00", Money(-1000).String())
	assert.Equal(t, "0.00", Zero.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Rs 1,234.50", Money(123450).Format("Rs"))
	assert.Equal(t, "1,000,000.00", Money(100000000).Format(""))
	assert.Equal(t, "-0.50", Money(-50).Format(""))
	assert.Equal(t, "$ -1,234.05", Money(-123405).Format("$"))
}

func TestExactArithmetic(t *testing.T) {
	// 0.10 + 0.20 drifts in float64; minor units do not.
	a, err := Parse("0.10")
	require.NoError(t, err)
	b, err := Parse("0.20")
	require.NoError(t, err)

	sum := a.Add(b)
	assert.Equal(t, Money(30), sum)
	assert.Equal(t, "0.30", sum.String())

	var total Money
	for i := 0; i < 1000; i++ {
		total = total.Add(a).Add(b)
	}
	for i := 0; i < 1000; i++ {
		total = total.Sub(b)
	}
	assert.Equal(t, Money(10000), total)
	assert.Equal(t, Zero, total.Sub(Money(10000)))
}

func TestDivRound(t *testing.T) {
	assert.Equal(t, Money(33), Money(1000).DivRound(30))
	assert.Equal(t, Money(34), Money(1015).DivRound(30))
	assert.Equal(t, Money(-34), Money(-1015).DivRound(30))
	assert.Equal(t, Money(100), Money(3100).DivRound(31))
	assert.Panics(t, func() { Money(1).DivRound(0) })
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 70.0, Percent(700, 1000), 1e-9)
	assert.InDelta(t, 0.0, Percent(500, 0), 1e-9)
	assert.InDelta(t, 100.1, Percent(1001, 1000), 1e-9)
}

func TestSum(t *testing.T) {
	assert.Equal(t, Money(600), Sum(100, 200, 300))
	assert.Equal(t, Zero, Sum())
}
