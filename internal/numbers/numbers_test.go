package numbers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "1234", 1234},
		{"us decimal", "1234.56", 1234.56},
		{"german decimal", "2,50", 2.5},
		{"german long form", "1.234,56", 1234.56},
		{"us long form", "1,234.56", 1234.56},
		{"multiple dots", "1.234.567", 1234567},
		{"multiple commas", "1,234,567", 1234567},
		{"german decimal large", "1234,56", 1234.56},
		{"currency euro", "€ 1.234,56", 1234.56},
		{"currency dollar", "$1,234.56", 1234.56},
		{"space as thousands", "1 234,56", 1234.56},
		{"negative", "-5", -5},
		{"parenthesized negative", "(5)", -5},
		{"negative german", "-2,50", -2.5},
		{"four digits after dot", "1.2345", 1.2345},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.input)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

// "2.500" is ambiguous: a three-decimal value or a German thousands
// separator. The import contract reads it as 2500, a known limitation.
func TestParseNumber_SingleDotHeuristic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2.500", 2500},
		{"12.500", 12500},
		// more than two digits before the dot: decimal point
		{"1234.567", 1234.567},
		// not exactly three digits after the dot: decimal point
		{"2.50", 2.5},
		{"2.5000", 2.5},
	}
	for _, tt := range tests {
		got := ParseNumber(tt.input)
		require.NotNil(t, got, tt.input)
		assert.InDelta(t, tt.want, *got, 1e-9, tt.input)
	}
}

// When both separators occur, the later one is the decimal separator,
// regardless of how many times the other repeats.
func TestParseNumber_MixedSeparators(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1,234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"1,234,567.89", 1234567.89},
		{"1.234.567,89", 1234567.89},
		{"$1,234.56", 1234.56},
		{"€ 1.234,56", 1234.56},
	}
	for _, tt := range tests {
		got := ParseNumber(tt.input)
		require.NotNil(t, got, tt.input)
		assert.InDelta(t, tt.want, *got, 1e-9, tt.input)
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "12abc", "€", "1.2,3.4,5"} {
		assert.Nil(t, ParseNumber(input), "input %q", input)
	}
}

func TestIsValidEP(t *testing.T) {
	valid := 12.5
	zero := 0.0
	negative := -1.0
	nan := math.NaN()

	assert.True(t, IsValidEP(&valid))
	assert.True(t, IsValidEP(&zero))
	assert.False(t, IsValidEP(&negative))
	assert.False(t, IsValidEP(&nan))
	assert.False(t, IsValidEP(nil))
}

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 5.0, SafeDivide(10, 2))
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, -1.0, SafeDivideOr(10, 0, -1))
	assert.Equal(t, 0.0, SafeDivide(10, math.Inf(1)))
	assert.Equal(t, 0.0, SafeDivide(math.NaN(), 2))
}

func TestToNumberOrZero(t *testing.T) {
	assert.Equal(t, 3.5, ToNumberOrZero(3.5))
	assert.Equal(t, 0.0, ToNumberOrZero(math.NaN()))
	assert.Equal(t, 0.0, ToNumberOrZero(math.Inf(-1)))
}
