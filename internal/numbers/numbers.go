// Package numbers holds the shared numeric primitives for the
// reporting core: locale-tolerant parsing of imported values and the
// safe-division fallback used for every ratio in the system.
package numbers

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a numeric string in German or US formatting to
// a float. Currency symbols and whitespace are stripped, a leading '-'
// or a wrapping '(...)' marks a negative value. Returns nil when the
// value is empty or does not parse to a finite number.
//
// Separator disambiguation works on the dot/comma counts of the
// cleaned string. The single-dot case is a heuristic: "2.500" is read
// as 2500 (thousands separator) when exactly three digits follow the
// dot and at most two precede it, which mis-reads genuine
// three-decimal values. That guess is part of the import contract.
func ParseNumber(value string) *float64 {
	str := strings.TrimSpace(value)
	if str == "" {
		return nil
	}

	str = strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, str)
	if str == "" {
		return nil
	}

	isNegative := strings.HasPrefix(str, "-") || strings.HasPrefix(str, "(")
	if str[0] == '-' || str[0] == '+' || str[0] == '(' {
		str = str[1:]
	}
	str = strings.TrimSuffix(str, ")")

	dots := strings.Count(str, ".")
	commas := strings.Count(str, ",")

	var cleaned string
	switch {
	case dots == 0 && commas == 0:
		cleaned = str
	case dots == 0 && commas == 1:
		// "1234,56" -> 1234.56
		cleaned = strings.Replace(str, ",", ".", 1)
	case dots == 1 && commas == 0:
		before, after, _ := strings.Cut(str, ".")
		if len(after) == 3 && isDigits(after) && len(before) <= 2 && isDigits(before) {
			// "2.500" -> 2500
			cleaned = before + after
		} else {
			// "1234.56" -> 1234.56
			cleaned = str
		}
	case dots > 1 && commas == 0:
		// "1.234.567" -> 1234567
		cleaned = strings.ReplaceAll(str, ".", "")
	case dots == 0 && commas > 1:
		// "1,234,567" -> 1234567
		cleaned = strings.ReplaceAll(str, ",", "")
	default:
		// Both separators present: the one occurring later in the
		// string is the decimal separator, so "1.234,56" reads German
		// and "1,234.56" reads US.
		if strings.LastIndex(str, ",") > strings.LastIndex(str, ".") {
			cleaned = strings.Replace(strings.ReplaceAll(str, ".", ""), ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(str, ",", "")
		}
	}

	result, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(result) || math.IsInf(result, 0) {
		return nil
	}
	if isNegative {
		result = -result
	}
	return &result
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidEP reports whether a parsed value is usable as a unit price.
// Unit prices cannot be negative.
func IsValidEP(value *float64) bool {
	if value == nil {
		return false
	}
	return !math.IsNaN(*value) && !math.IsInf(*value, 0) && *value >= 0
}

// SafeDivide is SafeDivideOr with a fallback of 0.
func SafeDivide(numerator, denominator float64) float64 {
	return SafeDivideOr(numerator, denominator, 0)
}

// SafeDivideOr divides numerator by denominator, returning fallback
// when the denominator is zero or not finite, or when the quotient is
// not finite. Every ratio in the system goes through here.
func SafeDivideOr(numerator, denominator, fallback float64) float64 {
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return fallback
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return fallback
	}
	return result
}

// ToNumberOrZero guards arithmetic against non-finite inputs.
func ToNumberOrZero(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
