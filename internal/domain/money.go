package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// leadingFloatRe matches the longest float literal at the start of a string,
// e.g. "1234.56abc" -> "1234.56", "1.234.56" -> "1.234".
var leadingFloatRe = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// leadingIntRe matches a leading integer literal, e.g. "12abc" -> "12".
var leadingIntRe = regexp.MustCompile(`^[+-]?[0-9]+`)

// ParseMoney converts free-form currency text such as "1 234,56 ₽" into a
// float. Empty, non-numeric or non-finite input yields 0.
func ParseMoney(raw string) float64 {
	if raw == "" {
		return 0
	}
	clean := strings.ReplaceAll(stripCurrency(raw), ",", ".")
	return parseLeadingFloat(clean)
}

// ParseMonths parses the months_of_debt column. Only the first comma is
// treated as a decimal separator.
func ParseMonths(raw string) float64 {
	clean := strings.Replace(stripCurrency(raw), ",", ".", 1)
	return parseLeadingFloat(clean)
}

// stripCurrency removes the ruble sign and every whitespace rune, which also
// drops NBSP and narrow NBSP thousands separators.
func stripCurrency(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '₽' || r == '\ufeff' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func parseLeadingFloat(s string) float64 {
	lit := leadingFloatRe.FindString(s)
	if lit == "" {
		return 0
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseIntOrZero parses the leading integer of s, returning 0 when there is none.
func parseIntOrZero(s string) int {
	lit := leadingIntRe.FindString(strings.TrimSpace(s))
	if lit == "" {
		return 0
	}
	v, err := strconv.Atoi(lit)
	if err != nil {
		return 0
	}
	return v
}
