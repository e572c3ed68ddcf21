package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParseValue converts raw cell text into a typed value.
// It returns nil for blank cells, int64 for integers, float64 for decimals,
// or the original string. Numbers written with a leading zero ("0042") stay
// strings so codes and zip numbers survive the import.
func ParseValue(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if !looksNumeric(trimmed) {
		return s
	}
	// Try integer first
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

// looksNumeric rejects text that strconv would accept but a spreadsheet
// would not treat as a number (hex, Inf, NaN, leading zeros).
func looksNumeric(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if digits == "" {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return false
	}
	c := digits[0]
	return (c >= '0' && c <= '9') || c == '.'
}
