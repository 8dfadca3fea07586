package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePrice parses a price path parameter. Empty, non-numeric, NaN and
// infinite values are rejected.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return f, nil
}

// FormatPrice renders a price with two decimals for exports.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
