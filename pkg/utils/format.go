// Package utils provides common formatting helpers for CryptoBuddy.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats an amount as US dollars with thousands grouping and
// two decimals, e.g. 1234567.89 → "$1,234,567.89".
func FormatUSD(amount float64) string {
	negative := amount < 0
	// Round to cents before splitting so a fraction of .995 or more
	// carries into the dollar part instead of being truncated.
	cents := int64(math.Round(math.Abs(amount) * 100))

	formatted := fmt.Sprintf("%s.%02d", groupThousands(cents/100), cents%100)
	if negative && cents != 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatUSDWhole formats an amount as whole dollars, used for market caps
// and volumes, e.g. 850000000000 → "$850,000,000,000".
func FormatUSDWhole(amount float64) string {
	negative := amount < 0
	n := int64(math.Round(math.Abs(amount)))

	formatted := groupThousands(n)
	if negative && n != 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatUSDCompact formats an amount in compact notation.
// e.g., 1927345 → "$1.93M", 850000000000 → "$850B"
func FormatUSDCompact(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	prefix := "$"
	if negative {
		prefix = "-$"
	}

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s%sT", prefix, formatWithDecimals(amount/1e12))
	case amount >= 1e9:
		return fmt.Sprintf("%s%sB", prefix, formatWithDecimals(amount/1e9))
	case amount >= 1e6:
		return fmt.Sprintf("%s%sM", prefix, formatWithDecimals(amount/1e6))
	case amount >= 1e3:
		return fmt.Sprintf("%s%sK", prefix, formatWithDecimals(amount/1e3))
	default:
		return fmt.Sprintf("%s%.2f", prefix, amount)
	}
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// groupThousands formats an integer with western grouping (groups of 3).
func groupThousands(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	return strings.Join(groups, ",")
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
