// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a dollar amount with comma grouping and two
// decimal places. e.g., -6200 -> "-$6,200.00"
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + groupDigits(intPart) + "." + fracPart
}

// FormatPercent formats a 0-1 ratio as a percentage string.
// e.g., 0.33333333 -> "33.3%"
func FormatPercent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatDays formats a days-cash-on-hand value to one decimal place.
func FormatDays(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// FormatDelta formats a change against a baseline with an explicit sign.
func FormatDelta(current, baseline decimal.Decimal) string {
	delta := current.Sub(baseline)
	if delta.IsNegative() {
		return FormatMoney(delta)
	}
	return "+" + FormatMoney(delta)
}

// FormatSignedPct formats a signed percentage parameter.
// e.g., 10 -> "+10%", -2.5 -> "-2.5%"
func FormatSignedPct(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', -1, 64)
	if pct >= 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

// FormatDate renders a calendar date for tables and report headers.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// FormatMonth renders a month column label.
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatDaysLate renders a loan's lateness; future due dates show as
// "not due".
func FormatDaysLate(days int) string {
	if days < 0 {
		return "not due"
	}
	return fmt.Sprintf("%d", days)
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
