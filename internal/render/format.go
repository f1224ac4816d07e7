package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money formats d with the currency symbol, thousands separators and two
// decimals, e.g. "$1,234.50" or "-$3.00".
func Money(currency string, d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	_, cents, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + currency + humanize.Comma(d.IntPart()) + "." + cents
}

// Percent formats p with one decimal, "∞" for an unbounded ratio.
func Percent(p float64) string {
	if math.IsInf(p, 1) {
		return "∞%"
	}
	return fmt.Sprintf("%.1f%%", p)
}

// Float formats a statistic with separators and two decimals.
func Float(f float64) string {
	return humanize.FormatFloat("#,###.##", f)
}

// Count formats an integer with separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
