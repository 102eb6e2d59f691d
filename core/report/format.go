// Package report turns calculator results into what a driver reads: money
// and percentage strings, the line-by-line breakdown, and the headline
// insights shown next to the numbers.
package report

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders v as US dollars with two decimals and thousands
// separators, e.g. 1234.5 -> "$1,234.50" and -3 -> "-$3.00".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = humanize.Comma(n)
	}
	s := "$" + whole + "." + frac
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatPercentage renders v with one decimal, e.g. 50.768 -> "50.8%".
func FormatPercentage(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// formatNumber prints v the shortest way that round-trips, as in "0.67".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
