package output

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with whole dollars and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).Abs().StringFixed(0)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if amount.Round(0).IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// FormatPercentage formats a fraction (0.04) as a percentage with 2 decimals.
func FormatPercentage(fraction float64) string {
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(2) + "%"
}

// formatAmount renders a reported float amount; non-finite values are shown as-is.
func formatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return FormatCurrency(decimal.NewFromFloat(v))
}

func amountToString(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func intToString(v int) string { return strconv.Itoa(v) }
