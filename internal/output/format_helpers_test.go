package output

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := map[string]string{
		"0":        "$0",
		"999":      "$999",
		"1234.56":  "$1,235",
		"-1000":    "-$1,000",
		"12345678": "$12,345,678",
		"-0.4":     "$0",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestFormatAmount_NonFinite(t *testing.T) {
	assert.Equal(t, "NaN", formatAmount(math.NaN()))
	assert.Equal(t, "+Inf", formatAmount(math.Inf(1)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "4.00%", FormatPercentage(0.04))
	assert.Equal(t, "-1.25%", FormatPercentage(-0.0125))
}
