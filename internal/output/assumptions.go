package output

import (
	"fmt"

	"github.com/rpgo/withdrawal-simulator/internal/calculation"
	"github.com/rpgo/withdrawal-simulator/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions rendered in text outputs.
func GenerateAssumptions(a domain.Assumptions) []string {
	lines := []string{
		fmt.Sprintf("Starting 401k balance: %s at age %d", formatAmount(a.StartBalance), a.CurrentAge),
	}
	if a.StartAge > a.CurrentAge {
		lines = append(lines, fmt.Sprintf("Annual contribution: %s until age %d (grows with inflation)", formatAmount(a.AnnualContribution), a.StartAge))
	}
	return append(lines,
		fmt.Sprintf("Withdrawals from age %d: %s of the balance, grown with inflation", a.StartAge, FormatPercentage(a.WithdrawalRate)),
		fmt.Sprintf("Real return: %s, inflation: %s (nominal return %s)", FormatPercentage(a.ExpectedRealReturn), FormatPercentage(a.ExpectedInflationRate), FormatPercentage(a.ExpectedNominalReturn())),
		fmt.Sprintf("Minimum required distributions from age %d; amounts above target are reinvested in the taxable account", calculation.MRDStartAge),
	)
}
