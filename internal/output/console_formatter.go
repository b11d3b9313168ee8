package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/withdrawal-simulator/internal/domain"
)

// ConsoleFormatter renders the projection as an aligned per-year table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }
func (c ConsoleFormatter) Ext() string  { return "txt" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "401K WITHDRAWAL PROJECTION")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Output: %s dollars\n", result.Output)
	for _, line := range GenerateAssumptions(result.Assumptions) {
		fmt.Fprintf(&buf, "  - %s\n", line)
	}
	fmt.Fprintln(&buf)

	const row = "%4s %5s %14s %12s %12s %14s %14s %12s %12s %12s\n"
	fmt.Fprintf(&buf, row, "Age", "Year", "401k Open", "Proceeds", "Withdrawal", "401k Close", "Taxable Close", "Target", "MRD", "Excess")
	for i := 0; i < result.Len(); i++ {
		td := result.TaxDeferredAt(i)
		tx := result.TaxableAt(i)
		w := result.WithdrawalAt(i)
		fmt.Fprintf(&buf, row,
			intToString(result.Age[i]),
			intToString(result.Year[i]),
			formatAmount(td.OpeningBalance),
			formatAmount(td.InvestmentProceeds),
			formatAmount(td.Withdrawal),
			formatAmount(td.ClosingBalance),
			formatAmount(tx.ClosingBalance),
			formatAmount(w.Target),
			formatAmount(w.MRD),
			formatAmount(w.Excess),
		)
	}
	if result.Len() == 0 {
		fmt.Fprintln(&buf, "(no years simulated)")
	}
	return buf.Bytes(), nil
}

// SummaryFormatter prints headline figures from AnalyzeProjection.
type SummaryFormatter struct{}

func (s SummaryFormatter) Name() string { return "summary" }
func (s SummaryFormatter) Ext() string  { return "txt" }

func (s SummaryFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	a := AnalyzeProjection(result)
	fmt.Fprintln(&buf, "PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if a.Years == 0 {
		fmt.Fprintln(&buf, "No years simulated.")
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "Ages %d-%d (%d years, %s dollars)\n", a.FirstAge, a.FinalAge, a.Years, result.Output)
	fmt.Fprintf(&buf, "Total contributions:   %s\n", FormatCurrency(a.TotalContributions))
	fmt.Fprintf(&buf, "Total withdrawn:       %s\n", FormatCurrency(a.TotalWithdrawn))
	fmt.Fprintf(&buf, "Excess reinvested:     %s\n", FormatCurrency(a.TotalExcess))
	fmt.Fprintf(&buf, "Final 401k balance:    %s\n", FormatCurrency(a.FinalTaxDeferred))
	fmt.Fprintf(&buf, "Final taxable balance: %s\n", FormatCurrency(a.FinalTaxable))
	if a.FirstMRDAge > 0 {
		fmt.Fprintf(&buf, "MRD begins at age %d\n", a.FirstMRDAge)
	}
	if a.FirstBindingMRDAge > 0 {
		fmt.Fprintf(&buf, "MRD exceeds target from age %d\n", a.FirstBindingMRDAge)
	}
	if a.DepletionAge > 0 {
		fmt.Fprintf(&buf, "401k depleted at age %d\n", a.DepletionAge)
	}
	if a.NonFiniteValuesFound {
		fmt.Fprintln(&buf, "Warning: projection contains non-finite values")
	}
	return buf.Bytes(), nil
}
