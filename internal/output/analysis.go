package output

import (
	"math"

	"github.com/rpgo/withdrawal-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Analysis condenses a projection into headline figures.
type Analysis struct {
	Years                int
	FirstAge             int
	FinalAge             int
	FinalTaxDeferred     decimal.Decimal
	FinalTaxable         decimal.Decimal
	TotalContributions   decimal.Decimal
	TotalWithdrawn       decimal.Decimal
	TotalExcess          decimal.Decimal
	FirstMRDAge          int // 0 when no MRD applies
	FirstBindingMRDAge   int // 0 when MRD never exceeds the target
	DepletionAge         int // 0 when the tax-deferred account is never emptied
	NonFiniteValuesFound bool
}

// AnalyzeProjection totals the reported (already rounded and scaled) series.
func AnalyzeProjection(result *domain.ProjectionResult) Analysis {
	a := Analysis{Years: result.Len()}
	if a.Years == 0 {
		return a
	}
	a.FirstAge = result.Age[0]
	a.FinalAge = result.Age[a.Years-1]

	toDec := func(v float64) decimal.Decimal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			a.NonFiniteValuesFound = true
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	}

	for i := 0; i < a.Years; i++ {
		w := result.WithdrawalAt(i)
		actual := toDec(w.Actual)
		if actual.IsNegative() {
			a.TotalContributions = a.TotalContributions.Add(actual.Neg())
		} else {
			a.TotalWithdrawn = a.TotalWithdrawn.Add(actual)
		}
		a.TotalExcess = a.TotalExcess.Add(toDec(w.Excess))
		if a.FirstMRDAge == 0 && w.MRD > 0 {
			a.FirstMRDAge = result.Age[i]
		}
		if a.FirstBindingMRDAge == 0 && w.Excess > 0 {
			a.FirstBindingMRDAge = result.Age[i]
		}
		td := result.TaxDeferredAt(i)
		if a.DepletionAge == 0 && td.OpeningBalance > 0 && td.ClosingBalance <= 0 {
			a.DepletionAge = result.Age[i]
		}
	}

	a.FinalTaxDeferred = toDec(result.TaxDeferredAt(a.Years - 1).ClosingBalance)
	a.FinalTaxable = toDec(result.TaxableAt(a.Years - 1).ClosingBalance)
	return a
}
