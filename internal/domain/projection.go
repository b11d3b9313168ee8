package domain

import (
	"math"

	"github.com/rpgo/withdrawal-simulator/internal/series"
)

// OutputMode selects whether reported money is deflated to current-year dollars.
type OutputMode string

const (
	OutputReal    OutputMode = "real"
	OutputNominal OutputMode = "nominal"
)

// Valid reports whether m is one of the known output modes.
func (m OutputMode) Valid() bool { return m == OutputReal || m == OutputNominal }

// Assumptions are the inputs of one projection run.
type Assumptions struct {
	StartBalance          float64    `json:"startBalance" yaml:"startBalance"`
	AnnualContribution    float64    `json:"annualContribution" yaml:"annualContribution"`
	CurrentAge            int        `json:"currentAge" yaml:"currentAge"`
	StartAge              int        `json:"startAge" yaml:"startAge"`
	FinalAge              int        `json:"finalAge" yaml:"finalAge"`
	WithdrawalRate        float64    `json:"withdrawalRate" yaml:"withdrawalRate"`
	ExpectedRealReturn    float64    `json:"expectedRealReturn" yaml:"expectedRealReturn"`
	ExpectedInflationRate float64    `json:"expectedInflationRate" yaml:"expectedInflationRate"`
	Output                OutputMode `json:"output" yaml:"output"`
}

// ExpectedNominalReturn composes the real return and inflation (Fisher equation).
func (a Assumptions) ExpectedNominalReturn() float64 {
	return (1+a.ExpectedRealReturn)*(1+a.ExpectedInflationRate) - 1
}

// Years returns the number of simulated ages, zero when finalAge precedes currentAge.
// Spans wider than math.MaxInt are clamped.
func (a Assumptions) Years() int {
	if a.FinalAge < a.CurrentAge {
		return 0
	}
	span := uint64(a.FinalAge) - uint64(a.CurrentAge)
	if span >= math.MaxInt {
		return math.MaxInt
	}
	return int(span) + 1
}

// Account snapshot field names.
const (
	FieldOpeningBalance     = "openingBalance"
	FieldClosingBalance     = "closingBalance"
	FieldInvestmentProceeds = "investmentProceeds"
	FieldWithdrawal         = "withdrawal"
)

// Withdrawal detail field names.
const (
	FieldTarget = "target"
	FieldMRD    = "mrd"
	FieldExcess = "excess"
	FieldActual = "actual"
)

// AccountFields lists every field recorded for an account.
var AccountFields = []string{FieldOpeningBalance, FieldClosingBalance, FieldInvestmentProceeds, FieldWithdrawal}

// WithdrawalFields lists every field recorded for withdrawal detail.
var WithdrawalFields = []string{FieldTarget, FieldMRD, FieldExcess, FieldActual}

// AccountSnapshot is one account's activity for one year.
type AccountSnapshot struct {
	OpeningBalance     float64 `json:"openingBalance"`
	ClosingBalance     float64 `json:"closingBalance"`
	InvestmentProceeds float64 `json:"investmentProceeds"`
	Withdrawal         float64 `json:"withdrawal"`
}

// Record flattens the snapshot for series accumulation.
func (s AccountSnapshot) Record() series.Record[float64] {
	return series.Record[float64]{
		FieldOpeningBalance:     s.OpeningBalance,
		FieldClosingBalance:     s.ClosingBalance,
		FieldInvestmentProceeds: s.InvestmentProceeds,
		FieldWithdrawal:         s.Withdrawal,
	}
}

// WithdrawalDetail explains how a year's tax-deferred withdrawal was derived.
type WithdrawalDetail struct {
	Target float64 `json:"target"` // inflation-grown desired withdrawal
	MRD    float64 `json:"mrd"`    // statutory minimum
	Excess float64 `json:"excess"` // withdrawn beyond target, reinvested in the taxable account
	Actual float64 `json:"actual"` // negative while contributing
}

// Record flattens the detail for series accumulation.
func (w WithdrawalDetail) Record() series.Record[float64] {
	return series.Record[float64]{
		FieldTarget: w.Target,
		FieldMRD:    w.MRD,
		FieldExcess: w.Excess,
		FieldActual: w.Actual,
	}
}

// YearRecord is everything produced for one simulated age, in nominal terms.
type YearRecord struct {
	Age          int
	Year         int
	OutputFactor float64
	TaxDeferred  AccountSnapshot
	Taxable      AccountSnapshot
	Withdrawal   WithdrawalDetail
}

// ProjectionResult is the column-oriented outcome of a projection, one entry per age.
type ProjectionResult struct {
	Output             OutputMode             `json:"output"`
	Assumptions        Assumptions            `json:"assumptions"`
	Age                []int                  `json:"age"`
	Year               []int                  `json:"year"`
	TaxDeferredAccount series.Series[float64] `json:"taxDeferredAccount"`
	TaxableAccount     series.Series[float64] `json:"taxableAccount"`
	Withdrawal         series.Series[float64] `json:"withdrawal"`
}

// Len returns the number of simulated years in the result.
func (r *ProjectionResult) Len() int { return len(r.Age) }

// TaxDeferredAt returns the tax-deferred snapshot reported for index i.
func (r *ProjectionResult) TaxDeferredAt(i int) AccountSnapshot {
	return snapshotAt(r.TaxDeferredAccount, i)
}

// TaxableAt returns the taxable snapshot reported for index i.
func (r *ProjectionResult) TaxableAt(i int) AccountSnapshot {
	return snapshotAt(r.TaxableAccount, i)
}

// WithdrawalAt returns the withdrawal detail reported for index i.
func (r *ProjectionResult) WithdrawalAt(i int) WithdrawalDetail {
	rec := r.Withdrawal.At(i)
	return WithdrawalDetail{
		Target: rec[FieldTarget],
		MRD:    rec[FieldMRD],
		Excess: rec[FieldExcess],
		Actual: rec[FieldActual],
	}
}

func snapshotAt(s series.Series[float64], i int) AccountSnapshot {
	rec := s.At(i)
	return AccountSnapshot{
		OpeningBalance:     rec[FieldOpeningBalance],
		ClosingBalance:     rec[FieldClosingBalance],
		InvestmentProceeds: rec[FieldInvestmentProceeds],
		Withdrawal:         rec[FieldWithdrawal],
	}
}
