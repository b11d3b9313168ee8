package calculation

import (
	"math"

	"github.com/rpgo/withdrawal-simulator/internal/domain"
	"github.com/rpgo/withdrawal-simulator/internal/mrd"
	"github.com/rpgo/withdrawal-simulator/internal/series"
)

// MRDStartAge is the first age at which the minimum distribution floor applies.
// It is fixed regardless of the first age covered by the configured schedule.
const MRDStartAge = 70

// maxPreallocatedYears caps the capacity hint for the age and year series.
const maxPreallocatedYears = 256

// State is carried from one simulated year to the next. All money is nominal.
type State struct {
	OpeningTaxDeferredBalance float64
	OpeningTaxableBalance     float64
	Contribution              float64
	TargetWithdrawal          float64
	// InflationFactor deflates nominal money to currentAge-year dollars.
	InflationFactor float64
	// Year is the calendar year of the age being simulated.
	Year int
}

// InitialState returns the state before the first simulated year. The clock is
// read here only, so one projection always reports consecutive years.
func InitialState(a domain.Assumptions) State {
	return State{
		OpeningTaxDeferredBalance: a.StartBalance,
		Contribution:              a.AnnualContribution,
		InflationFactor:           1,
		Year:                      currentYear(),
	}
}

// CalculationEngine runs deterministic withdrawal projections.
type CalculationEngine struct {
	Schedule mrd.Schedule
	Logger   Logger
}

// Option configures a CalculationEngine.
type Option func(*CalculationEngine)

// WithSchedule replaces the default MRD schedule.
func WithSchedule(s mrd.Schedule) Option {
	return func(ce *CalculationEngine) {
		if s != nil {
			ce.Schedule = s
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l Logger) Option {
	return func(ce *CalculationEngine) { ce.SetLogger(l) }
}

// NewCalculationEngine creates an engine using the default MRD table.
func NewCalculationEngine(opts ...Option) *CalculationEngine {
	ce := &CalculationEngine{
		Schedule: mrd.Default,
		Logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(ce)
	}
	return ce
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Step advances the simulation by one year. It returns the state for age+1 and the
// nominal record for age; the input state is not modified.
func (ce *CalculationEngine) Step(a domain.Assumptions, age int, s State) (State, domain.YearRecord) {
	nominalReturn := a.ExpectedNominalReturn()

	if age == a.StartAge {
		s.TargetWithdrawal = s.OpeningTaxDeferredBalance * a.WithdrawalRate
		s.Contribution = 0
	}

	proceeds := s.OpeningTaxDeferredBalance * nominalReturn

	mrdWithdrawal := 0.0
	if age >= MRDStartAge {
		mrdWithdrawal = ce.Schedule.Rate(age) * s.OpeningTaxDeferredBalance
	}

	var actual float64
	if age < a.StartAge {
		actual = -s.Contribution
	} else {
		actual = math.Min(math.Max(s.TargetWithdrawal, mrdWithdrawal), s.OpeningTaxDeferredBalance+proceeds)
	}
	closingTaxDeferred := s.OpeningTaxDeferredBalance + proceeds - actual

	excess := math.Max(0, actual-s.TargetWithdrawal)

	taxableProceeds := s.OpeningTaxableBalance * nominalReturn
	closingTaxable := s.OpeningTaxableBalance + taxableProceeds + excess

	outputFactor := s.InflationFactor
	if a.Output == domain.OutputNominal {
		outputFactor = 1
	}

	rec := domain.YearRecord{
		Age:          age,
		Year:         s.Year,
		OutputFactor: outputFactor,
		TaxDeferred: domain.AccountSnapshot{
			OpeningBalance:     s.OpeningTaxDeferredBalance,
			ClosingBalance:     closingTaxDeferred,
			InvestmentProceeds: proceeds,
			Withdrawal:         actual,
		},
		Taxable: domain.AccountSnapshot{
			OpeningBalance:     s.OpeningTaxableBalance,
			ClosingBalance:     closingTaxable,
			InvestmentProceeds: taxableProceeds,
		},
		Withdrawal: domain.WithdrawalDetail{
			Target: s.TargetWithdrawal,
			MRD:    mrdWithdrawal,
			Excess: excess,
			Actual: actual,
		},
	}

	growth := 1 + a.ExpectedInflationRate
	next := State{
		OpeningTaxDeferredBalance: closingTaxDeferred,
		OpeningTaxableBalance:     closingTaxable,
		Contribution:              s.Contribution * growth,
		TargetWithdrawal:          s.TargetWithdrawal * growth,
		InflationFactor:           s.InflationFactor / growth,
		Year:                      s.Year + 1,
	}
	return next, rec
}

// Project runs the simulation for every age from CurrentAge to FinalAge inclusive.
// It never fails: ill-formed input yields empty series or non-finite values.
func (ce *CalculationEngine) Project(a domain.Assumptions) *domain.ProjectionResult {
	n := min(a.Years(), maxPreallocatedYears)
	result := &domain.ProjectionResult{
		Output:             a.Output,
		Assumptions:        a,
		Age:                make([]int, 0, n),
		Year:               make([]int, 0, n),
		TaxDeferredAccount: series.New[float64](domain.AccountFields...),
		TaxableAccount:     series.New[float64](domain.AccountFields...),
		Withdrawal:         series.New[float64](domain.WithdrawalFields...),
	}

	ce.Logger.Debugf("projecting ages %d-%d (start %d, output %s)", a.CurrentAge, a.FinalAge, a.StartAge, a.Output)

	mrdBound := false
	state := InitialState(a)
	for age := a.CurrentAge; age <= a.FinalAge; age++ {
		var rec domain.YearRecord
		state, rec = ce.Step(a, age, state)

		if age == a.StartAge {
			ce.Logger.Debugf("age %d: withdrawals begin, target %.2f", age, rec.Withdrawal.Target)
		}
		if !mrdBound && rec.Withdrawal.Excess > 0 {
			mrdBound = true
			ce.Logger.Debugf("age %d: MRD %.2f exceeds target %.2f", age, rec.Withdrawal.MRD, rec.Withdrawal.Target)
		}

		record(result, rec)
		if age == a.FinalAge {
			// age++ would wrap at math.MaxInt
			break
		}
	}
	return result
}

// record folds one year into the result, scaling money by the year's output factor.
func record(r *domain.ProjectionResult, rec domain.YearRecord) {
	money := series.Round(0, rec.OutputFactor)
	r.Age = append(r.Age, rec.Age)
	r.Year = append(r.Year, rec.Year)
	r.TaxDeferredAccount = series.Accumulate(r.TaxDeferredAccount, rec.TaxDeferred.Record(), money)
	r.TaxableAccount = series.Accumulate(r.TaxableAccount, rec.Taxable.Record(), money)
	r.Withdrawal = series.Accumulate(r.Withdrawal, rec.Withdrawal.Record(), money)
}
