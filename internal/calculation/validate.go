package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/withdrawal-simulator/internal/domain"
)

// MaxAge is the oldest finalAge strict validation accepts. It leaves a margin past
// the last row of every built-in distribution table.
const MaxAge = 150

// ErrInvalidAssumptions is wrapped by every error from ValidateAssumptions.
var ErrInvalidAssumptions = errors.New("invalid assumptions")

// ValidateAssumptions rejects input the engine would turn into a degenerate or
// non-finite projection. Project itself never calls it.
func ValidateAssumptions(a domain.Assumptions) error {
	rates := []struct {
		name  string
		value float64
	}{
		{"startBalance", a.StartBalance},
		{"annualContribution", a.AnnualContribution},
		{"withdrawalRate", a.WithdrawalRate},
		{"expectedRealReturn", a.ExpectedRealReturn},
		{"expectedInflationRate", a.ExpectedInflationRate},
	}
	for _, r := range rates {
		if math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			return invalid("%s must be finite", r.name)
		}
	}

	if a.StartBalance < 0 {
		return invalid("startBalance cannot be negative")
	}
	if a.AnnualContribution < 0 {
		return invalid("annualContribution cannot be negative")
	}
	if a.WithdrawalRate < 0 {
		return invalid("withdrawalRate cannot be negative")
	}
	if a.ExpectedInflationRate <= -1 {
		return invalid("expectedInflationRate must be greater than -100%%")
	}
	if a.ExpectedRealReturn < -1 {
		return invalid("expectedRealReturn cannot be less than -100%%")
	}
	if a.CurrentAge < 0 {
		return invalid("currentAge cannot be negative")
	}
	if a.StartAge < a.CurrentAge {
		return invalid("startAge (%d) cannot be before currentAge (%d)", a.StartAge, a.CurrentAge)
	}
	if a.FinalAge < a.StartAge {
		return invalid("finalAge (%d) cannot be before startAge (%d)", a.FinalAge, a.StartAge)
	}
	if a.FinalAge > MaxAge {
		return invalid("finalAge (%d) cannot exceed %d", a.FinalAge, MaxAge)
	}
	if !a.Output.Valid() {
		return invalid("output must be %q or %q, got %q", domain.OutputReal, domain.OutputNominal, a.Output)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAssumptions, fmt.Sprintf(format, args...))
}
