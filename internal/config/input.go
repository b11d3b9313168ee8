package config

import (
	"fmt"
	"os"

	"github.com/rpgo/withdrawal-simulator/internal/calculation"
	"github.com/rpgo/withdrawal-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of assumption files
type InputParser struct {
	// Strict applies calculation.ValidateAssumptions after parsing.
	Strict bool
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads assumptions from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Assumptions, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes assumptions from YAML or JSON bytes.
func (ip *InputParser) Parse(data []byte) (*domain.Assumptions, error) {
	var assumptions domain.Assumptions
	if err := yaml.Unmarshal(data, &assumptions); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateAssumptions(&assumptions); err != nil {
		return nil, fmt.Errorf("assumptions validation failed: %w", err)
	}

	return &assumptions, nil
}

// ValidateAssumptions fills defaults and, in strict mode, rejects ill-formed input.
func (ip *InputParser) ValidateAssumptions(a *domain.Assumptions) error {
	if a.Output == "" {
		a.Output = domain.OutputReal
	}
	if !ip.Strict {
		return nil
	}
	return calculation.ValidateAssumptions(*a)
}

// CreateExampleAssumptions returns a sample assumptions document
func (ip *InputParser) CreateExampleAssumptions() *domain.Assumptions {
	return &domain.Assumptions{
		StartBalance:          500000,
		AnnualContribution:    19500,
		CurrentAge:            55,
		StartAge:              65,
		FinalAge:              95,
		WithdrawalRate:        0.04,
		ExpectedRealReturn:    0.04,
		ExpectedInflationRate: 0.02,
		Output:                domain.OutputReal,
	}
}

// SaveAssumptions writes assumptions to filename as YAML.
func SaveAssumptions(a *domain.Assumptions, filename string) error {
	b, err := yaml.Marshal(a)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
