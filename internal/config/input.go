package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/zusim/internal/domain"
)

const (
	MinRetirementAge = 50
	MaxRetirementAge = 80
	MaxSickLeaveDays = 365
	minBirthYear     = 1900
)

var defaultCurrentAge = domain.DefaultRules().DefaultCurrentAge

// ValidationError reports a single rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InputParser handles parsing and validation of simulation input files
type InputParser struct {
	now func() time.Time
}

// NewInputParser creates a new input parser that validates against the wall clock
func NewInputParser() *InputParser {
	return &InputParser{now: time.Now}
}

// NewInputParserAt creates a parser that validates dates against a fixed instant
func NewInputParserAt(now time.Time) *InputParser {
	return &InputParser{now: func() time.Time { return now }}
}

// LoadFromFile loads a simulation input from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML document
func (ip *InputParser) Parse(data []byte) (*domain.SimulationInput, error) {
	var in domain.SimulationInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(&in); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &in, nil
}

// ValidateInput applies the form-boundary checks. The calculation engine
// trusts its input, so anything that passes here is safe to project.
func (ip *InputParser) ValidateInput(in *domain.SimulationInput) error {
	now := ip.now()

	if !in.Gender.IsValid() {
		return invalid("gender", "must be 'male' or 'female', got %q", in.Gender)
	}
	if in.EmploymentType != "" && !in.EmploymentType.IsKnown() {
		return invalid("employment_type", "must be one of employment, b2b, self-employed, got %q", in.EmploymentType)
	}
	if err := nonNegative("monthly_income", in.MonthlyIncome); err != nil {
		return err
	}
	if err := nonNegative("initial_capital", in.InitialCapital); err != nil {
		return err
	}

	if in.BirthDate != nil && !in.BirthDate.IsZero() {
		if in.BirthDate.After(now) {
			return invalid("birth_date", "cannot be in the future")
		}
		if in.BirthDate.Year() < minBirthYear {
			return invalid("birth_date", "must be after %d", minBirthYear)
		}
	}
	if in.CurrentAge != nil && (*in.CurrentAge < 0 || *in.CurrentAge > 120) {
		return invalid("current_age", "must be between 0 and 120")
	}
	if in.RetirementAge != nil {
		if *in.RetirementAge < MinRetirementAge || *in.RetirementAge > MaxRetirementAge {
			return invalid("retirement_age", "must be between %d and %d", MinRetirementAge, MaxRetirementAge)
		}
	}
	if in.RetirementYear != nil && in.RetirementAge == nil {
		if *in.RetirementYear < now.Year() {
			return invalid("retirement_year", "cannot be in the past")
		}
		if age := *in.RetirementYear - birthYear(in, now); age < MinRetirementAge || age > MaxRetirementAge {
			return invalid("retirement_year", "implies retirement at %d, must be between %d and %d", age, MinRetirementAge, MaxRetirementAge)
		}
	}
	if in.WorkStartYear != nil {
		if *in.WorkStartYear > now.Year() {
			return invalid("work_start_year", "cannot be in the future")
		}
		if in.BirthDate != nil && !in.BirthDate.IsZero() && *in.WorkStartYear < in.BirthDate.Year() {
			return invalid("work_start_year", "cannot be before the birth year")
		}
	}
	if in.ValorizationRate != nil {
		if err := rate("valorization_rate", *in.ValorizationRate); err != nil {
			return err
		}
	}

	if in.Detailed != nil {
		if err := validateDetailed(in.Detailed, now); err != nil {
			return err
		}
	}

	return nil
}

// birthYear mirrors the work-span resolver: birth date, then current age, then
// the default current age
func birthYear(in *domain.SimulationInput, now time.Time) int {
	switch {
	case in.BirthDate != nil && !in.BirthDate.IsZero():
		return in.BirthDate.Year()
	case in.CurrentAge != nil:
		return now.Year() - *in.CurrentAge
	default:
		return now.Year() - defaultCurrentAge
	}
}

func validateDetailed(d *domain.DetailedInput, now time.Time) error {
	if err := nonNegative("detailed.subaccount_balance", d.SubaccountBalance); err != nil {
		return err
	}
	if d.SubaccountValorizationRate != nil {
		if err := rate("detailed.subaccount_valorization_rate", *d.SubaccountValorizationRate); err != nil {
			return err
		}
	}
	if err := rate("detailed.wage_growth_rate", d.WageGrowthRate); err != nil {
		return err
	}
	if d.SickLeaveDays < 0 || d.SickLeaveDays > MaxSickLeaveDays {
		return invalid("detailed.sick_leave_days", "must be between 0 and %d", MaxSickLeaveDays)
	}
	for _, b := range d.Benefits {
		switch b {
		case domain.BenefitSickness, domain.BenefitAccident, domain.BenefitLaborFund:
		default:
			return invalid("detailed.benefits", "unknown benefit %q", b)
		}
	}
	switch d.ContributionBase {
	case "", domain.ContributionBaseActual, domain.ContributionBaseFull, domain.ContributionBasePreferential:
	default:
		return invalid("detailed.contribution_base", "must be actual, full or preferential, got %q", d.ContributionBase)
	}
	if d.CapitalAsOfYear != nil && *d.CapitalAsOfYear > now.Year() {
		return invalid("detailed.capital_as_of_year", "cannot be in the future")
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a number")
	}
	if v < 0 {
		return invalid(field, "cannot be negative")
	}
	return nil
}

// rate accepts annual rates in (-100%, 100%]
func rate(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a number")
	}
	if v <= -1 || v > 1 {
		return invalid(field, "must be a fraction between -1 and 1")
	}
	return nil
}
