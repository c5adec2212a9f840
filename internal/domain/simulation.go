package domain

import (
	"strings"
)

// Gender selects the statutory defaults (retirement age, minimum-pension qualification)
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid reports whether g is one of the supported genders
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// EmploymentType identifies the contribution regime of the insured person
type EmploymentType string

const (
	EmploymentContract     EmploymentType = "employment"
	EmploymentB2B          EmploymentType = "b2b"
	EmploymentSelfEmployed EmploymentType = "self-employed"
)

// EmploymentTypes lists the supported employment types in display order
var EmploymentTypes = []EmploymentType{EmploymentContract, EmploymentB2B, EmploymentSelfEmployed}

// IsKnown reports whether t has its own rate profile
func (t EmploymentType) IsKnown() bool {
	for _, known := range EmploymentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ContributionBase selects the monthly amount contributions are computed from
// for self-employed persons in detailed mode
type ContributionBase string

const (
	ContributionBaseActual       ContributionBase = "actual"
	ContributionBaseFull         ContributionBase = "full"
	ContributionBasePreferential ContributionBase = "preferential"
)

// Benefit is an optional insurance that adds a surcharge to the contribution rate
type Benefit string

const (
	BenefitSickness  Benefit = "sickness"
	BenefitAccident  Benefit = "accident"
	BenefitLaborFund Benefit = "labor_fund"
)

// SimulationMode selects the projection formula set
type SimulationMode string

const (
	ModeQuick    SimulationMode = "quick"
	ModeDetailed SimulationMode = "detailed"
)

// ParseSimulationMode converts user input into a mode; empty input means quick
func ParseSimulationMode(s string) (SimulationMode, bool) {
	switch SimulationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeQuick:
		return ModeQuick, true
	case ModeDetailed:
		return ModeDetailed, true
	default:
		return "", false
	}
}

// SimulationInput is the validated form data a projection is computed from.
// Optional fields are pointers so that "not supplied" differs from zero.
type SimulationInput struct {
	BirthDate      *Date          `yaml:"birth_date,omitempty" json:"birthDate,omitempty"`
	CurrentAge     *int           `yaml:"current_age,omitempty" json:"currentAge,omitempty"`
	Gender         Gender         `yaml:"gender" json:"gender"`
	MonthlyIncome  float64        `yaml:"monthly_income" json:"monthlyIncome"`
	EmploymentType EmploymentType `yaml:"employment_type" json:"employmentType"`
	WorkStartYear  *int           `yaml:"work_start_year,omitempty" json:"workStartYear,omitempty"`
	RetirementAge  *int           `yaml:"retirement_age,omitempty" json:"retirementAge,omitempty"`
	RetirementYear *int           `yaml:"retirement_year,omitempty" json:"retirementYear,omitempty"`
	PostalCode     string         `yaml:"postal_code,omitempty" json:"postalCode,omitempty"`

	InitialCapital   float64  `yaml:"initial_capital,omitempty" json:"initialCapital,omitempty"`
	ValorizationRate *float64 `yaml:"valorization_rate,omitempty" json:"valorizationRate,omitempty"`

	Detailed *DetailedInput `yaml:"detailed,omitempty" json:"detailed,omitempty"`
}

// DetailedInput holds the fields only the detailed mode reads
type DetailedInput struct {
	SubaccountBalance          float64          `yaml:"subaccount_balance,omitempty" json:"subaccountBalance,omitempty"`
	SubaccountValorizationRate *float64         `yaml:"subaccount_valorization_rate,omitempty" json:"subaccountValorizationRate,omitempty"`
	WageGrowthRate             float64          `yaml:"wage_growth_rate,omitempty" json:"wageGrowthRate,omitempty"`
	SickLeaveDays              int              `yaml:"sick_leave_days,omitempty" json:"sickLeaveDays,omitempty"`
	Benefits                   []Benefit        `yaml:"benefits,omitempty" json:"benefits,omitempty"`
	ContributionBase           ContributionBase `yaml:"contribution_base,omitempty" json:"contributionBase,omitempty"`
	CapitalAsOfYear            *int             `yaml:"capital_as_of_year,omitempty" json:"capitalAsOfYear,omitempty"`
}

// DetailedOrZero returns the detailed fields, or a zero value when none were supplied
func (in SimulationInput) DetailedOrZero() DetailedInput {
	if in.Detailed == nil {
		return DetailedInput{}
	}
	return *in.Detailed
}

// WithIncome returns a copy of the input with a different monthly income
func (in SimulationInput) WithIncome(monthlyIncome float64) SimulationInput {
	in.MonthlyIncome = monthlyIncome
	return in
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v
func FloatPtr(v float64) *float64 { return &v }

// Clone returns a deep copy so callers can modify optional fields without
// touching the original input
func (in SimulationInput) Clone() SimulationInput {
	out := in
	if in.BirthDate != nil {
		d := *in.BirthDate
		out.BirthDate = &d
	}
	out.CurrentAge = cloneInt(in.CurrentAge)
	out.WorkStartYear = cloneInt(in.WorkStartYear)
	out.RetirementAge = cloneInt(in.RetirementAge)
	out.RetirementYear = cloneInt(in.RetirementYear)
	out.ValorizationRate = cloneFloat(in.ValorizationRate)
	if in.Detailed != nil {
		d := *in.Detailed
		d.SubaccountValorizationRate = cloneFloat(in.Detailed.SubaccountValorizationRate)
		d.CapitalAsOfYear = cloneInt(in.Detailed.CapitalAsOfYear)
		if in.Detailed.Benefits != nil {
			d.Benefits = append([]Benefit(nil), in.Detailed.Benefits...)
		}
		out.Detailed = &d
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
