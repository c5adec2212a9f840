package domain

import "time"

// AnalyticsEntry is the flat record emitted for every simulation run
type AnalyticsEntry struct {
	ID               string         `json:"id" yaml:"id"`
	RecordedAt       time.Time      `json:"recordedAt" yaml:"recorded_at"`
	Type             SimulationMode `json:"type" yaml:"type"`
	MonthlyIncome    float64        `json:"monthlyIncome" yaml:"monthly_income"`
	EmploymentType   EmploymentType `json:"employmentType" yaml:"employment_type"`
	Gender           Gender         `json:"gender" yaml:"gender"`
	CurrentAge       int            `json:"currentAge" yaml:"current_age"`
	RetirementAge    int            `json:"retirementAge" yaml:"retirement_age"`
	ProjectedPension float64        `json:"projectedPension" yaml:"projected_pension"`
	YearsOfWork      float64        `json:"yearsOfWork" yaml:"years_of_work"`
	PostalCode       string         `json:"postalCode,omitempty" yaml:"postal_code,omitempty"`
}

// NewAnalyticsEntry copies the analytics fields out of an input and its result
func NewAnalyticsEntry(in SimulationInput, res ProjectionResult) AnalyticsEntry {
	return AnalyticsEntry{
		Type:             res.Mode,
		MonthlyIncome:    in.MonthlyIncome,
		EmploymentType:   in.EmploymentType,
		Gender:           in.Gender,
		CurrentAge:       res.CurrentAge,
		RetirementAge:    res.RetirementAge,
		ProjectedPension: res.ProjectedPension,
		YearsOfWork:      res.YearsOfWork,
		PostalCode:       in.PostalCode,
	}
}
