package domain

// EmploymentRateProfile is the contribution split for one employment type.
// EmployerRate is TotalRate minus EmployeeRate and is zero for self-paying types.
type EmploymentRateProfile struct {
	EmploymentType EmploymentType `yaml:"employment_type" json:"employmentType"`
	TotalRate      float64        `yaml:"total_rate" json:"totalRate"`
	EmployeeRate   float64        `yaml:"employee_rate" json:"employeeRate"`
	EmployerRate   float64        `yaml:"employer_rate" json:"employerRate"`
	Description    string         `yaml:"description" json:"description"`
}

// ProjectionResult is the outcome of one "calculate" action. It is never
// mutated after it is returned; a recalculation produces a new value.
type ProjectionResult struct {
	Mode SimulationMode `json:"mode" yaml:"mode"`

	YearsOfWork    float64 `json:"yearsOfWork" yaml:"years_of_work"`
	CurrentAge     int     `json:"currentAge" yaml:"current_age"`
	RetirementAge  int     `json:"retirementAge" yaml:"retirement_age"`
	RetirementYear int     `json:"retirementYear" yaml:"retirement_year"`

	RateProfile        EmploymentRateProfile `json:"rateProfile" yaml:"rate_profile"`
	ContributionRate   float64               `json:"contributionRate" yaml:"contribution_rate"`
	ValorizationRate   float64               `json:"valorizationRate" yaml:"valorization_rate"`
	AnnualContribution float64               `json:"annualContribution" yaml:"annual_contribution"`

	MainAccountCapital      float64 `json:"mainAccountCapital" yaml:"main_account_capital"`
	SubaccountCapital       float64 `json:"subaccountCapital" yaml:"subaccount_capital"`
	InitialCapitalValorized float64 `json:"initialCapitalValorized" yaml:"initial_capital_valorized"`
	TotalCapitalAccumulated float64 `json:"totalCapitalAccumulated" yaml:"total_capital_accumulated"`

	CalculatedPension     float64 `json:"calculatedPension" yaml:"calculated_pension"`
	ProjectedPension      float64 `json:"projectedPension" yaml:"projected_pension"`
	MinimumPensionApplied bool    `json:"minimumPensionApplied" yaml:"minimum_pension_applied"`
	QualifiedForMinimum   bool    `json:"qualifiedForMinimum" yaml:"qualified_for_minimum"`

	NetIncome       float64 `json:"netIncome" yaml:"net_income"`
	TaxRate         float64 `json:"taxRate" yaml:"tax_rate"`
	ReplacementRate float64 `json:"replacementRate" yaml:"replacement_rate"`
}

// ScenarioDelta is a what-if adjustment on top of a base input
type ScenarioDelta struct {
	ExtraYears         float64 `json:"extraYears" yaml:"extra_years"`
	ExtraSalaryPercent float64 `json:"extraSalaryPercent" yaml:"extra_salary_percent"`
}

// ScenarioResult is a reduced projection recomputed with what-if deltas
type ScenarioResult struct {
	ExtraYears         float64 `json:"extraYears" yaml:"extra_years"`
	ExtraSalaryPercent float64 `json:"extraSalaryPercent" yaml:"extra_salary_percent"`

	Pension       float64 `json:"pension" yaml:"pension"`
	Capital       float64 `json:"capital" yaml:"capital"`
	Years         float64 `json:"years" yaml:"years"`
	RetirementAge float64 `json:"retirementAge" yaml:"retirement_age"`

	MinimumPensionApplied bool `json:"minimumPensionApplied" yaml:"minimum_pension_applied"`
	QualifiedForMinimum   bool `json:"qualifiedForMinimum" yaml:"qualified_for_minimum"`

	PensionChangePercent float64 `json:"pensionChangePercent" yaml:"pension_change_percent"`
	CapitalChangePercent float64 `json:"capitalChangePercent" yaml:"capital_change_percent"`
}

// SeriesKind names one of the chart time series
type SeriesKind string

const (
	SeriesAccumulation SeriesKind = "accumulation"
	SeriesDrawdown     SeriesKind = "drawdown"
	SeriesBreakdown    SeriesKind = "breakdown"
)

// SeriesPoint is a single {year, value} sample
type SeriesPoint struct {
	Year  int     `json:"year" yaml:"year"`
	Value float64 `json:"value" yaml:"value"`
	// Exhausted marks drawdown years in which the capital is already used up
	Exhausted bool `json:"exhausted,omitempty" yaml:"exhausted,omitempty"`
}

// BreakdownPoint is one year of the contribution breakdown series
type BreakdownPoint struct {
	Year                    int     `json:"year" yaml:"year"`
	EmployeeContribution    float64 `json:"employeeContribution" yaml:"employee_contribution"`
	EmployerContribution    float64 `json:"employerContribution" yaml:"employer_contribution"`
	CumulativeContributions float64 `json:"cumulativeContributions" yaml:"cumulative_contributions"`
	CumulativeValorization  float64 `json:"cumulativeValorization" yaml:"cumulative_valorization"`
	InitialCapital          float64 `json:"initialCapital" yaml:"initial_capital"`
	Capital                 float64 `json:"capital" yaml:"capital"`
}

// Series is the output of a time-series generator; exactly one of Points or
// Breakdown is populated depending on Kind
type Series struct {
	Kind      SeriesKind       `json:"kind" yaml:"kind"`
	Points    []SeriesPoint    `json:"points,omitempty" yaml:"points,omitempty"`
	Breakdown []BreakdownPoint `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

// Len returns the number of samples regardless of kind
func (s Series) Len() int {
	if s.Kind == SeriesBreakdown {
		return len(s.Breakdown)
	}
	return len(s.Points)
}
