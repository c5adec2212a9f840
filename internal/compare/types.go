package compare

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/transform"
)

// ComparisonResult represents a single scenario with its key figures rounded for display
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`

	// Deltas the scenario was evaluated with
	ExtraYears         float64               `json:"extraYears"`
	ExtraSalaryPercent float64               `json:"extraSalaryPercent"`
	EmploymentType     domain.EmploymentType `json:"employmentType"`

	// Key Metrics
	MonthlyPension        decimal.Decimal `json:"monthlyPension"`
	TotalCapital          decimal.Decimal `json:"totalCapital"`
	YearsOfWork           float64         `json:"yearsOfWork"`
	RetirementAge         float64         `json:"retirementAge"`
	QualifiedForMinimum   bool            `json:"qualifiedForMinimum"`
	MinimumPensionApplied bool            `json:"minimumPensionApplied"`

	// Comparison to Base
	PensionDiffFromBase decimal.Decimal `json:"pensionDiffFromBase"`
	PensionPctFromBase  decimal.Decimal `json:"pensionPctFromBase"`
	CapitalDiffFromBase decimal.Decimal `json:"capitalDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator turns scenario evaluations into comparison rows
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics rounds an evaluated scenario for display
func (mc *MetricsCalculator) CalculateMetrics(scn *transform.Scenario, res domain.ScenarioResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:          scn.Name,
		ExtraYears:            scn.ExtraYears,
		ExtraSalaryPercent:    scn.ExtraSalaryPercent,
		EmploymentType:        scn.Input.EmploymentType,
		MonthlyPension:        toDecimal(res.Pension).Round(2),
		TotalCapital:          toDecimal(res.Capital).Round(2),
		YearsOfWork:           res.Years,
		RetirementAge:         res.RetirementAge,
		QualifiedForMinimum:   res.QualifiedForMinimum,
		MinimumPensionApplied: res.MinimumPensionApplied,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PensionDiffFromBase = scenario.MonthlyPension.Sub(base.MonthlyPension)

	if !base.MonthlyPension.IsZero() {
		scenario.PensionPctFromBase = scenario.PensionDiffFromBase.
			Div(base.MonthlyPension).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.CapitalDiffFromBase = scenario.TotalCapital.Sub(base.TotalCapital)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest pension
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MonthlyPension.GreaterThan(best.MonthlyPension) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			"Highest Pension: "+best.ScenarioName+" adds "+FormatPLN(best.PensionDiffFromBase)+
				" per month ("+best.PensionPctFromBase.StringFixed(1)+"%)")
	}

	// Best gain per extra year worked
	var efficient *ComparisonResult
	var bestPerYear decimal.Decimal
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ExtraYears <= 0 || !alt.PensionDiffFromBase.IsPositive() {
			continue
		}
		perYear := alt.PensionDiffFromBase.Div(decimal.NewFromFloat(alt.ExtraYears))
		if efficient == nil || perYear.GreaterThan(bestPerYear) {
			efficient, bestPerYear = alt, perYear
		}
	}
	if efficient != nil {
		recommendations = append(recommendations,
			"Best Value per Year: "+efficient.ScenarioName+" adds "+FormatPLN(bestPerYear)+
				" per month for each extra year worked")
	}

	// Reaching the minimum pension qualification
	if !base.QualifiedForMinimum {
		for _, alt := range compSet.AlternativeResults {
			if alt.QualifiedForMinimum {
				recommendations = append(recommendations,
					fmt.Sprintf("Minimum Pension: %s reaches the qualifying period (%.0f years of work)", alt.ScenarioName, alt.YearsOfWork))
				break
			}
		}
	}

	return recommendations
}

// FormatPLN renders an amount with two decimals and the zloty symbol
func FormatPLN(d decimal.Decimal) string {
	return d.StringFixed(2) + " zł"
}

// toDecimal converts engine floats; non-finite values cannot be represented and become zero
func toDecimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
