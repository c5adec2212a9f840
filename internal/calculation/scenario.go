package calculation

import (
	"time"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// DefaultWhatIfs are the deltas shown next to every projection
var DefaultWhatIfs = []domain.ScenarioDelta{
	{ExtraYears: 2},
	{ExtraSalaryPercent: 10},
}

// EvaluateScenarios evaluates each delta against in; with no deltas it uses DefaultWhatIfs
func (e *Engine) EvaluateScenarios(in domain.SimulationInput, deltas ...domain.ScenarioDelta) []domain.ScenarioResult {
	if len(deltas) == 0 {
		deltas = DefaultWhatIfs
	}
	now := e.Clock.Now()
	out := make([]domain.ScenarioResult, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, EvaluateScenario(in, d.ExtraYears, d.ExtraSalaryPercent, now, e.Rules))
	}
	return out
}

// EvaluateScenario recomputes the quick projection with extra working years and
// a salary raise, holding the rate profile and valorization rate fixed
func (e *Engine) EvaluateScenario(in domain.SimulationInput, extraYears, extraSalaryPercent float64) domain.ScenarioResult {
	return EvaluateScenario(in, extraYears, extraSalaryPercent, e.Clock.Now(), e.Rules)
}

// EvaluateScenario is the clock-free form of Engine.EvaluateScenario. The
// returned change percentages are relative to the unmodified quick projection.
func EvaluateScenario(in domain.SimulationInput, extraYears, extraSalaryPercent float64, now time.Time, rules *domain.Rules) domain.ScenarioResult {
	span := ResolveWorkSpan(in, now, rules)
	profile := rateProfileFrom(rules, in.EmploymentType)
	r := valorizationRate(in, rules)

	base := computeQuick(in.MonthlyIncome, span.YearsOfWork, profile, r, in.InitialCapital, in.Gender, rules)

	years := span.YearsOfWork + extraYears
	income := in.MonthlyIncome * (1 + extraSalaryPercent/100)
	alt := computeQuick(income, years, profile, r, in.InitialCapital, in.Gender, rules)

	return domain.ScenarioResult{
		ExtraYears:            extraYears,
		ExtraSalaryPercent:    extraSalaryPercent,
		Pension:               alt.floor.ProjectedPension,
		Capital:               alt.totalCapital,
		Years:                 years,
		RetirementAge:         float64(span.RetirementAge) + extraYears,
		MinimumPensionApplied: alt.floor.MinimumPensionApplied,
		QualifiedForMinimum:   alt.floor.QualifiedForMinimum,
		PensionChangePercent:  percentChange(base.floor.ProjectedPension, alt.floor.ProjectedPension),
		CapitalChangePercent:  percentChange(base.totalCapital, alt.totalCapital),
	}
}

// percentChange is zero when the base is zero
func percentChange(base, value float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / base * 100
}
