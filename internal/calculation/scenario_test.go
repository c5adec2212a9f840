package calculation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/zusim/internal/domain"
)

func TestEvaluateScenario_Identity(t *testing.T) {
	engine := newTestEngine()
	in := referenceInput()

	base := engine.Project(context.Background(), in, domain.ModeQuick)
	scenario := engine.EvaluateScenario(in, 0, 0)

	assert.Equal(t, base.ProjectedPension, scenario.Pension)
	assert.Equal(t, base.TotalCapitalAccumulated, scenario.Capital)
	assert.Equal(t, base.YearsOfWork, scenario.Years)
	assert.Equal(t, float64(base.RetirementAge), scenario.RetirementAge)
	assert.Equal(t, 0.0, scenario.PensionChangePercent)
	assert.Equal(t, 0.0, scenario.CapitalChangePercent)
}

func TestEvaluateScenario_ExtraYears(t *testing.T) {
	rules := domain.DefaultRules()
	in := referenceInput()

	res := EvaluateScenario(in, 2, 0, testNow, &rules)

	expectedCapital := AccumulateClosedForm(14054.4, 33, 0.05)
	assert.InEpsilon(t, expectedCapital, res.Capital, 1e-12)
	assert.Equal(t, 33.0, res.Years)
	assert.Equal(t, 67.0, res.RetirementAge)
	assert.Greater(t, res.PensionChangePercent, 0.0)
	assert.Greater(t, res.CapitalChangePercent, 0.0)
}

func TestEvaluateScenario_SalaryRaiseScalesLinearly(t *testing.T) {
	rules := domain.DefaultRules()
	in := referenceInput()

	res := EvaluateScenario(in, 0, 10, testNow, &rules)

	assert.InDelta(t, 10.0, res.CapitalChangePercent, 1e-9)
	assert.InDelta(t, 10.0, res.PensionChangePercent, 1e-9)
	assert.Equal(t, 65.0, res.RetirementAge)
}

func TestEvaluateScenario_Monotonic(t *testing.T) {
	rules := domain.DefaultRules()
	in := referenceInput()

	previous := EvaluateScenario(in, 0, 0, testNow, &rules)
	for _, extra := range []float64{1, 2, 5, 10} {
		next := EvaluateScenario(in, extra, 0, testNow, &rules)
		assert.GreaterOrEqual(t, next.Pension, previous.Pension, "%v extra years", extra)
		previous = next
	}

	previous = EvaluateScenario(in, 0, 0, testNow, &rules)
	for _, pct := range []float64{5, 10, 20, 50} {
		next := EvaluateScenario(in, 0, pct, testNow, &rules)
		assert.GreaterOrEqual(t, next.Pension, previous.Pension, "%v%% raise", pct)
		previous = next
	}
}

func TestEvaluateScenario_ReachingQualification(t *testing.T) {
	rules := domain.DefaultRules()
	in := domain.SimulationInput{
		CurrentAge:     domain.IntPtr(42),
		RetirementAge:  domain.IntPtr(65),
		Gender:         domain.GenderMale,
		MonthlyIncome:  2000,
		EmploymentType: domain.EmploymentContract,
	}

	base := EvaluateScenario(in, 0, 0, testNow, &rules)
	assert.False(t, base.QualifiedForMinimum, "23 years is short of 25")

	longer := EvaluateScenario(in, 2, 0, testNow, &rules)
	assert.True(t, longer.QualifiedForMinimum)
	assert.True(t, longer.MinimumPensionApplied)
	assert.Equal(t, 1878.91, longer.Pension)
}

func TestEvaluateScenario_ZeroBase(t *testing.T) {
	rules := domain.DefaultRules()
	in := domain.SimulationInput{CurrentAge: domain.IntPtr(30), Gender: domain.GenderFemale}

	res := EvaluateScenario(in, 5, 10, testNow, &rules)
	assert.Equal(t, 0.0, res.PensionChangePercent)
	assert.Equal(t, 0.0, res.CapitalChangePercent)
}

func TestEvaluateScenarios_DefaultsAndExplicit(t *testing.T) {
	engine := newTestEngine()
	in := referenceInput()

	defaults := engine.EvaluateScenarios(in)
	assert.Len(t, defaults, len(DefaultWhatIfs))
	assert.Equal(t, 2.0, defaults[0].ExtraYears)
	assert.Equal(t, 10.0, defaults[1].ExtraSalaryPercent)
	assert.InDelta(t, 10.0, defaults[1].PensionChangePercent, 1e-9)

	explicit := engine.EvaluateScenarios(in, domain.ScenarioDelta{ExtraYears: 5, ExtraSalaryPercent: 20})
	assert.Len(t, explicit, 1)
	assert.Equal(t, engine.EvaluateScenario(in, 5, 20), explicit[0])
}
