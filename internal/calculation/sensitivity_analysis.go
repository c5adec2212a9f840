package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// AnalyzeSensitivity sweeps one input across its range and projects the pension
// at every step. Sweeps are not recorded with the analytics sink.
func (e *Engine) AnalyzeSensitivity(in domain.SimulationInput, param domain.SensitivityParameter, mode domain.SimulationMode) (*domain.SensitivityAnalysis, error) {
	if param.Steps < 1 {
		return nil, fmt.Errorf("sensitivity %s: steps must be at least 1", param.Name)
	}
	if param.MinValue > param.MaxValue {
		return nil, fmt.Errorf("sensitivity %s: min_value cannot exceed max_value", param.Name)
	}

	now := e.Clock.Now()
	project := func(in domain.SimulationInput) domain.ProjectionResult {
		if mode == domain.ModeDetailed {
			return ProjectDetailed(in, now, e.Rules)
		}
		return ProjectQuick(in, now, e.Rules)
	}

	base := project(in)
	analysis := &domain.SensitivityAnalysis{
		Parameter:   param,
		Mode:        base.Mode,
		BasePension: base.ProjectedPension,
	}

	switch param.Name {
	case "valorization_rate":
		analysis.BaseValue = base.ValorizationRate
	case "salary_change":
		analysis.BaseValue = 0
	case "retirement_age":
		analysis.BaseValue = float64(base.RetirementAge)
	default:
		return nil, fmt.Errorf("sensitivity: unknown parameter %q", param.Name)
	}

	for _, v := range parameterValues(param) {
		res := project(withParameter(in, param.Name, v))
		analysis.Points = append(analysis.Points, domain.SensitivityPoint{
			Value:                 v,
			Pension:               res.ProjectedPension,
			Capital:               res.TotalCapitalAccumulated,
			PensionChangePercent:  percentChange(base.ProjectedPension, res.ProjectedPension),
			MinimumPensionApplied: res.MinimumPensionApplied,
		})
	}

	analysis.Summary = summarizeSensitivity(analysis)
	e.Logger.Debugf("sensitivity %s: %d points, swing %.2f%%", param.Name, len(analysis.Points), analysis.Summary.PensionSwingPercent)
	return analysis, nil
}

// parameterValues spaces Steps values evenly over [MinValue, MaxValue]
func parameterValues(param domain.SensitivityParameter) []float64 {
	if param.Steps == 1 {
		return []float64{param.MinValue}
	}
	step := (param.MaxValue - param.MinValue) / float64(param.Steps-1)
	values := make([]float64, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue+step*float64(i))
	}
	return values
}

func withParameter(in domain.SimulationInput, name string, value float64) domain.SimulationInput {
	out := in.Clone()
	switch name {
	case "valorization_rate":
		out.ValorizationRate = domain.FloatPtr(value)
	case "salary_change":
		out.MonthlyIncome = in.MonthlyIncome * (1 + value/100)
	case "retirement_age":
		out.RetirementAge = domain.IntPtr(int(math.Round(value)))
		out.RetirementYear = nil
	}
	return out
}

func summarizeSensitivity(a *domain.SensitivityAnalysis) domain.SensitivitySummary {
	var s domain.SensitivitySummary
	if len(a.Points) == 0 {
		return s
	}

	s.MinPension, s.MaxPension = a.Points[0].Pension, a.Points[0].Pension
	for _, p := range a.Points[1:] {
		s.MinPension = math.Min(s.MinPension, p.Pension)
		s.MaxPension = math.Max(s.MaxPension, p.Pension)
	}
	if a.BasePension != 0 {
		s.PensionSwingPercent = (s.MaxPension - s.MinPension) / a.BasePension * 100
	}

	s.RiskLevel = s.DetermineRiskLevel()
	s.Recommendations = s.GenerateRecommendations(a.Parameter.Name)
	return s
}
