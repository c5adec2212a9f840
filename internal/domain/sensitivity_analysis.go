package domain

import "fmt"

// SensitivityParameter represents an input to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string  `yaml:"name" json:"name"`
	MinValue    float64 `yaml:"min_value" json:"minValue"`
	MaxValue    float64 `yaml:"max_value" json:"maxValue"`
	Steps       int     `yaml:"steps" json:"steps"`
	Unit        string  `yaml:"unit" json:"unit"` // "rate", "percent", "years"
	Description string  `yaml:"description" json:"description"`
}

// SensitivityPoint is the projection at one parameter value
type SensitivityPoint struct {
	Value                 float64 `json:"value"`
	Pension               float64 `json:"pension"`
	Capital               float64 `json:"capital"`
	PensionChangePercent  float64 `json:"pensionChangePercent"`
	MinimumPensionApplied bool    `json:"minimumPensionApplied"`
}

// SensitivityAnalysis represents a complete single-parameter sweep
type SensitivityAnalysis struct {
	Parameter   SensitivityParameter `json:"parameter"`
	Mode        SimulationMode       `json:"mode"`
	BaseValue   float64              `json:"baseValue"`
	BasePension float64              `json:"basePension"`
	Points      []SensitivityPoint   `json:"points"`
	Summary     SensitivitySummary   `json:"summary"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MinPension          float64  `json:"minPension"`
	MaxPension          float64  `json:"maxPension"`
	PensionSwingPercent float64  `json:"pensionSwingPercent"` // (max - min) / base
	RiskLevel           string   `json:"riskLevel"`           // "LOW", "MEDIUM", "HIGH"
	Recommendations     []string `json:"recommendations"`
}

// Common sensitivity parameters
var (
	ValorizationRateParam = SensitivityParameter{
		Name:        "valorization_rate",
		MinValue:    0.02,
		MaxValue:    0.08,
		Steps:       7,
		Unit:        "rate",
		Description: "Annual valorization rate of the pension account",
	}

	SalaryChangeParam = SensitivityParameter{
		Name:        "salary_change",
		MinValue:    -20,
		MaxValue:    20,
		Steps:       5,
		Unit:        "percent",
		Description: "Change to monthly gross income",
	}

	RetirementAgeParam = SensitivityParameter{
		Name:        "retirement_age",
		MinValue:    60,
		MaxValue:    70,
		Steps:       6,
		Unit:        "years",
		Description: "Age at which pension payments start",
	}
)

// GetCommonParameters returns the predefined sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		ValorizationRateParam,
		SalaryChangeParam,
		RetirementAgeParam,
	}
}

// SensitivityParameterByName looks up a predefined parameter
func SensitivityParameterByName(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}

// DetermineRiskLevel grades the pension swing across the sweep
func (s *SensitivitySummary) DetermineRiskLevel() string {
	switch {
	case s.PensionSwingPercent > 50:
		return "HIGH"
	case s.PensionSwingPercent > 20:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// GenerateRecommendations describes the risk level for parameter
func (s *SensitivitySummary) GenerateRecommendations(parameter string) []string {
	switch s.RiskLevel {
	case "HIGH":
		return []string{
			fmt.Sprintf("High sensitivity to %s changes", parameter),
			"Treat the projected pension as a wide range, not a point estimate",
		}
	case "MEDIUM":
		return []string{
			fmt.Sprintf("Moderate sensitivity to %s changes", parameter),
			"Revisit the projection when this assumption changes",
		}
	default:
		return []string{
			fmt.Sprintf("Low sensitivity to %s changes", parameter),
			"Projection appears robust",
		}
	}
}
