package server

import (
	"github.com/rgehrsitz/zusim/internal/domain"
)

// Response wraps every successful result
type Response struct {
	Metadata Metadata `json:"calculationMetadata"`
	Result   any      `json:"calculationResult"`
}

// Metadata identifies and times one request
type Metadata struct {
	CalculationID          string `json:"calculationId"`
	CalculationStartedAt   string `json:"calculationStartedAt"`
	CalculationCompletedAt string `json:"calculationCompletedAt"`
	CalculationDurationMs  int64  `json:"calculationDurationMs"`
	CalculationOutcome     string `json:"calculationOutcome"`
}

// ErrorResponse is the body of every 4xx/5xx answer
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// OutcomeSuccess marks a completed calculation in Metadata
const OutcomeSuccess = "SUCCESS"

// ScenarioRequest is the body of POST /api/v1/scenario
type ScenarioRequest struct {
	Input              domain.SimulationInput `json:"input"`
	ExtraYears         float64                `json:"extraYears"`
	ExtraSalaryPercent float64                `json:"extraSalaryPercent"`
}

// TargetRequest is the body of POST /api/v1/target. Zero bounds use the solver defaults.
type TargetRequest struct {
	Input            domain.SimulationInput `json:"input"`
	TargetPension    float64                `json:"targetPension"`
	MaxExtraYears    float64                `json:"maxExtraYears"`
	MaxSalaryPercent float64                `json:"maxSalaryPercent"`
}

// CalculateResult is a projection with the default what-if scenarios
type CalculateResult struct {
	Projection domain.ProjectionResult `json:"projection"`
	Scenarios  []domain.ScenarioResult `json:"scenarios"`
}

// RatesResult lists the contribution profiles and the statutory year they belong to
type RatesResult struct {
	Year     int                            `json:"year"`
	Profiles []domain.EmploymentRateProfile `json:"profiles"`
}
