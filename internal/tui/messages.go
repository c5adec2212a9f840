package tui

import (
	"github.com/rgehrsitz/zusim/internal/domain"
)

// CalculationCompleteMsg carries a finished projection back into the update loop
type CalculationCompleteMsg struct {
	Input     domain.SimulationInput
	Result    domain.ProjectionResult
	Scenarios []domain.ScenarioResult
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
