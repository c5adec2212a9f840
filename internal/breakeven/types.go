package breakeven

import (
	"math"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// Lever is the input a solver may move to reach a target pension
type Lever string

const (
	LeverExtraYears Lever = "extra_years" // Postpone retirement
	LeverSalary     Lever = "salary"      // Raise monthly income
	LeverAll        Lever = "all"
)

// Constraints bound the search on each lever
type Constraints struct {
	MaxExtraYears    float64 `json:"maxExtraYears"`
	MaxSalaryPercent float64 `json:"maxSalaryPercent"`
}

// DefaultConstraints returns the search bounds used when a request leaves them zero
func DefaultConstraints() Constraints {
	return Constraints{
		MaxExtraYears:    15,
		MaxSalaryPercent: 500,
	}
}

// Request asks how far a lever must move for the pension to reach TargetPension
type Request struct {
	Input         domain.SimulationInput
	TargetPension float64
	Lever         Lever
	Constraints   Constraints
	MaxIterations int
	Tolerance     float64 // In years or percentage points, depending on the lever
}

// Result is the smallest lever movement found that meets the target
type Result struct {
	Lever           Lever   `json:"lever"`
	TargetPension   float64 `json:"targetPension"`
	BasePension     float64 `json:"basePension"`
	Success         bool    `json:"success"`
	AlreadyMet      bool    `json:"alreadyMet"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	ExtraYears         float64 `json:"extraYears"`
	ExtraSalaryPercent float64 `json:"extraSalaryPercent"`

	Scenario domain.ScenarioResult `json:"scenario"`
}

// MultiLeverResult holds one result per lever
type MultiLeverResult struct {
	TargetPension   float64  `json:"targetPension"`
	BasePension     float64  `json:"basePension"`
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     float64
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     0.01,
		MaxIterations: 60,
	}
}

// Validate checks that the request can be searched
func (r *Request) Validate() error {
	if math.IsNaN(r.TargetPension) || math.IsInf(r.TargetPension, 0) || r.TargetPension <= 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target pension must be a positive amount",
		}
	}
	switch r.Lever {
	case LeverExtraYears, LeverSalary:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported lever: " + string(r.Lever),
		}
	}
	if r.Constraints.MaxExtraYears < 0 || r.Constraints.MaxSalaryPercent < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "constraints cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

// ParseLever maps a CLI or query value onto a Lever
func ParseLever(s string) (Lever, bool) {
	switch Lever(s) {
	case LeverExtraYears, LeverSalary, LeverAll:
		return Lever(s), true
	case "years":
		return LeverExtraYears, true
	}
	return "", false
}
