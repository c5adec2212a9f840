package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/domain"
)

// Solver finds how much longer to work, or how much more to earn, to reach a
// target monthly pension. The quick projection is nondecreasing in both levers,
// so a bisection on [0, max] converges on the smallest sufficient movement.
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve searches one lever for the target pension
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance <= 0 {
		req.Tolerance = s.Options.Tolerance
	}
	defaults := DefaultConstraints()
	if req.Constraints.MaxExtraYears == 0 {
		req.Constraints.MaxExtraYears = defaults.MaxExtraYears
	}
	if req.Constraints.MaxSalaryPercent == 0 {
		req.Constraints.MaxSalaryPercent = defaults.MaxSalaryPercent
	}

	evaluate := func(v float64) domain.ScenarioResult {
		if req.Lever == LeverExtraYears {
			return s.CalcEngine.EvaluateScenario(req.Input, v, 0)
		}
		return s.CalcEngine.EvaluateScenario(req.Input, 0, v)
	}
	upper := req.Constraints.MaxExtraYears
	if req.Lever == LeverSalary {
		upper = req.Constraints.MaxSalaryPercent
	}

	base := evaluate(0)
	result := &Result{
		Lever:         req.Lever,
		TargetPension: req.TargetPension,
		BasePension:   base.Pension,
	}

	if base.Pension >= req.TargetPension {
		result.Success = true
		result.AlreadyMet = true
		result.Scenario = base
		result.ConvergenceInfo = "Current plan already meets the target"
		return result, nil
	}

	top := evaluate(upper)
	if !(top.Pension >= req.TargetPension) {
		result.set(upper, top)
		result.ConvergenceInfo = fmt.Sprintf("Target not reachable within %g %s", upper, unit(req.Lever))
		return result, nil
	}

	lo, hi := 0.0, upper
	best := top
	for result.Iterations < req.MaxIterations && hi-lo > req.Tolerance {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := (lo + hi) / 2
		res := evaluate(mid)
		if res.Pension >= req.TargetPension {
			hi, best = mid, res
		} else {
			lo = mid
		}
	}

	result.Success = true
	result.set(hi, best)
	result.ConvergenceInfo = fmt.Sprintf("Converged within %g %s after %d iterations", req.Tolerance, unit(req.Lever), result.Iterations)

	s.CalcEngine.Logger.Debugf("breakeven %s: target %.2f reached at %.4f", req.Lever, req.TargetPension, hi)
	return result, nil
}

// SolveAll searches every lever and recommends the cheapest movement
func (s *Solver) SolveAll(ctx context.Context, in domain.SimulationInput, target float64, constraints Constraints) (*MultiLeverResult, error) {
	out := &MultiLeverResult{TargetPension: target, Recommendations: []string{}}

	for _, lever := range []Lever{LeverExtraYears, LeverSalary} {
		res, err := s.Solve(ctx, Request{
			Input:         in,
			TargetPension: target,
			Lever:         lever,
			Constraints:   constraints,
		})
		if err != nil {
			return nil, err
		}
		out.BasePension = res.BasePension
		out.Results = append(out.Results, *res)
	}

	out.Recommendations = recommendations(out.Results)
	return out, nil
}

func recommendations(results []Result) []string {
	recs := []string{}
	for _, r := range results {
		switch {
		case r.AlreadyMet:
			return []string{"Current plan already reaches the target pension"}
		case !r.Success:
			continue
		case r.Lever == LeverExtraYears:
			recs = append(recs, fmt.Sprintf("Work %.1f more years (retire at %.1f)", r.ExtraYears, r.Scenario.RetirementAge))
		case r.Lever == LeverSalary:
			recs = append(recs, fmt.Sprintf("Raise monthly income by %.1f%%", r.ExtraSalaryPercent))
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Target pension is out of reach within the search bounds")
	}
	return recs
}

func (r *Result) set(v float64, scenario domain.ScenarioResult) {
	if r.Lever == LeverExtraYears {
		r.ExtraYears = v
	} else {
		r.ExtraSalaryPercent = v
	}
	r.Scenario = scenario
}

func unit(l Lever) string {
	if l == LeverExtraYears {
		return "years"
	}
	return "percentage points"
}
