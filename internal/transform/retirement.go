package transform

import (
	"fmt"
	"math"
)

// ExtendWork postpones retirement by a number of years, lengthening the
// contribution period by the same amount.
type ExtendWork struct {
	Years float64
}

func (ew *ExtendWork) Name() string {
	return "extend_work"
}

func (ew *ExtendWork) Description() string {
	return fmt.Sprintf("Work %s longer before retiring", pluralYears(ew.Years))
}

func (ew *ExtendWork) Validate(base *Scenario) error {
	if base == nil {
		return NewTransformError(ew.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if math.IsNaN(ew.Years) || ew.Years < 0 {
		return NewTransformError(ew.Name(), "validate", fmt.Sprintf("years must be non-negative, got %v", ew.Years), nil)
	}
	if ew.Years > 30 {
		return NewTransformError(ew.Name(), "validate", fmt.Sprintf("years must be at most 30, got %v", ew.Years), nil)
	}
	return nil
}

func (ew *ExtendWork) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.ExtraYears += ew.Years
	return modified, nil
}

// RaiseSalary raises the monthly income by a percentage. Successive raises compound.
type RaiseSalary struct {
	Percent float64
}

func (rs *RaiseSalary) Name() string {
	return "raise_salary"
}

func (rs *RaiseSalary) Description() string {
	return fmt.Sprintf("Raise monthly income by %g%%", rs.Percent)
}

func (rs *RaiseSalary) Validate(base *Scenario) error {
	if base == nil {
		return NewTransformError(rs.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if math.IsNaN(rs.Percent) || rs.Percent <= -100 {
		return NewTransformError(rs.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %v", rs.Percent), nil)
	}
	return nil
}

func (rs *RaiseSalary) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	factor := (1 + modified.ExtraSalaryPercent/100) * (1 + rs.Percent/100)
	modified.ExtraSalaryPercent = (factor - 1) * 100
	return modified, nil
}

func pluralYears(y float64) string {
	if y == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%g years", y)
}
