package transform

import (
	"fmt"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// Scenario is a base input together with the what-if deltas transforms have
// accumulated. The deltas are evaluated by calculation.EvaluateScenario.
type Scenario struct {
	Name               string
	Input              domain.SimulationInput
	ExtraYears         float64
	ExtraSalaryPercent float64
}

// NewScenario wraps an input with zero deltas
func NewScenario(name string, in domain.SimulationInput) *Scenario {
	return &Scenario{Name: name, Input: in.Clone()}
}

// Copy returns an independent copy of s
func (s *Scenario) Copy() *Scenario {
	c := *s
	c.Input = s.Input.Clone()
	return &c
}

// ScenarioTransform defines the interface for all scenario transformations.
// Transforms are composable: each receives the output of the previous one.
type ScenarioTransform interface {
	// Apply returns a new modified scenario; base is never changed.
	Apply(base *Scenario) (*Scenario, error)

	// Name returns a short identifier for this transform (e.g., "extend_work").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *Scenario) error
}

// ApplyTransforms applies a sequence of transforms to a base scenario.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *Scenario, transforms []ScenarioTransform) (*Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	if len(transforms) == 0 {
		return base.Copy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
