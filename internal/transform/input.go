package transform

import (
	"fmt"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// ChangeEmploymentType moves the insured person to another contribution regime
type ChangeEmploymentType struct {
	To domain.EmploymentType
}

func (ce *ChangeEmploymentType) Name() string {
	return "change_employment"
}

func (ce *ChangeEmploymentType) Description() string {
	return fmt.Sprintf("Switch employment type to %s", ce.To)
}

func (ce *ChangeEmploymentType) Validate(base *Scenario) error {
	if base == nil {
		return NewTransformError(ce.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if !ce.To.IsKnown() {
		return NewTransformError(ce.Name(), "validate", fmt.Sprintf("unknown employment type %q", ce.To), nil)
	}
	return nil
}

func (ce *ChangeEmploymentType) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.Input.EmploymentType = ce.To
	return modified, nil
}

// SetValorizationRate overrides the annual valorization rate of the main account
type SetValorizationRate struct {
	Rate float64
}

func (sv *SetValorizationRate) Name() string {
	return "set_valorization"
}

func (sv *SetValorizationRate) Description() string {
	return fmt.Sprintf("Assume %.2f%% annual valorization", sv.Rate*100)
}

func (sv *SetValorizationRate) Validate(base *Scenario) error {
	if base == nil {
		return NewTransformError(sv.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if sv.Rate <= -1 || sv.Rate > 1 {
		return NewTransformError(sv.Name(), "validate", fmt.Sprintf("rate must be between -1 and 1, got %v", sv.Rate), nil)
	}
	return nil
}

func (sv *SetValorizationRate) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.Input.ValorizationRate = domain.FloatPtr(sv.Rate)
	return modified, nil
}
