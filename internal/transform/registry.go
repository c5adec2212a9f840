package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// TransformRegistry creates transforms from string parameters, used by the
// compare command for ad-hoc specs such as "extend_work:years=3".
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("extend_work", createExtendWork)
	registry.Register("raise_salary", createRaiseSalary)
	registry.Register("change_employment", createChangeEmployment)
	registry.Register("set_valorization", createSetValorization)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "raise_salary:percent=15"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func floatParam(transform, key string, params map[string]string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createExtendWork(params map[string]string) (ScenarioTransform, error) {
	years, err := floatParam("extend_work", "years", params)
	if err != nil {
		return nil, err
	}
	return &ExtendWork{Years: years}, nil
}

func createRaiseSalary(params map[string]string) (ScenarioTransform, error) {
	percent, err := floatParam("raise_salary", "percent", params)
	if err != nil {
		return nil, err
	}
	return &RaiseSalary{Percent: percent}, nil
}

func createChangeEmployment(params map[string]string) (ScenarioTransform, error) {
	to, ok := params["type"]
	if !ok {
		return nil, fmt.Errorf("change_employment requires 'type' parameter")
	}
	return &ChangeEmploymentType{To: domain.EmploymentType(to)}, nil
}

func createSetValorization(params map[string]string) (ScenarioTransform, error) {
	rate, err := floatParam("set_valorization", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetValorizationRate{Rate: rate}, nil
}
