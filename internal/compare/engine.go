package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified input
	Templates        []string // Template names or transform specs ("extend_work:years=3")
	ConfigPath       string
}

// Compare evaluates the base input and one alternative per template
func (ce *CompareEngine) Compare(ctx context.Context, in domain.SimulationInput, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	base := transform.NewScenario(baseName, in)
	baseResult := ce.evaluate(base)
	baseResult.Description = "Current plan"

	alternatives := []ComparisonResult{}

	for _, name := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scn, description, err := ce.resolve(base, name)
		if err != nil {
			return nil, err
		}

		altResult := ce.evaluate(scn)
		altResult.Description = description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolve applies a template by name, or a single transform when name is a spec
func (ce *CompareEngine) resolve(base *transform.Scenario, name string) (*transform.Scenario, string, error) {
	if strings.Contains(name, ":") {
		t, err := ce.TransformRegistry.ParseTransformSpec(name)
		if err != nil {
			return nil, "", fmt.Errorf("invalid transform %s: %w", name, err)
		}
		scn, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{t})
		if err != nil {
			return nil, "", fmt.Errorf("failed to apply transform %s: %w", name, err)
		}
		scn.Name = name
		return scn, t.Description(), nil
	}

	template, ok := ce.TemplateRegistry.Get(name)
	if !ok {
		return nil, "", fmt.Errorf("template %s not found", name)
	}
	scn, err := transform.ApplyTemplate(base, template)
	if err != nil {
		return nil, "", fmt.Errorf("failed to apply template %s: %w", name, err)
	}
	return scn, template.Description, nil
}

func (ce *CompareEngine) evaluate(scn *transform.Scenario) ComparisonResult {
	res := ce.CalcEngine.EvaluateScenario(scn.Input, scn.ExtraYears, scn.ExtraSalaryPercent)
	return ce.MetricsCalculator.CalculateMetrics(scn, res)
}
