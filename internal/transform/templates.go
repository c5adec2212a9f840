package transform

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with the what-if scenarios offered next to every projection
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Retirement timing
	for _, years := range []float64{1, 2, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("work_%gyr_longer", years),
			Description: fmt.Sprintf("Postpone retirement by %s", pluralYears(years)),
			Transforms:  []ScenarioTransform{&ExtendWork{Years: years}},
		})
	}

	// Income
	for _, pct := range []float64{5, 10, 20} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%gpct", pct),
			Description: fmt.Sprintf("Raise monthly income by %g%%", pct),
			Transforms:  []ScenarioTransform{&RaiseSalary{Percent: pct}},
		})
	}

	registry.Register(Template{
		Name:        "longer_and_raise",
		Description: "Work 2 years longer and raise income by 10%",
		Transforms: []ScenarioTransform{
			&ExtendWork{Years: 2},
			&RaiseSalary{Percent: 10},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario and names the result after it
func ApplyTemplate(base *Scenario, template Template) (*Scenario, error) {
	result, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	result.Name = template.Name
	return result, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "work_"):
			categories["Retirement Timing"] = append(categories["Retirement Timing"], template)
		case strings.HasPrefix(name, "raise_"):
			categories["Income"] = append(categories["Income"], template)
		default:
			categories["Combinations"] = append(categories["Combinations"], template)
		}
	}

	for _, category := range []string{"Retirement Timing", "Income", "Combinations"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  zusim compare input.yaml --with work_2yr_longer,raise_10pct\n")
	sb.WriteString("  zusim compare input.yaml --with extend_work:years=3,raise_salary:percent=15\n")

	return sb.String()
}
