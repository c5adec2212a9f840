package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// LoadRules reads a rules YAML file and merges it onto the 2024 defaults.
// An empty filename returns the defaults.
func LoadRules(filename string) (domain.Rules, error) {
	if filename == "" {
		return domain.DefaultRules(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	return ParseRules(data)
}

// ParseRules decodes rules overrides. Keys absent from data keep their
// default values; rate profiles and surcharges merge per entry.
func ParseRules(data []byte) (domain.Rules, error) {
	defaults := domain.DefaultRules()

	rules := domain.DefaultRules()
	rules.RateProfiles = nil
	rules.BenefitSurcharges = nil
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.Rules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	for t, p := range rules.RateProfiles {
		p.EmploymentType = t
		if p.Description == "" {
			p.Description = defaults.RateProfiles[t].Description
		}
		defaults.RateProfiles[t] = p
	}
	for b, v := range rules.BenefitSurcharges {
		defaults.BenefitSurcharges[b] = v
	}
	rules.RateProfiles = defaults.RateProfiles
	rules.BenefitSurcharges = defaults.BenefitSurcharges

	if err := rules.Validate(); err != nil {
		return domain.Rules{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}
