package calculation

import (
	"github.com/rgehrsitz/zusim/internal/domain"
)

// defaultRules backs the rule-free lookups; it is never modified
var defaultRules = domain.DefaultRules()

// RateProfileFor returns the 2024 contribution split for employmentType.
// Unknown or empty types fall back to the employment contract profile.
func RateProfileFor(employmentType domain.EmploymentType) domain.EmploymentRateProfile {
	return rateProfileFrom(&defaultRules, employmentType)
}

// RateProfiles lists the profiles of rules in display order
func RateProfiles(rules *domain.Rules) []domain.EmploymentRateProfile {
	profiles := make([]domain.EmploymentRateProfile, 0, len(domain.EmploymentTypes))
	for _, t := range domain.EmploymentTypes {
		profiles = append(profiles, rateProfileFrom(rules, t))
	}
	return profiles
}

func rateProfileFrom(rules *domain.Rules, employmentType domain.EmploymentType) domain.EmploymentRateProfile {
	profile, ok := rules.RateProfiles[employmentType]
	if !ok {
		employmentType = domain.EmploymentContract
		profile = rules.RateProfiles[employmentType]
	}
	profile.EmploymentType = employmentType
	profile.EmployerRate = profile.TotalRate - profile.EmployeeRate
	return profile
}
