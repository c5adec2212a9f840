package domain

import (
	"fmt"
)

// Rules contains the statutory constants the projection depends on.
// DefaultRules returns the 2024 values; a rules YAML file can override any of them.
type Rules struct {
	Year int `yaml:"year" json:"year"`

	RateProfiles map[EmploymentType]EmploymentRateProfile `yaml:"rate_profiles" json:"rateProfiles"`

	MinimumPension     float64 `yaml:"minimum_pension" json:"minimumPension"`
	MinimumYearsMale   float64 `yaml:"minimum_years_male" json:"minimumYearsMale"`
	MinimumYearsFemale float64 `yaml:"minimum_years_female" json:"minimumYearsFemale"`

	// LifeExpectancyMonths converts total capital into a monthly annuity
	LifeExpectancyMonths int `yaml:"life_expectancy_months" json:"lifeExpectancyMonths"`

	DefaultRetirementAgeMale   int `yaml:"default_retirement_age_male" json:"defaultRetirementAgeMale"`
	DefaultRetirementAgeFemale int `yaml:"default_retirement_age_female" json:"defaultRetirementAgeFemale"`
	DefaultCurrentAge          int `yaml:"default_current_age" json:"defaultCurrentAge"`

	DefaultValorizationRate           float64 `yaml:"default_valorization_rate" json:"defaultValorizationRate"`
	DefaultSubaccountValorizationRate float64 `yaml:"default_subaccount_valorization_rate" json:"defaultSubaccountValorizationRate"`

	TaxThreshold float64 `yaml:"tax_threshold" json:"taxThreshold"`
	TaxRateLow   float64 `yaml:"tax_rate_low" json:"taxRateLow"`
	TaxRateHigh  float64 `yaml:"tax_rate_high" json:"taxRateHigh"`
	SickPayRatio float64 `yaml:"sick_pay_ratio" json:"sickPayRatio"`

	// Monthly contribution bases for self-employed persons
	FullContributionBase         float64 `yaml:"full_contribution_base" json:"fullContributionBase"`
	PreferentialContributionBase float64 `yaml:"preferential_contribution_base" json:"preferentialContributionBase"`

	BenefitSurcharges map[Benefit]float64 `yaml:"benefit_surcharges" json:"benefitSurcharges"`
}

// DefaultRules returns the 2024 statutory values
func DefaultRules() Rules {
	return Rules{
		Year: 2024,
		RateProfiles: map[EmploymentType]EmploymentRateProfile{
			EmploymentContract: {
				EmploymentType: EmploymentContract,
				TotalRate:      0.1952,
				EmployeeRate:   0.0976,
				EmployerRate:   0.0976,
				Description:    "Umowa o pracę: składka emerytalna dzielona po połowie między pracownika i pracodawcę",
			},
			EmploymentB2B: {
				EmploymentType: EmploymentB2B,
				TotalRate:      0.1926,
				EmployeeRate:   0.1926,
				EmployerRate:   0,
				Description:    "B2B: całą składkę emerytalną opłaca przedsiębiorca",
			},
			EmploymentSelfEmployed: {
				EmploymentType: EmploymentSelfEmployed,
				TotalRate:      0.1926,
				EmployeeRate:   0.1926,
				EmployerRate:   0,
				Description:    "Działalność gospodarcza: całą składkę emerytalną opłaca przedsiębiorca",
			},
		},
		MinimumPension:                    1878.91,
		MinimumYearsMale:                  25,
		MinimumYearsFemale:                20,
		LifeExpectancyMonths:              216,
		DefaultRetirementAgeMale:          65,
		DefaultRetirementAgeFemale:        60,
		DefaultCurrentAge:                 25,
		DefaultValorizationRate:           0.05,
		DefaultSubaccountValorizationRate: 0.05,
		TaxThreshold:                      120000,
		TaxRateLow:                        0.12,
		TaxRateHigh:                       0.32,
		SickPayRatio:                      0.8,
		FullContributionBase:              4694.40,
		PreferentialContributionBase:      1272.60,
		BenefitSurcharges: map[Benefit]float64{
			BenefitSickness:  0.0245,
			BenefitAccident:  0.0167,
			BenefitLaborFund: 0.0245,
		},
	}
}

// LifeExpectancyYears is the payout horizon implied by the annuity divisor
func (r *Rules) LifeExpectancyYears() int {
	return r.LifeExpectancyMonths / 12
}

// DefaultRetirementAge returns the statutory retirement age for g
func (r *Rules) DefaultRetirementAge(g Gender) int {
	if g == GenderFemale {
		return r.DefaultRetirementAgeFemale
	}
	return r.DefaultRetirementAgeMale
}

// MinimumYears returns the qualifying period for the minimum pension
func (r *Rules) MinimumYears(g Gender) float64 {
	if g == GenderFemale {
		return r.MinimumYearsFemale
	}
	return r.MinimumYearsMale
}

// Validate checks the rules for internally inconsistent values
func (r *Rules) Validate() error {
	for _, t := range EmploymentTypes {
		p, ok := r.RateProfiles[t]
		if !ok {
			return fmt.Errorf("rate profile for %q is missing", t)
		}
		if p.EmployeeRate < 0 || p.EmployeeRate > p.TotalRate || p.TotalRate > 1 {
			return fmt.Errorf("rate profile for %q must satisfy 0 <= employee rate <= total rate <= 1", t)
		}
	}
	if r.LifeExpectancyMonths <= 0 {
		return fmt.Errorf("life expectancy months must be positive")
	}
	if r.MinimumPension < 0 {
		return fmt.Errorf("minimum pension cannot be negative")
	}
	if r.TaxRateLow < 0 || r.TaxRateLow > 1 || r.TaxRateHigh < 0 || r.TaxRateHigh > 1 {
		return fmt.Errorf("tax rates must be between 0 and 1")
	}
	if r.SickPayRatio < 0 || r.SickPayRatio > 1 {
		return fmt.Errorf("sick pay ratio must be between 0 and 1")
	}
	return nil
}
