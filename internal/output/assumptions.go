package output

import (
	"fmt"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// AssumptionsFor lists the modeling assumptions behind a projection made with rules
func AssumptionsFor(rules *domain.Rules) []string {
	employment := rules.RateProfiles[domain.EmploymentContract]
	b2b := rules.RateProfiles[domain.EmploymentB2B]
	return []string{
		fmt.Sprintf("Pension contribution rate: %.2f%% (employment), %.2f%% (b2b, self-employed)", employment.TotalRate*100, b2b.TotalRate*100),
		fmt.Sprintf("Valorization: %.1f%% annually unless overridden", rules.DefaultValorizationRate*100),
		fmt.Sprintf("Capital divided by %d months of average life expectancy", rules.LifeExpectancyMonths),
		fmt.Sprintf("Minimum pension %s after %g years (men) / %g years (women)", FormatCurrency(Money(rules.MinimumPension)), rules.MinimumYearsMale, rules.MinimumYearsFemale),
		fmt.Sprintf("Statutory values for %d held constant (no indexation)", rules.Year),
	}
}
