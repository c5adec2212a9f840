package calculation

import (
	"context"
	"time"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// Project computes a projection for the engine's current instant and records
// it with the analytics sink. Unknown modes are treated as quick.
func (e *Engine) Project(ctx context.Context, in domain.SimulationInput, mode domain.SimulationMode) domain.ProjectionResult {
	now := e.Clock.Now()

	var res domain.ProjectionResult
	if mode == domain.ModeDetailed {
		res = ProjectDetailed(in, now, e.Rules)
	} else {
		res = ProjectQuick(in, now, e.Rules)
	}

	if e.Debug {
		e.Logger.Debugf("%s projection: age %d -> %d, %.2f years of work", res.Mode, res.CurrentAge, res.RetirementAge, res.YearsOfWork)
		e.Logger.Debugf("  rate %.4f, valorization %.4f, annual contribution %.2f", res.ContributionRate, res.ValorizationRate, res.AnnualContribution)
		e.Logger.Debugf("  capital: main %.2f, subaccount %.2f, initial %.2f, total %.2f",
			res.MainAccountCapital, res.SubaccountCapital, res.InitialCapitalValorized, res.TotalCapitalAccumulated)
		e.Logger.Debugf("  pension: calculated %.2f, projected %.2f (qualified %t, floor applied %t)",
			res.CalculatedPension, res.ProjectedPension, res.QualifiedForMinimum, res.MinimumPensionApplied)
	}

	e.record(ctx, in, res)
	return res
}

// quickFigures is the arithmetic core shared by quick mode and the scenario evaluator
type quickFigures struct {
	annualContribution  float64
	contributionCapital float64
	totalCapital        float64
	calculatedPension   float64
	floor               MinimumPensionOutcome
}

func computeQuick(monthlyIncome, years float64, profile domain.EmploymentRateProfile, r, initialCapital float64, gender domain.Gender, rules *domain.Rules) quickFigures {
	annual := monthlyIncome * profile.TotalRate * 12
	total := Accumulate(annual, years, r, initialCapital, MethodClosedForm)
	pension := total / float64(rules.LifeExpectancyMonths)
	return quickFigures{
		annualContribution:  annual,
		contributionCapital: AccumulateClosedForm(annual, years, r),
		totalCapital:        total,
		calculatedPension:   pension,
		floor:               ApplyMinimumPensionFloor(pension, years, gender, rules),
	}
}

// ProjectQuick uses income, employment type, work span and optional initial
// capital. Capital follows the closed form; initial capital is added unvalorized.
func ProjectQuick(in domain.SimulationInput, now time.Time, rules *domain.Rules) domain.ProjectionResult {
	span := ResolveWorkSpan(in, now, rules)
	profile := rateProfileFrom(rules, in.EmploymentType)
	r := valorizationRate(in, rules)

	q := computeQuick(in.MonthlyIncome, span.YearsOfWork, profile, r, in.InitialCapital, in.Gender, rules)
	net, taxRate := NetIncome(in.MonthlyIncome, profile, 0, rules)

	return domain.ProjectionResult{
		Mode:                    domain.ModeQuick,
		YearsOfWork:             span.YearsOfWork,
		CurrentAge:              span.CurrentAge,
		RetirementAge:           span.RetirementAge,
		RetirementYear:          span.RetirementYear(),
		RateProfile:             profile,
		ContributionRate:        profile.TotalRate,
		ValorizationRate:        r,
		AnnualContribution:      q.annualContribution,
		MainAccountCapital:      q.contributionCapital,
		InitialCapitalValorized: in.InitialCapital,
		TotalCapitalAccumulated: q.totalCapital,
		CalculatedPension:       q.calculatedPension,
		ProjectedPension:        q.floor.ProjectedPension,
		MinimumPensionApplied:   q.floor.MinimumPensionApplied,
		QualifiedForMinimum:     q.floor.QualifiedForMinimum,
		NetIncome:               net,
		TaxRate:                 taxRate,
		ReplacementRate:         replacementRate(q.floor.ProjectedPension, in.MonthlyIncome),
	}
}

// ProjectDetailed compounds the main account, the subaccount and the initial
// capital independently with the iterative form and sums them
func ProjectDetailed(in domain.SimulationInput, now time.Time, rules *domain.Rules) domain.ProjectionResult {
	span := ResolveWorkSpan(in, now, rules)
	d := in.DetailedOrZero()
	profile := rateProfileFrom(rules, in.EmploymentType)

	rate := profile.TotalRate + BenefitSurcharge(d.Benefits, rules)
	annual := ContributionBaseFor(in, rules) * rate * 12
	r := valorizationRate(in, rules)
	rSub := subaccountValorizationRate(d, rules)

	balanceYears := float64(span.RetirementYear() - capitalAsOfYear(d, now))
	if balanceYears < 0 {
		balanceYears = 0
	}

	main := AccumulateWithWageGrowth(annual, span.YearsOfWork, r, d.WageGrowthRate, 0)
	initial := AccumulateIterative(0, balanceYears, r, in.InitialCapital)
	sub := AccumulateIterative(0, balanceYears, rSub, d.SubaccountBalance)
	total := main + sub + initial

	pension := total / float64(rules.LifeExpectancyMonths)
	floor := ApplyMinimumPensionFloor(pension, span.YearsOfWork, in.Gender, rules)
	net, taxRate := NetIncome(in.MonthlyIncome, profile, d.SickLeaveDays, rules)

	return domain.ProjectionResult{
		Mode:                    domain.ModeDetailed,
		YearsOfWork:             span.YearsOfWork,
		CurrentAge:              span.CurrentAge,
		RetirementAge:           span.RetirementAge,
		RetirementYear:          span.RetirementYear(),
		RateProfile:             profile,
		ContributionRate:        rate,
		ValorizationRate:        r,
		AnnualContribution:      annual,
		MainAccountCapital:      main,
		SubaccountCapital:       sub,
		InitialCapitalValorized: initial,
		TotalCapitalAccumulated: total,
		CalculatedPension:       pension,
		ProjectedPension:        floor.ProjectedPension,
		MinimumPensionApplied:   floor.MinimumPensionApplied,
		QualifiedForMinimum:     floor.QualifiedForMinimum,
		NetIncome:               net,
		TaxRate:                 taxRate,
		ReplacementRate:         replacementRate(floor.ProjectedPension, in.MonthlyIncome),
	}
}

// ContributionBaseFor returns the monthly amount contributions are computed
// from. Only self-employed persons may choose a statutory base.
func ContributionBaseFor(in domain.SimulationInput, rules *domain.Rules) float64 {
	if in.EmploymentType != domain.EmploymentSelfEmployed || in.Detailed == nil {
		return in.MonthlyIncome
	}
	switch in.Detailed.ContributionBase {
	case domain.ContributionBaseFull:
		return rules.FullContributionBase
	case domain.ContributionBasePreferential:
		return rules.PreferentialContributionBase
	default:
		return in.MonthlyIncome
	}
}

// BenefitSurcharge sums the contribution surcharges of the selected benefits, counting each once
func BenefitSurcharge(benefits []domain.Benefit, rules *domain.Rules) float64 {
	seen := make(map[domain.Benefit]bool, len(benefits))
	var total float64
	for _, b := range benefits {
		if seen[b] {
			continue
		}
		seen[b] = true
		total += rules.BenefitSurcharges[b]
	}
	return total
}

func valorizationRate(in domain.SimulationInput, rules *domain.Rules) float64 {
	if in.ValorizationRate != nil {
		return *in.ValorizationRate
	}
	return rules.DefaultValorizationRate
}

func subaccountValorizationRate(d domain.DetailedInput, rules *domain.Rules) float64 {
	if d.SubaccountValorizationRate != nil {
		return *d.SubaccountValorizationRate
	}
	return rules.DefaultSubaccountValorizationRate
}

func capitalAsOfYear(d domain.DetailedInput, now time.Time) int {
	if d.CapitalAsOfYear != nil {
		return *d.CapitalAsOfYear
	}
	return now.Year()
}

func replacementRate(pension, monthlyIncome float64) float64 {
	if monthlyIncome == 0 {
		return 0
	}
	return pension / monthlyIncome
}
