package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// AccumulationSeries returns the main-account capital after each whole year of
// contributions, labelled so that the last point falls in endYear. The last
// value equals AccumulateWithWageGrowth for the same arguments with no initial capital.
func AccumulationSeries(annualContribution, years, r, g float64, endYear int) []domain.SeriesPoint {
	n := WholePeriods(years)
	points := make([]domain.SeriesPoint, 0, n)
	var capital float64
	contribution := annualContribution
	for i := 0; i < n; i++ {
		capital = AccumulationStep(capital, contribution, r)
		contribution *= 1 + g
		points = append(points, domain.SeriesPoint{Year: endYear - n + 1 + i, Value: capital})
	}
	return points
}

// PayoutDrawdownSeries subtracts a year of pension payments from the capital
// for each of the given years. The balance is floored at zero and the series
// continues after exhaustion; those years are only marked, not shortened.
func PayoutDrawdownSeries(totalCapital, monthlyPension float64, years, startYear int) []domain.SeriesPoint {
	if years < 0 {
		years = 0
	}
	points := make([]domain.SeriesPoint, 0, years)
	remaining := totalCapital
	annualPayout := monthlyPension * 12
	for i := 0; i < years; i++ {
		remaining -= annualPayout
		if remaining < 0 {
			remaining = 0
		}
		points = append(points, domain.SeriesPoint{
			Year:      startYear + i,
			Value:     remaining,
			Exhausted: remaining == 0 && annualPayout > 0,
		})
	}
	return points
}

// ContributionBreakdownSeries splits each year's main-account capital into
// contributions paid by each side and the valorization earned on top of them.
// Points are labelled so that the last one falls in endYear.
func ContributionBreakdownSeries(annualEmployee, annualEmployer, years, r, g float64, endYear int) []domain.BreakdownPoint {
	n := WholePeriods(years)
	points := make([]domain.BreakdownPoint, 0, n)
	var capital, paid float64
	growth := 1.0
	for i := 0; i < n; i++ {
		employee := annualEmployee * growth
		employer := annualEmployer * growth
		paid += employee + employer
		capital = AccumulationStep(capital, employee+employer, r)
		points = append(points, domain.BreakdownPoint{
			Year:                    endYear - n + 1 + i,
			EmployeeContribution:    employee,
			EmployerContribution:    employer,
			CumulativeContributions: paid,
			CumulativeValorization:  capital - paid,
			Capital:                 capital,
		})
		growth *= 1 + g
	}
	return points
}

// ParseSeriesKind validates a series name
func ParseSeriesKind(s string) (domain.SeriesKind, error) {
	switch k := domain.SeriesKind(s); k {
	case domain.SeriesAccumulation, domain.SeriesDrawdown, domain.SeriesBreakdown:
		return k, nil
	default:
		return "", fmt.Errorf("unknown series kind %q (valid: accumulation, drawdown, breakdown)", s)
	}
}

// Series derives a chart series from the projection of in. Accumulation and
// breakdown end in the retirement year and track the main account plus initial
// capital, so the last point matches the projected capital; drawdown starts in
// the retirement year.
func (e *Engine) Series(in domain.SimulationInput, mode domain.SimulationMode, kind domain.SeriesKind) (domain.Series, error) {
	return BuildSeries(in, mode, kind, e.Clock.Now(), e.Rules)
}

// BuildSeries is the clock-free form of Engine.Series
func BuildSeries(in domain.SimulationInput, mode domain.SimulationMode, kind domain.SeriesKind, now time.Time, rules *domain.Rules) (domain.Series, error) {
	var res domain.ProjectionResult
	var wageGrowth float64
	base := in.MonthlyIncome
	if mode == domain.ModeDetailed {
		res = ProjectDetailed(in, now, rules)
		wageGrowth = in.DetailedOrZero().WageGrowthRate
		base = ContributionBaseFor(in, rules)
	} else {
		res = ProjectQuick(in, now, rules)
	}
	n := WholePeriods(res.YearsOfWork)

	series := domain.Series{Kind: kind}
	switch kind {
	case domain.SeriesAccumulation:
		series.Points = AccumulationSeries(res.AnnualContribution, res.YearsOfWork, res.ValorizationRate, wageGrowth, res.RetirementYear)
		initial := initialCapitalPath(in, res, now, n)
		for i := range series.Points {
			series.Points[i].Value += initial[i]
		}
	case domain.SeriesDrawdown:
		series.Points = PayoutDrawdownSeries(res.TotalCapitalAccumulated, res.ProjectedPension, rules.LifeExpectancyYears(), res.RetirementYear)
	case domain.SeriesBreakdown:
		employer := base * res.RateProfile.EmployerRate * 12
		employee := res.AnnualContribution - employer
		series.Breakdown = ContributionBreakdownSeries(employee, employer, res.YearsOfWork, res.ValorizationRate, wageGrowth, res.RetirementYear)
		initial := initialCapitalPath(in, res, now, n)
		for i := range series.Breakdown {
			series.Breakdown[i].InitialCapital = initial[i]
			series.Breakdown[i].Capital += initial[i]
		}
	default:
		return domain.Series{}, fmt.Errorf("unknown series kind %q", kind)
	}
	return series, nil
}

// initialCapitalPath values the initial capital at each of n yearly points
// ending in the retirement year, the way the projection carries it. Quick mode
// adds it unvalorized; detailed mode compounds it from the capital-as-of year,
// and years before that year hold the balance as reported.
func initialCapitalPath(in domain.SimulationInput, res domain.ProjectionResult, now time.Time, n int) []float64 {
	path := make([]float64, n)
	asOf := capitalAsOfYear(in.DetailedOrZero(), now)
	for i := range path {
		if res.Mode != domain.ModeDetailed {
			path[i] = in.InitialCapital
			continue
		}
		year := res.RetirementYear - (n - 1 - i)
		path[i] = AccumulateIterative(0, float64(year-asOf), res.ValorizationRate, in.InitialCapital)
	}
	return path
}
