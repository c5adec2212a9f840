package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/zusim/internal/domain"
)

func TestAccumulationSeries(t *testing.T) {
	points := AccumulationSeries(1000, 5, 0.05, 0.02, 2028)

	require.Len(t, points, 5)
	assert.Equal(t, 2024, points[0].Year)
	assert.Equal(t, 2028, points[4].Year)
	assert.InDelta(t, 1000*1.05, points[0].Value, 1e-9)
	assert.InDelta(t, AccumulateWithWageGrowth(1000, 5, 0.05, 0.02, 0), points[4].Value, 1e-9)
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Value, points[i-1].Value)
	}
}

func TestAccumulationSeries_Empty(t *testing.T) {
	assert.Empty(t, AccumulationSeries(1000, 0, 0.05, 0, 2024))
	assert.Empty(t, AccumulationSeries(1000, -2, 0.05, 0, 2024))
}

func TestPayoutDrawdownSeries(t *testing.T) {
	points := PayoutDrawdownSeries(30000, 1000, 4, 2055)

	require.Len(t, points, 4)
	assert.Equal(t, 18000.0, points[0].Value)
	assert.False(t, points[0].Exhausted)
	assert.Equal(t, 6000.0, points[1].Value)
	assert.Equal(t, 0.0, points[2].Value, "balance is floored at zero")
	assert.True(t, points[2].Exhausted)
	assert.Equal(t, 0.0, points[3].Value)
	assert.True(t, points[3].Exhausted, "series continues after exhaustion")
	assert.Equal(t, 2058, points[3].Year)
}

func TestPayoutDrawdownSeries_NoPayout(t *testing.T) {
	points := PayoutDrawdownSeries(0, 0, 3, 2055)
	require.Len(t, points, 3)
	for _, p := range points {
		assert.False(t, p.Exhausted, "nothing paid means nothing exhausted")
	}
	assert.Empty(t, PayoutDrawdownSeries(1000, 10, -1, 2055))
}

func TestContributionBreakdownSeries(t *testing.T) {
	points := ContributionBreakdownSeries(600, 400, 3, 0.05, 0, 2026)

	require.Len(t, points, 3)
	assert.Equal(t, 2024, points[0].Year)
	assert.Equal(t, 2026, points[2].Year)
	for _, p := range points {
		assert.InDelta(t, p.Capital, p.CumulativeContributions+p.CumulativeValorization, 1e-9)
		assert.Equal(t, 600.0, p.EmployeeContribution)
		assert.Equal(t, 400.0, p.EmployerContribution)
		assert.Zero(t, p.InitialCapital)
	}
	assert.Equal(t, 3000.0, points[2].CumulativeContributions)
	assert.InDelta(t, AccumulateIterative(1000, 3, 0.05, 0), points[2].Capital, 1e-9)
}

func TestParseSeriesKind(t *testing.T) {
	kind, err := ParseSeriesKind("drawdown")
	assert.NoError(t, err)
	assert.Equal(t, domain.SeriesDrawdown, kind)

	_, err = ParseSeriesKind("histogram")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "histogram")
}

func TestEngineSeries(t *testing.T) {
	engine := newTestEngine()
	in := referenceInput()

	t.Run("accumulation ends at projected capital in the retirement year", func(t *testing.T) {
		series, err := engine.Series(in, domain.ModeDetailed, domain.SeriesAccumulation)
		require.NoError(t, err)
		require.Equal(t, 31, series.Len())
		assert.Equal(t, 2025, series.Points[0].Year)
		assert.Equal(t, 2055, series.Points[30].Year)

		rules := domain.DefaultRules()
		res := ProjectDetailed(in, testNow, &rules)
		assert.InDelta(t, res.MainAccountCapital, series.Points[30].Value, 1e-6)
	})

	t.Run("drawdown covers life expectancy from retirement", func(t *testing.T) {
		series, err := engine.Series(in, domain.ModeQuick, domain.SeriesDrawdown)
		require.NoError(t, err)
		require.Equal(t, 18, series.Len())
		assert.Equal(t, 2055, series.Points[0].Year)
		// capital / 216 paid for 18 years uses it up exactly
		assert.InDelta(t, 0, series.Points[17].Value, 1e-6)
	})

	t.Run("breakdown splits employer share", func(t *testing.T) {
		series, err := engine.Series(in, domain.ModeQuick, domain.SeriesBreakdown)
		require.NoError(t, err)
		require.Equal(t, 31, series.Len())
		assert.InDelta(t, 6000*0.0976*12, series.Breakdown[0].EmployerContribution, 1e-9)
		assert.InDelta(t, 6000*0.0976*12, series.Breakdown[0].EmployeeContribution, 1e-9)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := engine.Series(in, domain.ModeQuick, domain.SeriesKind("pie"))
		assert.Error(t, err)
	})
}

func TestSeries_MatchesProjection(t *testing.T) {
	withInitial := referenceInput()
	withInitial.InitialCapital = 100000

	capitalAsOf := withInitial
	capitalAsOf.Detailed = &domain.DetailedInput{CapitalAsOfYear: domain.IntPtr(2020), WageGrowthRate: 0.03}

	// 34 years already worked, 6 left until retirement in 2030
	longCareer := domain.SimulationInput{
		BirthDate:        domain.DatePtr("1970-01-01"),
		Gender:           domain.GenderFemale,
		MonthlyIncome:    7000,
		EmploymentType:   domain.EmploymentContract,
		WorkStartYear:    domain.IntPtr(1990),
		RetirementAge:    domain.IntPtr(60),
		ValorizationRate: domain.FloatPtr(0.05),
		InitialCapital:   50000,
	}

	tests := []struct {
		name      string
		in        domain.SimulationInput
		mode      domain.SimulationMode
		wantYears int
		wantEnd   int
	}{
		{"quick with initial capital", withInitial, domain.ModeQuick, 31, 2055},
		{"detailed with initial capital", withInitial, domain.ModeDetailed, 31, 2055},
		{"detailed with earlier capital year and wage growth", capitalAsOf, domain.ModeDetailed, 31, 2055},
		{"quick with elapsed span longer than remaining", longCareer, domain.ModeQuick, 34, 2030},
		{"detailed with elapsed span longer than remaining", longCareer, domain.ModeDetailed, 34, 2030},
	}

	rules := domain.DefaultRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res domain.ProjectionResult
			if tt.mode == domain.ModeDetailed {
				res = ProjectDetailed(tt.in, testNow, &rules)
			} else {
				res = ProjectQuick(tt.in, testNow, &rules)
			}
			require.Equal(t, tt.wantEnd, res.RetirementYear)
			want := res.MainAccountCapital + res.InitialCapitalValorized

			acc, err := BuildSeries(tt.in, tt.mode, domain.SeriesAccumulation, testNow, &rules)
			require.NoError(t, err)
			require.Len(t, acc.Points, tt.wantYears)
			last := acc.Points[len(acc.Points)-1]
			assert.Equal(t, res.RetirementYear, last.Year)
			assert.InEpsilon(t, want, last.Value, 1e-9)

			bd, err := BuildSeries(tt.in, tt.mode, domain.SeriesBreakdown, testNow, &rules)
			require.NoError(t, err)
			require.Len(t, bd.Breakdown, tt.wantYears)
			final := bd.Breakdown[len(bd.Breakdown)-1]
			assert.Equal(t, res.RetirementYear, final.Year)
			assert.InEpsilon(t, want, final.Capital, 1e-9)
			assert.InEpsilon(t, res.InitialCapitalValorized, final.InitialCapital, 1e-12)
			for _, p := range bd.Breakdown {
				assert.InDelta(t, p.Capital, p.CumulativeContributions+p.CumulativeValorization+p.InitialCapital, 1e-6)
			}
		})
	}
}

func TestSeries_InitialCapitalPath(t *testing.T) {
	in := referenceInput()
	in.InitialCapital = 1000
	rules := domain.DefaultRules()

	quick, err := BuildSeries(in, domain.ModeQuick, domain.SeriesBreakdown, testNow, &rules)
	require.NoError(t, err)
	for _, p := range quick.Breakdown {
		assert.Equal(t, 1000.0, p.InitialCapital, "quick mode adds initial capital unvalorized")
	}

	detailed, err := BuildSeries(in, domain.ModeDetailed, domain.SeriesBreakdown, testNow, &rules)
	require.NoError(t, err)
	// capital is as of 2024, so the 2025 point carries one year of valorization
	assert.Equal(t, 2025, detailed.Breakdown[0].Year)
	assert.InDelta(t, 1050, detailed.Breakdown[0].InitialCapital, 1e-9)
	assert.InEpsilon(t, 1000*math.Pow(1.05, 31), detailed.Breakdown[30].InitialCapital, 1e-12)
}
