package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulate_FormsAgree(t *testing.T) {
	tests := []struct {
		name  string
		c     float64
		years float64
		r     float64
	}{
		{"reference case", 14054.4, 31, 0.05},
		{"one year", 12000, 1, 0.05},
		{"low rate", 5000, 40, 0.001},
		{"negative rate", 5000, 20, -0.02},
		{"zero years", 5000, 0, 0.05},
		{"high rate", 1000, 10, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := Accumulate(tt.c, tt.years, tt.r, 0, MethodClosedForm)
			iterative := Accumulate(tt.c, tt.years, tt.r, 0, MethodIterative)
			assert.InDelta(t, closed, iterative, 1e-6*math.Max(1, math.Abs(closed)),
				"closed form %.6f and iterative %.6f should agree", closed, iterative)
		})
	}
}

func TestAccumulateClosedForm_AnnuityDue(t *testing.T) {
	ordinary := 14054.4 * (math.Pow(1.05, 31) - 1) / 0.05
	assert.InDelta(t, 994500.45, ordinary, 0.01)

	got := AccumulateClosedForm(14054.4, 31, 0.05)
	assert.InDelta(t, 1044225.47, got, 0.01)
	assert.InEpsilon(t, ordinary*1.05, got, 1e-12, "one valorization year above the ordinary annuity")
	assert.InEpsilon(t, AccumulateIterative(14054.4, 31, 0.05, 0), got, 1e-12)

	assert.InDelta(t, 1050.0, AccumulateClosedForm(1000, 1, 0.05), 1e-9, "a single contribution is valorized in its own year")
}

func TestAccumulate_ZeroRateIsLinear(t *testing.T) {
	assert.Equal(t, 36000.0, Accumulate(1200, 30, 0, 0, MethodClosedForm))
	assert.Equal(t, 36000.0, Accumulate(1200, 30, 0, 0, MethodIterative))
}

func TestAccumulate_InitialCapitalHandling(t *testing.T) {
	closed := Accumulate(0, 10, 0.05, 1000, MethodClosedForm)
	assert.Equal(t, 1000.0, closed, "closed form adds initial capital once")

	iterative := Accumulate(0, 10, 0.05, 1000, MethodIterative)
	assert.InEpsilon(t, 1000*math.Pow(1.05, 10), iterative, 1e-12, "iterative form valorizes initial capital")
}

func TestAccumulate_NonPositiveYears(t *testing.T) {
	assert.Equal(t, 0.0, AccumulateIterative(1000, 0, 0.05, 0))
	assert.Equal(t, 0.0, AccumulateIterative(1000, -3, 0.05, 0))
	assert.Equal(t, 500.0, AccumulateIterative(1000, -3, 0.05, 500), "initial capital survives an empty span")
}

func TestAccumulate_FractionalYearsUseWholePeriods(t *testing.T) {
	assert.Equal(t, AccumulateIterative(1000, 10, 0.05, 0), AccumulateIterative(1000, 10.9, 0.05, 0))
	assert.Equal(t, 10, WholePeriods(10.9))
	assert.Equal(t, 0, WholePeriods(0.5))
}

func TestAccumulate_NaNAndInfinity(t *testing.T) {
	assert.True(t, math.IsNaN(AccumulateClosedForm(math.NaN(), 10, 0.05)))
	assert.True(t, math.IsNaN(AccumulateClosedForm(1000, math.NaN(), 0.05)))
	assert.True(t, math.IsNaN(AccumulateIterative(math.NaN(), 10, 0.05, 0)))
	assert.True(t, math.IsNaN(AccumulateIterative(1000, math.NaN(), 0.05, 0)))
	assert.True(t, math.IsNaN(AccumulateIterative(1000, math.Inf(1), 0.05, 0)), "infinite spans must terminate")
	assert.Equal(t, 0, WholePeriods(math.Inf(1)))
}

func TestAccumulateWithWageGrowth(t *testing.T) {
	// two years, contributions 1000 then 1100
	got := AccumulateWithWageGrowth(1000, 2, 0.05, 0.10, 0)
	expected := ((1000*1.05)+1100) * 1.05
	assert.InDelta(t, expected, got, 1e-9)

	assert.Equal(t, AccumulateIterative(1000, 15, 0.04, 200), AccumulateWithWageGrowth(1000, 15, 0.04, 0, 200))
}

func TestAccumulationMethod_String(t *testing.T) {
	assert.Equal(t, "closed-form", MethodClosedForm.String())
	assert.Equal(t, "iterative", MethodIterative.String())
	assert.Equal(t, "AccumulationMethod(7)", AccumulationMethod(7).String())
}
