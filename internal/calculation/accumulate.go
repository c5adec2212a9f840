package calculation

import (
	"fmt"
	"math"
)

// AccumulationMethod selects between the two capital formulations.
//
// Call sites: quick mode and the scenario evaluator use MethodClosedForm;
// detailed mode and every time-series generator use MethodIterative.
type AccumulationMethod int

const (
	// MethodClosedForm sums the geometric series and adds initial capital once, unvalorized
	MethodClosedForm AccumulationMethod = iota
	// MethodIterative compounds year by year and valorizes initial capital
	MethodIterative
)

func (m AccumulationMethod) String() string {
	switch m {
	case MethodClosedForm:
		return "closed-form"
	case MethodIterative:
		return "iterative"
	default:
		return fmt.Sprintf("AccumulationMethod(%d)", int(m))
	}
}

// Accumulate returns the capital built from annualContribution paid for years
// at valorization rate r, including initialCapital as the method dictates
func Accumulate(annualContribution, years, r, initialCapital float64, method AccumulationMethod) float64 {
	if method == MethodIterative {
		return AccumulateIterative(annualContribution, years, r, initialCapital)
	}
	return AccumulateClosedForm(annualContribution, years, r) + initialCapital
}

// AccumulateClosedForm is the annuity-due sum c * ((1+r)^years - 1) / r * (1+r),
// or c * years when r is zero. Each contribution is valorized in the year it is
// paid, as AccumulationStep does, so the closed form and the iterative form give
// the same capital for whole years. The ordinary-annuity sum without the
// trailing (1+r) would sit one valorization year below the iterative total.
func AccumulateClosedForm(annualContribution, years, r float64) float64 {
	if r == 0 {
		return annualContribution * years
	}
	return annualContribution * (math.Pow(1+r, years) - 1) / r * (1 + r)
}

// AccumulateIterative compounds whole periods starting from initialCapital
func AccumulateIterative(annualContribution, years, r, initialCapital float64) float64 {
	return AccumulateWithWageGrowth(annualContribution, years, r, 0, initialCapital)
}

// AccumulateWithWageGrowth is the iterative form where each year's
// contribution grows by g over the previous one
func AccumulateWithWageGrowth(firstContribution, years, r, g, initialCapital float64) float64 {
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return math.NaN()
	}
	capital := initialCapital
	contribution := firstContribution
	for i := 0; i < WholePeriods(years); i++ {
		capital = AccumulationStep(capital, contribution, r)
		contribution *= 1 + g
	}
	return capital
}

// AccumulationStep adds one year's contribution and valorizes the sum
func AccumulationStep(capital, contribution, r float64) float64 {
	return (capital + contribution) * (1 + r)
}

// WholePeriods returns the number of complete years in years
func WholePeriods(years float64) int {
	if years <= 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		return 0
	}
	return int(math.Floor(years))
}
