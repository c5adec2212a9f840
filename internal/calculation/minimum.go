package calculation

import (
	"github.com/rgehrsitz/zusim/internal/domain"
)

// MinimumPensionOutcome is the result of applying the statutory floor
type MinimumPensionOutcome struct {
	ProjectedPension      float64 `json:"projectedPension"`
	QualifiedForMinimum   bool    `json:"qualifiedForMinimum"`
	MinimumPensionApplied bool    `json:"minimumPensionApplied"`
}

// ApplyMinimumPensionFloor raises a qualifying pension to the statutory minimum.
// Qualification needs rules.MinimumYears(gender) years of work.
func ApplyMinimumPensionFloor(calculatedMonthlyPension, yearsOfWork float64, gender domain.Gender, rules *domain.Rules) MinimumPensionOutcome {
	out := MinimumPensionOutcome{
		ProjectedPension:    calculatedMonthlyPension,
		QualifiedForMinimum: yearsOfWork >= rules.MinimumYears(gender),
	}
	if !out.QualifiedForMinimum {
		return out
	}
	if rules.MinimumPension > calculatedMonthlyPension {
		out.ProjectedPension = rules.MinimumPension
		out.MinimumPensionApplied = true
	}
	return out
}
