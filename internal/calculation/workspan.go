package calculation

import (
	"time"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// WorkSpan is the resolved age and contribution period of a simulation
type WorkSpan struct {
	CurrentAge    int     `json:"currentAge"`
	RetirementAge int     `json:"retirementAge"`
	YearsOfWork   float64 `json:"yearsOfWork"`
	BirthYear     int     `json:"birthYear"`
}

// RetirementYear is the calendar year in which the retirement age is reached
func (ws WorkSpan) RetirementYear() int {
	return ws.BirthYear + ws.RetirementAge
}

// AgeAt returns the number of whole years between birth and at
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}

// ResolveWorkSpan derives current age, retirement age and years of work from
// whichever combination of fields the input supplies. Retirement age range is
// enforced by input validation, not here.
func ResolveWorkSpan(in domain.SimulationInput, now time.Time, rules *domain.Rules) WorkSpan {
	ws := WorkSpan{CurrentAge: rules.DefaultCurrentAge}

	switch {
	case in.BirthDate != nil && !in.BirthDate.IsZero():
		ws.CurrentAge = AgeAt(in.BirthDate.Time, now)
		ws.BirthYear = in.BirthDate.Year()
	case in.CurrentAge != nil:
		ws.CurrentAge = *in.CurrentAge
		ws.BirthYear = now.Year() - ws.CurrentAge
	default:
		ws.BirthYear = now.Year() - ws.CurrentAge
	}

	switch {
	case in.RetirementAge != nil:
		ws.RetirementAge = *in.RetirementAge
	case in.RetirementYear != nil:
		ws.RetirementAge = *in.RetirementYear - ws.BirthYear
	default:
		ws.RetirementAge = rules.DefaultRetirementAge(in.Gender)
	}

	years := float64(ws.RetirementAge - ws.CurrentAge)
	if in.WorkStartYear != nil {
		// someone who already worked longer than the remaining span keeps the longer figure
		if elapsed := float64(now.Year() - *in.WorkStartYear); elapsed > years {
			years = elapsed
		}
	}
	if years < 0 {
		years = 0
	}
	if in.MonthlyIncome > 0 && years < 1 {
		years = 1
	}
	ws.YearsOfWork = years

	return ws
}
