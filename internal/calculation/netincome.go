package calculation

import (
	"github.com/rgehrsitz/zusim/internal/domain"
)

// TaxRateFor returns the income tax rate for a monthly gross income
func TaxRateFor(monthlyIncome float64, rules *domain.Rules) float64 {
	if monthlyIncome*12 > rules.TaxThreshold {
		return rules.TaxRateHigh
	}
	return rules.TaxRateLow
}

// NetIncome returns the average monthly take-home pay after the employee
// pension contribution and income tax. Sick-leave days are paid at
// rules.SickPayRatio, which lowers the yearly average.
func NetIncome(monthlyIncome float64, profile domain.EmploymentRateProfile, sickLeaveDays int, rules *domain.Rules) (net, taxRate float64) {
	taxRate = TaxRateFor(monthlyIncome, rules)
	net = (monthlyIncome - monthlyIncome*profile.EmployeeRate) * (1 - taxRate)
	if sickLeaveDays > 0 {
		net -= net * (1 - rules.SickPayRatio) * float64(sickLeaveDays) / 365
	}
	return net, taxRate
}
