package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// ConsoleVerboseFormatter renders the full projection report
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "ZUS PENSION PROJECTION (%s mode)\n", strings.ToUpper(string(res.Mode)))
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		rules := domain.DefaultRules()
		assumptions = AssumptionsFor(&rules)
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CAREER")
	fmt.Fprintln(&buf, "======")
	fmt.Fprintf(&buf, "Current age:           %d\n", res.CurrentAge)
	fmt.Fprintf(&buf, "Retirement age:        %d (%d)\n", res.RetirementAge, res.RetirementYear)
	fmt.Fprintf(&buf, "Years of work:         %g\n", res.YearsOfWork)
	fmt.Fprintf(&buf, "Gross monthly income:  %s\n", FormatCurrency(Money(report.Input.MonthlyIncome)))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CONTRIBUTIONS")
	fmt.Fprintln(&buf, "=============")
	fmt.Fprintf(&buf, "Employment type:       %s\n", res.RateProfile.EmploymentType)
	if res.RateProfile.Description != "" {
		fmt.Fprintf(&buf, "                       %s\n", res.RateProfile.Description)
	}
	fmt.Fprintf(&buf, "Contribution rate:     %s (employee %s, employer %s)\n",
		FormatPercentage(Money(res.ContributionRate)),
		FormatPercentage(Money(res.RateProfile.EmployeeRate)),
		FormatPercentage(Money(res.RateProfile.EmployerRate)))
	fmt.Fprintf(&buf, "Annual contribution:   %s\n", FormatCurrency(Money(res.AnnualContribution)))
	fmt.Fprintf(&buf, "Valorization rate:     %s\n", FormatPercentage(Money(res.ValorizationRate)))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CAPITAL AT RETIREMENT")
	fmt.Fprintln(&buf, "=====================")
	cmpLine(&buf, "Main account", Money(res.MainAccountCapital))
	if res.Mode == domain.ModeDetailed {
		cmpLine(&buf, "Subaccount", Money(res.SubaccountCapital))
	}
	cmpLine(&buf, "Initial capital", Money(res.InitialCapitalValorized))
	cmpLine(&buf, "Total", Money(res.TotalCapitalAccumulated))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PENSION")
	fmt.Fprintln(&buf, "=======")
	cmpLine(&buf, "Calculated", Money(res.CalculatedPension))
	cmpLine(&buf, "Projected", Money(res.ProjectedPension))
	switch {
	case res.MinimumPensionApplied:
		fmt.Fprintln(&buf, "Minimum pension guarantee applied.")
	case !res.QualifiedForMinimum:
		fmt.Fprintln(&buf, "Not yet qualified for the minimum pension guarantee.")
	}
	fmt.Fprintf(&buf, "Replacement rate:      %s\n", FormatPercentage(Money(res.ReplacementRate)))
	fmt.Fprintf(&buf, "Current net income:    %s (tax rate %s)\n", FormatCurrency(Money(res.NetIncome)), FormatPercentage(Money(res.TaxRate)))
	fmt.Fprintln(&buf)

	if len(report.Scenarios) > 0 {
		writeScenarios(&buf, report.Scenarios)
	}

	return buf.Bytes(), nil
}

func writeScenarios(buf *bytes.Buffer, scenarios []domain.ScenarioResult) {
	fmt.Fprintln(buf, "WHAT IF")
	fmt.Fprintln(buf, "=======")
	for _, s := range scenarios {
		fmt.Fprintf(buf, "%s: %s (%s%s%%)\n",
			describeScenario(s),
			FormatCurrency(Money(s.Pension)),
			sign(s.PensionChangePercent),
			Money(s.PensionChangePercent).StringFixed(1))
	}
	fmt.Fprintln(buf)
}

func describeScenario(s domain.ScenarioResult) string {
	parts := []string{}
	if s.ExtraYears != 0 {
		parts = append(parts, fmt.Sprintf("work %g more years", s.ExtraYears))
	}
	if s.ExtraSalaryPercent != 0 {
		parts = append(parts, fmt.Sprintf("earn %g%% more", s.ExtraSalaryPercent))
	}
	if len(parts) == 0 {
		return "As planned"
	}
	return strings.Join(parts, " and ")
}

func sign(v float64) string {
	if v > 0 {
		return "+"
	}
	return ""
}

func cmpLine(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "%-22s %18s\n", label+":", FormatCurrency(amount))
}

// ConsoleFormatter renders a short summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result

	fmt.Fprintln(&buf, "PENSION PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "==========================")
	fmt.Fprintf(&buf, "Projected pension: %s / month\n", FormatCurrency(Money(res.ProjectedPension)))
	fmt.Fprintf(&buf, "Total capital:     %s\n", FormatCurrency(Money(res.TotalCapitalAccumulated)))
	fmt.Fprintf(&buf, "Retirement:        age %d in %d after %g years of work\n", res.RetirementAge, res.RetirementYear, res.YearsOfWork)
	if res.MinimumPensionApplied {
		fmt.Fprintln(&buf, "Minimum pension guarantee applied.")
	}
	for _, s := range report.Scenarios {
		fmt.Fprintf(&buf, "%s: Δ %s\n", describeScenario(s), FormatCurrency(Money(s.Pension-res.ProjectedPension)))
	}
	return buf.Bytes(), nil
}
