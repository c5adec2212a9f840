package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Extra Years",
		"Extra Salary %",
		"Employment Type",
		"Retirement Age",
		"Years of Work",
		"Monthly Pension",
		"Total Capital",
		"Minimum Applied",
		"Pension Diff from Base",
		"Pension % Change",
		"Capital Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		formatFloat(result.ExtraYears),
		formatFloat(result.ExtraSalaryPercent),
		string(result.EmploymentType),
		formatFloat(result.RetirementAge),
		formatFloat(result.YearsOfWork),
		result.MonthlyPension.StringFixed(2),
		result.TotalCapital.StringFixed(2),
		strconv.FormatBool(result.MinimumPensionApplied),
		result.PensionDiffFromBase.StringFixed(2),
		result.PensionPctFromBase.StringFixed(2),
		result.CapitalDiffFromBase.StringFixed(2),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
