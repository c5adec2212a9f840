package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVSummarizer writes one metric per row, followed by one row per what-if scenario
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	res := report.Result

	rows := [][]string{
		{"Metric", "Value"},
		{"Mode", string(res.Mode)},
		{"CurrentAge", strconv.Itoa(res.CurrentAge)},
		{"RetirementAge", strconv.Itoa(res.RetirementAge)},
		{"RetirementYear", strconv.Itoa(res.RetirementYear)},
		{"YearsOfWork", floatString(res.YearsOfWork)},
		{"EmploymentType", string(res.RateProfile.EmploymentType)},
		{"ContributionRate", floatString(res.ContributionRate)},
		{"AnnualContribution", Money(res.AnnualContribution).StringFixed(2)},
		{"MainAccountCapital", Money(res.MainAccountCapital).StringFixed(2)},
		{"SubaccountCapital", Money(res.SubaccountCapital).StringFixed(2)},
		{"InitialCapitalValorized", Money(res.InitialCapitalValorized).StringFixed(2)},
		{"TotalCapital", Money(res.TotalCapitalAccumulated).StringFixed(2)},
		{"CalculatedPension", Money(res.CalculatedPension).StringFixed(2)},
		{"ProjectedPension", Money(res.ProjectedPension).StringFixed(2)},
		{"MinimumPensionApplied", strconv.FormatBool(res.MinimumPensionApplied)},
		{"QualifiedForMinimum", strconv.FormatBool(res.QualifiedForMinimum)},
		{"NetIncome", Money(res.NetIncome).StringFixed(2)},
		{"ReplacementRate", Money(res.ReplacementRate).StringFixed(4)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	if len(report.Scenarios) > 0 {
		header := []string{"ExtraYears", "ExtraSalaryPercent", "Pension", "Capital", "PensionChangePercent", "CapitalChangePercent"}
		if err := w.Write(nil); err != nil {
			return nil, err
		}
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, s := range report.Scenarios {
			row := []string{
				floatString(s.ExtraYears),
				floatString(s.ExtraSalaryPercent),
				Money(s.Pension).StringFixed(2),
				Money(s.Capital).StringFixed(2),
				Money(s.PensionChangePercent).StringFixed(2),
				Money(s.CapitalChangePercent).StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func floatString(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
