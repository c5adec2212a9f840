package compare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ConfigPath:       "/path/to/input.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:   "base",
			Description:    "Current plan",
			EmploymentType: "employment",
			MonthlyPension: decimal.RequireFromString("4834.38"),
			TotalCapital:   decimal.RequireFromString("1044225.08"),
			YearsOfWork:    31,
			RetirementAge:  65,
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:        "work_2yr_longer",
				Description:         "Postpone retirement by 2 years",
				ExtraYears:          2,
				EmploymentType:      "employment",
				MonthlyPension:      decimal.RequireFromString("5590.12"),
				TotalCapital:        decimal.RequireFromString("1207465.92"),
				YearsOfWork:         33,
				RetirementAge:       67,
				PensionDiffFromBase: decimal.RequireFromString("755.74"),
				PensionPctFromBase:  decimal.RequireFromString("15.63"),
				CapitalDiffFromBase: decimal.RequireFromString("163240.84"),
			},
		},
		Recommendations: []string{
			"Highest Pension: work_2yr_longer adds 755.74 zł per month (15.6%)",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"PENSION SCENARIO COMPARISON",
		"Base Scenario: base",
		"Input: /path/to/input.yaml",
		"base (base)",
		"work_2yr_longer",
		"4834.38",
		"1.04M",
		"+755.74 zł (15.6%)",
		"+163.2K zł",
		"RECOMMENDATIONS",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if !contains(result, "PENSION SCENARIO COMPARISON") {
		t.Error("Expected header in output")
	}
	if contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect comparison section without alternatives")
	}
	if contains(result, "RECOMMENDATIONS") {
		t.Error("Did not expect recommendations section")
	}
}

func TestTableFormatter_formatRow(t *testing.T) {
	formatter := &TableFormatter{}
	result := &ComparisonResult{
		ScenarioName:          "a_very_long_scenario_name_for_truncation",
		MonthlyPension:        decimal.RequireFromString("1878.91"),
		TotalCapital:          decimal.NewFromInt(250000),
		RetirementAge:         65,
		YearsOfWork:           25,
		MinimumPensionApplied: true,
	}

	row := formatter.formatRow(result, 25, 13, false)

	if !contains(row, "...") {
		t.Error("Expected long name to be truncated")
	}
	if !contains(row, "1878.91*") {
		t.Errorf("Expected floor marker in row: %s", row)
	}
	if !contains(row, "250.0K") {
		t.Errorf("Expected abbreviated capital in row: %s", row)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{
		ScenarioName:        "pay_cut",
		PensionDiffFromBase: decimal.RequireFromString("-100.5"),
	}, ComparisonResult{ScenarioName: "same"})

	got := formatter.FormatCompact(compSet)
	want := "Base: base | work_2yr_longer: +755.74 zł | pay_cut: -100.50 zł | same: ="
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Extra Years") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "base,base,0,0,employment,65,31,4834.38,1044225.08,false") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !contains(lines[2], "work_2yr_longer,alternative,2,0") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(sampleComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["baseScenarioName"] != "base" {
			t.Errorf("Expected baseScenarioName 'base', got %v", decoded["baseScenarioName"])
		}
		if pretty != contains(result, "\n  ") {
			t.Errorf("Pretty=%v mismatch in output layout", pretty)
		}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
