package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rgehrsitz/zusim/internal/analytics"
	"github.com/rgehrsitz/zusim/internal/output"
)

const testInput = `birth_date: "1990-01-01"
gender: male
monthly_income: 6000
employment_type: employment
work_start_year: 2010
retirement_age: 65
postal_code: "00-950"
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	if err := os.WriteFile(path, []byte(testInput), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("zusim %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "zusim" {
		t.Errorf("Expected root command use to be 'zusim', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out := execute(t, "--help")
	if !strings.Contains(out, "calculate") {
		t.Errorf("Expected help to list the calculate command, got:\n%s", out)
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"calculate", "scenario", "compare", "series", "target", "sensitivity", "rates",
		"validate", "example", "serve", "tui", "analytics", "version",
	}

	for _, expected := range expectedCommands {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expected)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	t.Cleanup(func() { resetFlags(rootCmd) })
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"invalid-command"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestCalculate_JSON(t *testing.T) {
	input := writeInput(t)
	out := execute(t, "calculate", input, "--now", "2024-06-01", "--format", "json")

	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if report.Result.YearsOfWork != 31 {
		t.Errorf("Expected 31 years of work, got %g", report.Result.YearsOfWork)
	}
	if report.Result.RetirementYear != 2055 {
		t.Errorf("Expected retirement in 2055, got %d", report.Result.RetirementYear)
	}
	if len(report.Scenarios) != 2 {
		t.Errorf("Expected 2 default what-if scenarios, got %d", len(report.Scenarios))
	}
	if len(report.Assumptions) == 0 {
		t.Error("Expected assumptions in the report")
	}
}

func TestCalculate_ConsoleDetailed(t *testing.T) {
	input := writeInput(t)
	out := execute(t, "calculate", input, "--now", "2024-06-01", "--mode", "detailed")

	if !strings.Contains(out, "ZUS PENSION PROJECTION (DETAILED mode)") {
		t.Errorf("Expected detailed console header, got:\n%s", out)
	}
	if !strings.Contains(out, "Subaccount") {
		t.Error("Expected subaccount line in detailed mode")
	}
}

func TestCalculate_RecordsAnalytics(t *testing.T) {
	input := writeInput(t)
	analyticsFile := filepath.Join(t.TempDir(), "runs.jsonl")

	execute(t, "calculate", input, "--now", "2024-06-01", "--format", "csv", "--analytics-file", analyticsFile)
	execute(t, "calculate", input, "--now", "2024-06-01", "--format", "csv", "--mode", "detailed", "--analytics-file", analyticsFile)

	entries, err := analytics.ReadFile(analyticsFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 analytics entries, got %d", len(entries))
	}
	if entries[0].ID == "" || entries[0].PostalCode != "00-950" {
		t.Errorf("Unexpected analytics entry: %+v", entries[0])
	}

	out := execute(t, "analytics", "summary", "--file", analyticsFile, "--format", "json")
	var s analytics.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("invalid JSON summary: %v\n%s", err, out)
	}
	if s.TotalRuns != 2 || s.ByType["detailed"] != 1 {
		t.Errorf("Unexpected summary: %+v", s)
	}

	out = execute(t, "analytics", "summary", "--file", analyticsFile)
	if !strings.Contains(out, "Total runs:             2") || !strings.Contains(out, "00-xxx") {
		t.Errorf("Unexpected console summary:\n%s", out)
	}
}

func TestScenario(t *testing.T) {
	input := writeInput(t)
	out := execute(t, "scenario", input, "--now", "2024-06-01", "--extra-years", "2", "--extra-salary", "10")
	if !strings.Contains(out, "work 2 more years and earn 10% more") {
		t.Errorf("Expected combined scenario line, got:\n%s", out)
	}
}

func TestTarget(t *testing.T) {
	input := writeInput(t)

	out := execute(t, "target", input, "--now", "2024-06-01", "--pension", "100", "--lever", "salary")
	if !strings.Contains(out, "TARGET PENSION SOLVER") || !strings.Contains(out, "met") {
		t.Errorf("Expected a met target, got:\n%s", out)
	}

	out = execute(t, "target", input, "--now", "2024-06-01", "--pension", "1000000", "--format", "json")
	var res struct {
		Results []struct {
			Lever   string `json:"lever"`
			Success bool   `json:"success"`
		} `json:"results"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("Expected JSON output, got %v:\n%s", err, out)
	}
	if len(res.Results) != 2 || res.Results[0].Success || res.Results[1].Success {
		t.Errorf("Expected both levers out of reach, got %+v", res.Results)
	}
	if len(res.Recommendations) != 1 || !strings.Contains(res.Recommendations[0], "out of reach") {
		t.Errorf("Unexpected recommendations: %v", res.Recommendations)
	}
}

func TestSensitivity(t *testing.T) {
	input := writeInput(t)

	out := execute(t, "sensitivity", input, "--now", "2024-06-01", "--parameter", "salary_change")
	for _, want := range []string{"SENSITIVITY: salary_change (quick mode)", "-20.0%", "+20.00%", "risk MEDIUM"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	out = execute(t, "sensitivity", input, "--now", "2024-06-01", "--parameter", "retirement_age", "--range", "60-67", "--steps", "8", "--format", "json")
	var analysis struct {
		BaseValue float64 `json:"baseValue"`
		Points    []struct {
			Value float64 `json:"value"`
		} `json:"points"`
	}
	if err := json.Unmarshal([]byte(out), &analysis); err != nil {
		t.Fatalf("Expected JSON output, got %v:\n%s", err, out)
	}
	if len(analysis.Points) != 8 || analysis.Points[0].Value != 60 || analysis.Points[7].Value != 67 {
		t.Errorf("Unexpected sweep: %+v", analysis.Points)
	}
	if analysis.BaseValue != 65 {
		t.Errorf("Expected base retirement age 65, got %v", analysis.BaseValue)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in     string
		lo, hi float64
	}{
		{"60-67", 60, 67},
		{"0.02-0.08", 0.02, 0.08},
		{"-20-20", -20, 20},
		{"-20--5", -20, -5},
	}
	for _, tt := range tests {
		lo, hi, err := parseRange(tt.in)
		if err != nil {
			t.Errorf("parseRange(%q): %v", tt.in, err)
			continue
		}
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("parseRange(%q) = %v, %v; want %v, %v", tt.in, lo, hi, tt.lo, tt.hi)
		}
	}

	for _, bad := range []string{"60", "-5", "a-b"} {
		if _, _, err := parseRange(bad); err == nil {
			t.Errorf("parseRange(%q) should fail", bad)
		}
	}
}

func TestCompare(t *testing.T) {
	input := writeInput(t)
	out := execute(t, "compare", input, "--now", "2024-06-01", "--with", "work_2yr_longer,extend_work:years=3")
	if !strings.Contains(out, "PENSION SCENARIO COMPARISON") {
		t.Errorf("Expected comparison table, got:\n%s", out)
	}
	if !strings.Contains(out, "work_2yr_longer") {
		t.Error("Expected template row in comparison table")
	}
}

func TestCompare_ListTemplates(t *testing.T) {
	out := execute(t, "compare", "--list-templates")
	if !strings.Contains(out, "Available Templates:") || !strings.Contains(out, "longer_and_raise") {
		t.Errorf("Expected template help, got:\n%s", out)
	}
}

func TestSeries_CSV(t *testing.T) {
	input := writeInput(t)
	out := execute(t, "series", input, "--now", "2024-06-01", "--kind", "drawdown", "--format", "csv")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 19 {
		t.Fatalf("Expected header plus 18 drawdown years, got %d lines", len(lines))
	}
	if lines[0] != "Year,Value,Exhausted" || !strings.HasPrefix(lines[1], "2055,") {
		t.Errorf("Unexpected drawdown CSV:\n%s", out)
	}
}

func TestRates(t *testing.T) {
	out := execute(t, "rates")
	for _, want := range []string{"employment", "b2b", "self-employed", "19.52%", "19.26%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected rates output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestValidateAndExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	out := execute(t, "example", path)
	if !strings.Contains(out, "Example input written to") {
		t.Errorf("Unexpected example output: %s", out)
	}

	out = execute(t, "validate", path, "--now", "2024-06-01")
	if !strings.Contains(out, "is valid") {
		t.Errorf("Expected the example input to validate, got: %s", out)
	}
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	if !strings.HasPrefix(out, "zusim dev") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{"console": "txt", "console-lite": "txt", "csv": "csv", "json": "json", "yaml": "yaml"}
	for formatter, want := range cases {
		if got := fileExtension(formatter); got != want {
			t.Errorf("fileExtension(%q) = %q, want %q", formatter, got, want)
		}
	}
}
