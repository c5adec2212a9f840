package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rgehrsitz/zusim/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format renders a single-lever result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("TARGET PENSION SOLVER\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Lever:           %s\n", result.Lever))
	sb.WriteString(fmt.Sprintf("Target pension:  %s\n", money(result.TargetPension)))
	sb.WriteString(fmt.Sprintf("Current pension: %s\n", money(result.BasePension)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result)))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.AlreadyMet {
		return sb.String()
	}

	sb.WriteString("REQUIRED CHANGE\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	switch result.Lever {
	case LeverExtraYears:
		sb.WriteString(fmt.Sprintf("Extra years:     %.2f\n", result.ExtraYears))
		sb.WriteString(fmt.Sprintf("Retirement age:  %.2f\n", result.Scenario.RetirementAge))
	case LeverSalary:
		sb.WriteString(fmt.Sprintf("Income raise:    %.2f%%\n", result.ExtraSalaryPercent))
	}
	sb.WriteString(fmt.Sprintf("Pension:         %s\n", money(result.Scenario.Pension)))
	sb.WriteString(fmt.Sprintf("Capital:         %s\n", money(result.Scenario.Capital)))
	return sb.String()
}

// FormatMulti renders one row per lever followed by recommendations
func (tf *TableFormatter) FormatMulti(result *MultiLeverResult) string {
	var sb strings.Builder

	sb.WriteString("TARGET PENSION SOLVER\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target pension:  %s\n", money(result.TargetPension)))
	sb.WriteString(fmt.Sprintf("Current pension: %s\n\n", money(result.BasePension)))

	sb.WriteString(fmt.Sprintf("%-12s %-10s %14s %16s\n", "Lever", "Status", "Change", "Pension"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for i := range result.Results {
		r := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-12s %-10s %14s %16s\n",
			r.Lever, tf.formatStatus(r), tf.formatChange(r), money(r.Scenario.Pension)))
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		for _, rec := range result.Recommendations {
			sb.WriteString("  • " + rec + "\n")
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(r *Result) string {
	switch {
	case r.AlreadyMet:
		return "met"
	case r.Success:
		return "reachable"
	default:
		return "out of reach"
	}
}

func (tf *TableFormatter) formatChange(r *Result) string {
	if r.Lever == LeverExtraYears {
		return fmt.Sprintf("+%.2f yrs", r.ExtraYears)
	}
	return fmt.Sprintf("+%.2f%%", r.ExtraSalaryPercent)
}

func money(v float64) string {
	return output.FormatCurrency(output.Money(v).Round(2))
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format renders a single-lever result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti renders a multi-lever result
func (jf *JSONFormatter) FormatMulti(result *MultiLeverResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal solver result: %w", err)
	}
	return string(data), nil
}
