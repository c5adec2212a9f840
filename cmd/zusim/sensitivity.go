package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/output"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Show how the projected pension reacts to one assumption",
	Long: `Sweep a single assumption across a range and project the pension at each step.

Examples:
  # Predefined sweep
  zusim sensitivity input.yaml --parameter valorization_rate

  # Custom range
  zusim sensitivity input.yaml --parameter retirement_age --range 60-67 --steps 8`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		in, err := a.loadInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		name, _ := cmd.Flags().GetString("parameter")
		param, ok := domain.SensitivityParameterByName(name)
		if !ok {
			log.Fatalf("Unknown parameter: %s (valid: %s)", name, strings.Join(parameterNames(), ", "))
		}
		if r, _ := cmd.Flags().GetString("range"); r != "" {
			if param.MinValue, param.MaxValue, err = parseRange(r); err != nil {
				log.Fatal(err)
			}
		}
		if cmd.Flags().Changed("steps") {
			param.Steps, _ = cmd.Flags().GetInt("steps")
		}

		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, ok := domain.ParseSimulationMode(modeFlag)
		if !ok {
			log.Fatalf("Unknown mode: %s (valid: quick, detailed)", modeFlag)
		}

		analysis, err := a.engine.AnalyzeSensitivity(*in, param, mode)
		if err != nil {
			log.Fatal(err)
		}

		out := cmd.OutOrStdout()
		if format, _ := cmd.Flags().GetString("format"); output.NormalizeFormatName(format) == "json" {
			data, err := json.MarshalIndent(analysis, "", "  ")
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintln(out, string(data))
			return
		}
		writeSensitivity(out, analysis)
	},
}

func writeSensitivity(out io.Writer, a *domain.SensitivityAnalysis) {
	fmt.Fprintf(out, "SENSITIVITY: %s (%s mode)\n", a.Parameter.Name, a.Mode)
	fmt.Fprintf(out, "%s\n", a.Parameter.Description)
	fmt.Fprintf(out, "Base value %s, base pension %s\n\n", formatParamValue(a.Parameter.Unit, a.BaseValue),
		output.FormatCurrency(output.Money(a.BasePension).Round(2)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "VALUE\tPENSION\tCHANGE\tCAPITAL\t")
	for _, p := range a.Points {
		fmt.Fprintf(w, "%s\t%s\t%+.2f%%\t%s\t\n",
			formatParamValue(a.Parameter.Unit, p.Value),
			output.FormatCurrency(output.Money(p.Pension).Round(2)),
			p.PensionChangePercent,
			output.FormatCurrency(output.Money(p.Capital).Round(2)))
	}
	w.Flush()

	fmt.Fprintf(out, "\nSwing: %.2f%% of the base pension, risk %s\n", a.Summary.PensionSwingPercent, a.Summary.RiskLevel)
	for _, rec := range a.Summary.Recommendations {
		fmt.Fprintf(out, "  • %s\n", rec)
	}
}

func formatParamValue(unit string, v float64) string {
	switch unit {
	case "rate":
		return fmt.Sprintf("%.2f%%", v*100)
	case "percent":
		return fmt.Sprintf("%+.1f%%", v)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// parseRange reads "min-max"; either bound may be negative
func parseRange(s string) (float64, float64, error) {
	i := -1
	for j := 1; j < len(s); j++ {
		if s[j] == '-' && (s[j-1] >= '0' && s[j-1] <= '9' || s[j-1] == '.') {
			i = j
			break
		}
	}
	if i < 0 {
		return 0, 0, fmt.Errorf("invalid range %q (format: min-max)", s)
	}
	lo, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(s[i+1:], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return lo, hi, nil
}

func parameterNames() []string {
	var names []string
	for _, p := range domain.GetCommonParameters() {
		names = append(names, p.Name)
	}
	return names
}

func init() {
	sensitivityCmd.Flags().StringP("parameter", "p", "valorization_rate", "Parameter to sweep (valorization_rate, salary_change, retirement_age)")
	sensitivityCmd.Flags().String("range", "", "Override the sweep range (format: min-max)")
	sensitivityCmd.Flags().Int("steps", 5, "Number of points in the sweep")
	sensitivityCmd.Flags().StringP("mode", "m", "quick", "Simulation mode (quick, detailed)")
	sensitivityCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
}
