package main

import (
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/output"
)

var seriesCmd = &cobra.Command{
	Use:   "series [input-file]",
	Short: "Print a yearly chart series (accumulation, drawdown, breakdown)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		in, err := a.loadInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		kindFlag, _ := cmd.Flags().GetString("kind")
		kind, err := calculation.ParseSeriesKind(kindFlag)
		if err != nil {
			log.Fatal(err)
		}
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, ok := domain.ParseSimulationMode(modeFlag)
		if !ok {
			log.Fatalf("Unknown mode: %s (valid: quick, detailed)", modeFlag)
		}

		series, err := a.engine.Series(*in, mode, kind)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		data, err := output.NewSeriesFormatter(outputFormat).FormatSeries(series)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List the pension contribution rates per employment type",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		profiles := calculation.RateProfiles(a.engine.Rules)
		out := cmd.OutOrStdout()

		if format, _ := cmd.Flags().GetString("format"); output.NormalizeFormatName(format) == "json" {
			data, err := json.MarshalIndent(profiles, "", "  ")
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintln(out, string(data))
			return
		}

		fmt.Fprintf(out, "Pension contribution rates (%d)\n\n", a.engine.Rules.Year)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tTOTAL\tEMPLOYEE\tEMPLOYER")
		for _, p := range profiles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.EmploymentType,
				output.FormatPercentage(output.Money(p.TotalRate)),
				output.FormatPercentage(output.Money(p.EmployeeRate)),
				output.FormatPercentage(output.Money(p.EmployerRate)))
		}
		w.Flush()
	},
}

func init() {
	seriesCmd.Flags().StringP("kind", "k", "accumulation", "Series kind (accumulation, drawdown, breakdown)")
	seriesCmd.Flags().StringP("mode", "m", "quick", "Simulation mode (quick, detailed)")
	seriesCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")

	ratesCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
}
