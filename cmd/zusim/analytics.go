package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/zusim/internal/analytics"
	"github.com/rgehrsitz/zusim/internal/output"
)

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Inspect recorded simulation runs",
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Summarize recorded runs by type, employment, gender and region",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a := mustApp(cmd)
			defer a.cleanup()

			source := a.analytics
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				source = analytics.NewFileSink(file)
			}
			if source == nil {
				log.Fatal("no analytics store configured (use --file, --analytics-file, ZUSIM_ANALYTICS_FILE or ZUSIM_ANALYTICS_DSN)")
			}

			entries, err := source.Entries(commandContext(cmd))
			if err != nil {
				log.Fatal(err)
			}
			s := analytics.Summarize(entries)

			out := cmd.OutOrStdout()
			if format, _ := cmd.Flags().GetString("format"); output.NormalizeFormatName(format) == "json" {
				data, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					log.Fatal(err)
				}
				fmt.Fprintln(out, string(data))
				return
			}
			writeSummary(cmd, s)
		},
	}
	summary.Flags().String("file", "", "JSONL analytics file to read")
	summary.Flags().StringP("format", "f", "console", "Output format (console, json)")

	cmd.AddCommand(summary)
	return cmd
}

func writeSummary(cmd *cobra.Command, s analytics.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "SIMULATION USAGE SUMMARY")
	fmt.Fprintln(out, "========================")
	fmt.Fprintf(out, "Total runs:             %d\n", s.TotalRuns)
	fmt.Fprintf(out, "Average pension:        %s\n", output.FormatCurrency(output.Money(s.AveragePension)))
	fmt.Fprintf(out, "Average years of work:  %s\n", output.Money(s.AverageYearsOfWork).StringFixed(1))

	writeCounts(cmd, "By type", s.ByType)
	writeCounts(cmd, "By employment type", s.ByEmploymentType)
	writeCounts(cmd, "By gender", s.ByGender)

	if len(s.TopPostalPrefixes) > 0 {
		fmt.Fprintln(out, "\nTop postal districts:")
		for _, p := range s.TopPostalPrefixes {
			fmt.Fprintf(out, "  %s-xxx  %d\n", p.Prefix, p.Count)
		}
	}
}

func writeCounts[K ~string](cmd *cobra.Command, title string, counts map[K]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, k := range keys {
		label := k
		if label == "" {
			label = "(unspecified)"
		}
		fmt.Fprintf(out, "  %-16s %d\n", label, counts[K(k)])
	}
}
