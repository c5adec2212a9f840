package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/zusim/internal/analytics"
	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/compare"
	"github.com/rgehrsitz/zusim/internal/config"
	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/output"
	"github.com/rgehrsitz/zusim/internal/transform"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zusim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// app bundles what every command needs: the engine, the analytics store and the process settings
type app struct {
	engine    *calculation.Engine
	analytics analytics.Source
	settings  config.Settings
	cleanup   func()
}

// newApp wires the engine from the persistent flags and the environment
func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadEnv(envFile); err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(config.EnvSource{})
	if err != nil {
		return nil, err
	}

	rulesFile, _ := cmd.Flags().GetString("rules")
	rules, err := config.LoadRules(rulesFile)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewEngineWithRules(rules)

	if now, _ := cmd.Flags().GetString("now"); now != "" {
		d, err := domain.ParseDate(now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now: %w", err)
		}
		engine.SetClock(calculation.FixedClock{At: d.Time})
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode

	a := &app{engine: engine, settings: settings, cleanup: func() {}}

	if analyticsFile, _ := cmd.Flags().GetString("analytics-file"); analyticsFile != "" {
		settings.AnalyticsFile = analyticsFile
		a.settings = settings
	}
	if settings.PresentationMode {
		engine.Logger.Infof("presentation mode: analytics recording disabled")
		return a, nil
	}
	if err := a.openAnalytics(commandContext(cmd)); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) openAnalytics(ctx context.Context) error {
	switch {
	case a.settings.AnalyticsDSN != "":
		pg, err := analytics.OpenPostgresSink(ctx, a.settings.AnalyticsDSN)
		if err != nil {
			return err
		}
		async := analytics.NewAsyncSink(pg, 64, func(err error) {
			a.engine.Logger.Warnf("analytics: %v", err)
		})
		a.engine.SetAnalyticsSink(async)
		a.analytics = pg
		a.cleanup = func() {
			async.Close()
			pg.Close()
		}
	case a.settings.AnalyticsFile != "":
		sink := analytics.NewFileSink(a.settings.AnalyticsFile)
		a.engine.SetAnalyticsSink(sink)
		a.analytics = sink
	}
	return nil
}

func (a *app) loadInput(path string) (*domain.SimulationInput, error) {
	return config.NewInputParserAt(a.engine.Clock.Now()).LoadFromFile(path)
}

func (a *app) report(ctx context.Context, in domain.SimulationInput, mode domain.SimulationMode) *output.Report {
	return &output.Report{
		GeneratedAt: a.engine.Clock.Now(),
		Input:       in,
		Result:      a.engine.Project(ctx, in, mode),
		Scenarios:   a.engine.EvaluateScenarios(in),
		Assumptions: output.AssumptionsFor(a.engine.Rules),
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// mustApp is newApp for Run functions
func mustApp(cmd *cobra.Command) *app {
	a, err := newApp(cmd)
	if err != nil {
		log.Fatal(err)
	}
	return a
}

var rootCmd = &cobra.Command{
	Use:   "zusim",
	Short: "ZUS pension projection CLI",
	Long:  "Projects the future Polish state (ZUS) pension from income, employment type and career span",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Project the monthly pension for an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		in, err := a.loadInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, ok := domain.ParseSimulationMode(modeFlag)
		if !ok {
			log.Fatalf("Unknown mode: %s (valid: quick, detailed)", modeFlag)
		}

		report := a.report(commandContext(cmd), *in, mode)

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			log.Fatalf("Unknown output format: %s (valid: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		if write, _ := cmd.Flags().GetBool("write"); write {
			filename, err := output.WriteFormatted(f, report, fileExtension(f.Name()))
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return
		}

		data, err := f.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

func fileExtension(formatter string) string {
	switch formatter {
	case "csv", "json", "yaml":
		return formatter
	default:
		return "txt"
	}
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario [input-file]",
	Short: "Evaluate one what-if: extra working years and a salary raise",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		in, err := a.loadInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		extraYears, _ := cmd.Flags().GetFloat64("extra-years")
		extraSalary, _ := cmd.Flags().GetFloat64("extra-salary")
		if extraYears < 0 || extraSalary < 0 {
			log.Fatal("--extra-years and --extra-salary must be >= 0")
		}

		base := a.engine.Project(commandContext(cmd), *in, domain.ModeQuick)
		res := a.engine.EvaluateScenario(*in, extraYears, extraSalary)

		outputFormat, _ := cmd.Flags().GetString("format")
		report := &output.Report{
			GeneratedAt: a.engine.Clock.Now(),
			Input:       *in,
			Result:      base,
			Scenarios:   []domain.ScenarioResult{res},
		}
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			log.Fatalf("Unknown output format: %s", outputFormat)
		}
		data, err := f.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the input against what-if templates",
	Long: `Compare the projection for an input file against named templates or
ad-hoc transforms.

Examples:
  zusim compare input.yaml --with work_2yr_longer,raise_10pct
  zusim compare input.yaml --with extend_work:years=3 --format csv`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listTemplates, _ := cmd.Flags().GetBool("list-templates")
		if listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return
		}
		if len(args) != 1 {
			log.Fatal("an input file is required (or use --list-templates)")
		}

		templatesStr, _ := cmd.Flags().GetString("with")
		if templatesStr == "" {
			log.Fatal("--with flag is required to specify templates to compare (or use --list-templates)")
		}
		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 {
			log.Fatal("no valid templates specified in --with flag")
		}

		a := mustApp(cmd)
		defer a.cleanup()

		in, err := a.loadInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		baseName, _ := cmd.Flags().GetString("base")
		compareEngine := compare.NewCompareEngine(a.engine)
		comparisonSet, err := compareEngine.Compare(commandContext(cmd), *in, compare.CompareOptions{
			BaseScenarioName: baseName,
			Templates:        templateNames,
			ConfigPath:       args[0],
		})
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}

		out := cmd.OutOrStdout()
		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			s, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Fprint(out, s)

		case "json":
			s, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Fprint(out, s)

		case "compact":
			fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))

		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		now := calculation.SystemClock{}.Now()
		if v, _ := cmd.Flags().GetString("now"); v != "" {
			d, err := domain.ParseDate(v)
			if err != nil {
				log.Fatal(err)
			}
			now = d.Time
		}
		if _, err := config.NewInputParserAt(now).LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := output.SaveInput(exampleInput(), args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", args[0])
	},
}

func exampleInput() domain.SimulationInput {
	return domain.SimulationInput{
		BirthDate:      domain.DatePtr("1990-01-01"),
		Gender:         domain.GenderFemale,
		MonthlyIncome:  7500,
		EmploymentType: domain.EmploymentContract,
		WorkStartYear:  domain.IntPtr(2013),
		PostalCode:     "00-950",
	}
}

func init() {
	rootCmd.PersistentFlags().String("now", "", "Evaluate as of this date (YYYY-MM-DD) instead of today")
	rootCmd.PersistentFlags().String("rules", "", "Path to a rules YAML file overriding the 2024 statutory values")
	rootCmd.PersistentFlags().String("analytics-file", "", "Append one analytics record per projection to this JSONL file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before reading ZUSIM_* settings")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	calculateCmd.Flags().StringP("mode", "m", "quick", "Simulation mode (quick, detailed)")
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, yaml)")
	calculateCmd.Flags().Bool("write", false, "Write the report to a timestamped file instead of stdout")

	scenarioCmd.Flags().Float64("extra-years", 0, "Additional working years")
	scenarioCmd.Flags().Float64("extra-salary", 0, "Salary raise in percent")
	scenarioCmd.Flags().StringP("format", "f", "console-lite", "Output format (console, console-lite, csv, json, yaml)")

	compareCmd.Flags().String("base", "", "Label for the unmodified input (default \"base\")")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates or transforms to compare (required)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(analyticsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
