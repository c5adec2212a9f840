package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/zusim/internal/breakeven"
	"github.com/rgehrsitz/zusim/internal/output"
)

var targetCmd = &cobra.Command{
	Use:   "target [input-file]",
	Short: "Find how much longer to work or how much more to earn for a target pension",
	Long: `Search for the smallest change that lifts the quick projection to a desired
monthly pension. The extra_years lever postpones retirement, the salary lever
raises monthly income, and "all" reports both.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		in, err := a.loadInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		pension, _ := cmd.Flags().GetFloat64("pension")
		leverFlag, _ := cmd.Flags().GetString("lever")
		lever, ok := breakeven.ParseLever(leverFlag)
		if !ok {
			log.Fatalf("Unknown lever: %s (valid: extra_years, salary, all)", leverFlag)
		}
		maxYears, _ := cmd.Flags().GetFloat64("max-years")
		maxSalary, _ := cmd.Flags().GetFloat64("max-salary")
		constraints := breakeven.Constraints{MaxExtraYears: maxYears, MaxSalaryPercent: maxSalary}

		format, _ := cmd.Flags().GetString("format")
		asJSON := output.NormalizeFormatName(format) == "json"
		table := &breakeven.TableFormatter{}
		jf := &breakeven.JSONFormatter{Pretty: true}

		solver := breakeven.NewDefaultSolver(a.engine)
		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()

		if lever == breakeven.LeverAll {
			res, err := solver.SolveAll(ctx, *in, pension, constraints)
			if err != nil {
				log.Fatal(err)
			}
			if !asJSON {
				fmt.Fprint(out, table.FormatMulti(res))
				return
			}
			data, err := jf.FormatMulti(res)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintln(out, data)
			return
		}

		res, err := solver.Solve(ctx, breakeven.Request{
			Input:         *in,
			TargetPension: pension,
			Lever:         lever,
			Constraints:   constraints,
		})
		if err != nil {
			log.Fatal(err)
		}
		if !asJSON {
			fmt.Fprint(out, table.Format(res))
			return
		}
		data, err := jf.Format(res)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(out, data)
	},
}

func init() {
	targetCmd.Flags().Float64P("pension", "p", 0, "Desired monthly pension in zł")
	targetCmd.Flags().StringP("lever", "l", "all", "What to change (extra_years, salary, all)")
	targetCmd.Flags().Float64("max-years", 15, "Upper bound on extra working years")
	targetCmd.Flags().Float64("max-salary", 500, "Upper bound on the income raise in percent")
	targetCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	_ = targetCmd.MarkFlagRequired("pension")
}
