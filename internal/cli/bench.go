package cli

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/runner"
	"github.com/all-dot-files/tictoc/pkg/logger"
)

var (
	benchKey      string
	benchUnit     string
	benchRuns     int
	benchParallel int
	benchNoRecord bool
	benchShowRuns bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [flags] -- <command> [args...]",
	Short: "Time repeated runs of a command",
	Long: `Run a command several times, each under its own timer, and report the
fastest, slowest and mean run along with the wall time of the whole batch.

Examples:
  tictoc bench --runs 20 -- ./query.sh
  tictoc bench --runs 8 --parallel 4 --unit us -- curl -s localhost:8080`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := resolveUnit(benchUnit)
		if err != nil {
			return err
		}

		ctx := logger.WithContext(cmd.Context(), logger.Log)
		res, benchErr := runner.Bench(ctx, newTracker(), runner.BenchSpec{
			Spec: runner.Spec{
				Key:     benchKey,
				Command: args,
				Unit:    unit,
			},
			Runs:     benchRuns,
			Parallel: benchParallel,
		})
		if res.Key == "" {
			return benchErr
		}

		out := cmd.OutOrStdout()
		if benchShowRuns {
			table := newTable(out, "Run", "Elapsed", "Status")
			for _, run := range res.Runs {
				table.Append([]string{run.Key, formatElapsed(run.Elapsed, run.Unit, run.Duration), runStatus(run)})
			}
			table.Render()
		}

		u := res.Unit
		table := newTable(out, "Key", "Runs", "Failed", "Min", "Mean", "Max", "Total")
		table.Append([]string{
			res.Key,
			strconv.Itoa(len(res.Runs)),
			strconv.Itoa(res.Failed),
			fmt.Sprintf("%d%s", int64(res.Min/u.Duration()), u),
			fmt.Sprintf("%d%s", int64(res.Mean/u.Duration()), u),
			fmt.Sprintf("%d%s", int64(res.Max/u.Duration()), u),
			res.Total.Elapsed.String(),
		})
		table.Render()

		if !benchNoRecord && len(res.Runs) > 0 {
			if err := recordRuns(ctx, res.Runs...); err != nil {
				Warning("runs not recorded: %v", err)
			}
		}

		if merr, ok := benchErr.(*multierror.Error); ok {
			for _, e := range merr.Errors {
				LogVerbose("%v", e)
			}
			return fmt.Errorf("%d of %d runs failed", res.Failed, benchRuns)
		}
		return benchErr
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().SetInterspersed(false)
	benchCmd.Flags().StringVarP(&benchKey, "key", "k", "", "timer key (default: command name)")
	benchCmd.Flags().StringVarP(&benchUnit, "unit", "u", "", "unit of the reported times (default from config)")
	benchCmd.Flags().IntVarP(&benchRuns, "runs", "n", 10, "number of runs")
	benchCmd.Flags().IntVarP(&benchParallel, "parallel", "p", 1, "runs executed at once")
	benchCmd.Flags().BoolVar(&benchNoRecord, "no-record", false, "do not record the runs in the history")
	benchCmd.Flags().BoolVar(&benchShowRuns, "show-runs", false, "list every run")
	benchCmd.RegisterFlagCompletionFunc("unit", unitNamesFunc)
}
