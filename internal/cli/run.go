package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/runner"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/logger"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

var (
	runKey      string
	runUnit     string
	runNoRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Time a command",
	Long: `Run a command under a named timer, print its elapsed time and record the
run in the history.

Examples:
  tictoc run -- make build
  tictoc run --key tests --unit s -- go test ./...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := resolveUnit(runUnit)
		if err != nil {
			return err
		}

		ctx := logger.WithContext(cmd.Context(), logger.Log)
		run, err := runner.Run(ctx, newTracker(), runner.Spec{
			Key:     runKey,
			Command: args,
			Unit:    unit,
			Stdin:   cmd.InOrStdin(),
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "⏱  %s: %s\n", run.Key, formatElapsed(run.Elapsed, run.Unit, run.Duration))

		if !runNoRecord {
			if err := recordRuns(ctx, run); err != nil {
				Warning("run not recorded: %v", err)
			} else {
				LogVerbose("recorded run %s", run.ID)
			}
		}

		if !run.Succeeded() {
			if run.ExitCode > 0 {
				return &exitError{code: run.ExitCode}
			}
			return fmt.Errorf("%s: %s", run.CommandLine(), run.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().StringVarP(&runKey, "key", "k", "", "timer key (default: command name)")
	runCmd.Flags().StringVarP(&runUnit, "unit", "u", "", "unit of the reported elapsed time (default from config)")
	runCmd.Flags().BoolVar(&runNoRecord, "no-record", false, "do not record the run in the history")
	runCmd.RegisterFlagCompletionFunc("unit", unitNamesFunc)
}

func newTracker() *tracker.Tracker {
	reg := tictoc.New(tictoc.WithLogger(logger.Log))
	return tracker.New(reg, nil, logger.Log)
}

// recordRuns stores runs in the history and trims it to history_limit.
func recordRuns(ctx context.Context, runs ...models.Run) error {
	store, err := configManager.OpenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, run := range runs {
		if err := store.Add(ctx, run); err != nil {
			return err
		}
	}

	if limit := configManager.Get().HistoryLimit; limit > 0 {
		if removed, err := store.Prune(ctx, limit); err != nil {
			return err
		} else if removed > 0 {
			logger.Debug("pruned history", "removed", removed, "limit", limit)
		}
	}
	return nil
}
