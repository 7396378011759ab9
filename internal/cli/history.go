package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/pkg/errors"
)

var (
	historyKey   string
	historyLimit int
	historyKeep  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `List recorded runs, newest first.

Examples:
  tictoc history
  tictoc history --key build --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := configManager.OpenStore()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), storage.Filter{Key: historyKey, Limit: historyLimit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}

		table := newTable(out, "ID", "Key", "Elapsed", "Status", "Started", "Command")
		for _, run := range runs {
			table.Append([]string{
				shortID(run.ID),
				run.Key,
				formatElapsed(run.Elapsed, run.Unit, run.Duration),
				runStatus(run),
				humanize.Time(run.StartedAt),
				truncate(run.CommandLine(), 40),
			})
		}
		return table.Render()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run",
	Long:  `Show one recorded run. The ID may be abbreviated to any unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := configManager.OpenStore()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := findRun(cmd, store, args[0])
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(run)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := configManager.OpenStore()
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Prune(cmd.Context(), historyKeep)
		if err != nil {
			return err
		}
		Success(cmd.OutOrStdout(), "Removed %d run(s), kept up to %d", removed, historyKeep)
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete one recorded run",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := configManager.OpenStore()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := findRun(cmd, store, args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), run.ID); err != nil {
			return err
		}
		Success(cmd.OutOrStdout(), "Deleted run %s", run.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd, historyPruneCmd, historyRemoveCmd)

	historyCmd.Flags().StringVarP(&historyKey, "key", "k", "", "only runs of this timer key")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs (0 for all)")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 100, "number of newest runs to keep")
	historyCmd.RegisterFlagCompletionFunc("key", historyKeysFunc)
}

// findRun resolves a full or abbreviated run ID.
func findRun(cmd *cobra.Command, store storage.RunStore, id string) (*models.Run, error) {
	run, err := store.Get(cmd.Context(), id)
	if err == nil || !errors.IsCode(err, errors.ErrNotFound) {
		return run, err
	}

	runs, listErr := store.List(cmd.Context(), storage.Filter{})
	if listErr != nil {
		return nil, listErr
	}
	var matches []models.Run
	for _, r := range runs {
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, err
	case 1:
		return &matches[0], nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "history", "run ID prefix %q is ambiguous (%d matches)", id, len(matches)).
			WithSuggestion("use more characters of the ID")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
