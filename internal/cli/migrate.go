package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/pkg/errors"
)

var migrateTo string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move the run history to another storage driver",
	Long: `Copy every recorded run from the current storage driver to another one and
switch the configuration to it. The old history file is left in place.

Examples:
  tictoc history migrate --to sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := configManager.Get().StorageDriver
		if from == "" {
			from = models.StorageYAML
		}
		if migrateTo == from {
			return errors.Newf(errors.ErrInvalidInput, "history.migrate", "history already uses %s", from)
		}

		src, err := configManager.OpenStoreDriver(from)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := configManager.OpenStoreDriver(migrateTo)
		if err != nil {
			return err
		}
		defer dst.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Migrating run history from %s to %s...\n", from, migrateTo)

		copied, err := storage.Copy(cmd.Context(), dst, src)
		if err != nil {
			return fmt.Errorf("migration stopped after %d run(s): %w", copied, err)
		}

		if err := configManager.Set("storage_driver", migrateTo); err != nil {
			return err
		}
		Success(out, "Migrated %d run(s); storage_driver is now %s", copied, migrateTo)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateTo, "to", models.StorageSQLite, "target storage driver: yaml or sqlite")
}
