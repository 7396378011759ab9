package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	initDriver string
	initUnit   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tictoc configuration",
	Long:  `Initialize tictoc by creating the configuration directory and config file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configManager.Initialize(); err != nil {
			return err
		}
		if initDriver != "" {
			if err := configManager.Set("storage_driver", initDriver); err != nil {
				return err
			}
		}
		if initUnit != "" {
			if err := configManager.Set("default_unit", initUnit); err != nil {
				return err
			}
		}

		cfg := configManager.Get()
		out := cmd.OutOrStdout()
		Success(out, "tictoc initialized successfully!")
		fmt.Fprintf(out, "  Config:       %s\n", configManager.GetConfigPath())
		fmt.Fprintf(out, "  History:      %s (%s)\n", configManager.DataDir(), cfg.StorageDriver)
		fmt.Fprintf(out, "  Default unit: %s\n", cfg.DefaultUnit)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Time a command:   tictoc run -- make build")
		fmt.Fprintln(out, "  2. Benchmark it:     tictoc bench --runs 10 -- make build")
		fmt.Fprintln(out, "  3. Review the runs:  tictoc history")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initDriver, "driver", "", "history storage driver: yaml or sqlite")
	initCmd.Flags().StringVar(&initUnit, "unit", "", "default unit for reported times")
}
