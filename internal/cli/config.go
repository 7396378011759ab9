package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/all-dot-files/tictoc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tictoc configuration",
	Long: `View and modify tictoc configuration settings.

Every key can also be overridden from the environment, e.g.
TICTOC_DEFAULT_UNIT=s or TICTOC_SERVER_ADDR=:9000.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *configManager.Get()
		if cfg.Server.JWTSecret != "" {
			cfg.Server.JWTSecret = "********"
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := configManager.Value(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Nested keys use dot notation.

Examples:
  tictoc config set default_unit s
  tictoc config set storage_driver sqlite
  tictoc config set server.addr :9000`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configManager.Set(args[0], args[1]); err != nil {
			return err
		}
		v, _ := configManager.Value(args[0])
		Success(cmd.OutOrStdout(), "Set %s = %s", args[0], v)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configManager.Initialize(); err != nil {
			return err
		}
		Success(cmd.OutOrStdout(), "Configuration written to %s", configManager.GetConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configManager.GetConfigPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configInitCmd, configPathCmd)
}
