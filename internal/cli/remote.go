package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/api"
)

var (
	remoteServer string
	remoteToken  string
	remoteUnit   string
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Drive timers on a running 'tictoc serve'",
	Long: `Start, stop and read timers held by a tictoc server. The server address
defaults to server.addr from the config; the token defaults to $TICTOC_TOKEN.

Examples:
  tictoc remote start deploy
  tictoc remote stop deploy
  tictoc remote elapsed deploy --unit s`,
}

var remoteStartCmd = &cobra.Command{
	Use:   "start [key]",
	Short: "Start a remote timer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := remoteClient().Start(cmd.Context(), argKey(args))
		if err != nil {
			return err
		}
		Success(cmd.OutOrStdout(), "%s started at %s", resp.Key, resp.Start.Format(time.RFC3339Nano))
		return nil
	},
}

var remoteStopCmd = &cobra.Command{
	Use:   "stop [key]",
	Short: "Stop a remote timer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := remoteClient().Stop(cmd.Context(), argKey(args))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %dms\n", resp.Key, resp.ElapsedMS)
		return nil
	},
}

var remoteElapsedCmd = &cobra.Command{
	Use:   "elapsed [key]",
	Short: "Read a stopped remote timer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := resolveUnit(remoteUnit)
		if err != nil {
			return err
		}
		resp, err := remoteClient().Elapsed(cmd.Context(), argKey(args), unit.String())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%s\n", resp.Key, resp.Elapsed, resp.Unit)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remote timers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timers, err := remoteClient().Timers(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(timers) == 0 {
			fmt.Fprintln(out, "No timers on the server.")
			return nil
		}

		table := newTable(out, "Key", "Started", "Elapsed")
		for _, t := range timers {
			elapsed := "running"
			if t.ElapsedNS != nil {
				elapsed = time.Duration(*t.ElapsedNS).String()
			}
			table.Append([]string{t.Key, humanize.Time(t.Start), elapsed})
		}
		table.Render()
		return nil
	},
}

func argKey(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func remoteClient() *api.Client {
	addr := remoteServer
	if addr == "" {
		addr = configManager.Get().Server.Addr
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	token := remoteToken
	if token == "" {
		token = os.Getenv("TICTOC_TOKEN")
	}
	LogVerbose("remote server %s", addr)
	return api.NewClient(addr, token)
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.AddCommand(remoteStartCmd, remoteStopCmd, remoteElapsedCmd, remoteListCmd)

	remoteCmd.PersistentFlags().StringVar(&remoteServer, "server", "", "server address (default from config)")
	remoteCmd.PersistentFlags().StringVar(&remoteToken, "token", "", "bearer token (default $TICTOC_TOKEN)")
	remoteElapsedCmd.Flags().StringVarP(&remoteUnit, "unit", "u", "", "unit for the reading")
}
