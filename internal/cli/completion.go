package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/shell"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/fileio"
	"github.com/all-dot-files/tictoc/pkg/logger"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

const completionBudget = 150 * time.Millisecond

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(tictoc completion bash)

Zsh:
  $ tictoc completion zsh > "${fpath[1]}/_tictoc"

Fish:
  $ tictoc completion fish | source

PowerShell:
  PS> tictoc completion powershell | Out-String | Invoke-Expression

Use --install to write the script to the shell's user completion directory.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		install, _ := cmd.Flags().GetBool("install")
		sh, err := shell.Parse(args[0])
		if err != nil {
			return err
		}
		if install && outPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("locate home directory: %w", err)
			}
			if outPath = shell.DefaultInstallPath(sh, home); outPath == "" {
				return errors.Newf(errors.ErrInvalidInput, "completion", "no install directory for %s", sh).
					WithSuggestion("use --out or pipe the script into your profile")
			}
		}
		if outPath != "" {
			if err := shell.ValidateWritable(outPath); err != nil {
				return err
			}
		}

		timers := tictoc.New()
		timers.Start("")

		var buf bytes.Buffer
		switch sh {
		case shell.ShellBash:
			err = rootCmd.GenBashCompletionV2(&buf, true)
		case shell.ShellZsh:
			err = rootCmd.GenZshCompletion(&buf)
		case shell.ShellFish:
			err = rootCmd.GenFishCompletion(&buf, true)
		case shell.ShellPowerShell:
			err = rootCmd.GenPowerShellCompletionWithDesc(&buf)
		}
		if err != nil {
			return fmt.Errorf("generate %s completions: %w", sh, err)
		}

		if outPath != "" {
			if err := fileio.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write completions: %w", err)
			}
			Success(cmd.OutOrStdout(), "Wrote completions to %s", outPath)
		} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("stream completions: %w", err)
		}

		timers.Stop("")
		if ms, err := timers.Elapsed("", tictoc.Milliseconds); err == nil && ms > completionBudget.Milliseconds() {
			Warning("completions generated in %dms (over %s budget)", ms, completionBudget)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	completionCmd.Flags().String("out", "", "write completions to the given file path")
	completionCmd.Flags().Bool("install", false, "write completions to the shell's user completion directory")
}

// historyKeysFunc completes timer keys seen in the run history.
func historyKeysFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	provider := newKeyCompletionProvider(configManager, logger.Log)
	return provider.Keys(cmd.Context()), cobra.ShellCompDirectiveNoFileComp
}

func unitNamesFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, u := range tictoc.Units() {
		names = append(names, u.String()+"\t"+u.Name())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
