package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/config"
	"github.com/all-dot-files/tictoc/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile       string
	configManager *config.Manager
	debugMode     bool
	verboseMode   bool
	logFormat     string
	logLevel      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tictoc",
	Short: "Time commands and code sections with named timers",
	Long: `tictoc measures elapsed time with named stopwatch timers.

Features:
  - Time any command and keep a history of its runs
  - Benchmark a command over repeated, optionally parallel, runs
  - Serve timers over HTTP with Prometheus metrics
  - Report elapsed time from nanoseconds to weeks`,
	Version: Version,
}

// Execute runs the root command and exits with a non-zero status on error.
// A timed command's own exit status is passed through.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exit *exitError
	if stderrors.As(err, &exit) {
		os.Exit(exit.code)
	}

	if len(os.Args) > 1 {
		if suggestions := rootCmd.SuggestionsFor(os.Args[1]); len(suggestions) > 0 {
			fmt.Fprintf(os.Stderr, "Did you mean:\n")
			for _, s := range suggestions {
				fmt.Fprintf(os.Stderr, "  • %s (try: tictoc help %s)\n", s, s)
			}
			fmt.Fprintln(os.Stderr)
		}
	}
	PrintError(err)
	os.Exit(1)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SuggestionsMinimumDistance = 2

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tictoc/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug mode with detailed error messages")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
}

// initConfig reads in config file
func initConfig() {
	var err error
	configManager, err = config.NewManager(cfgFile)
	if err != nil {
		PrintError(fmt.Errorf("error initializing config: %w", err))
		os.Exit(1)
	}

	// A broken config file is reported but does not block commands such as
	// 'config init' or 'config set' that repair it.
	loadErr := configManager.Load()

	cfg := configManager.Get()
	if debugMode {
		cfg.Debug = true
	}

	format, level := cfg.Log.Format, cfg.Log.Level
	if logFormat != "" {
		format = logFormat
	}
	if logLevel != "" {
		level = logLevel
	}
	if IsDebug() && logLevel == "" {
		level = "debug"
	}
	logger.Setup(format, level)

	if loadErr != nil {
		Warning("could not load configuration: %v", loadErr)
	}
	LogVerbose("using config %s", configManager.GetConfigPath())
}

// IsDebug returns true if debug mode is enabled
func IsDebug() bool {
	if debugMode {
		return true
	}
	if configManager != nil {
		return configManager.Get().Debug
	}
	return false
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verboseMode || debugMode
}

// exitError carries a timed command's exit status out of Execute.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
