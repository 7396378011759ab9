package cli

import (
	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/config"
)

// ConfigManagerForTest sets the global config manager for tests.
func ConfigManagerForTest(mgr *config.Manager) {
	configManager = mgr
}

// RootCommandForTest exposes the root command for suggestion checks.
func RootCommandForTest() *cobra.Command {
	return rootCmd
}

// CompletionCommandForTest exposes the completion command for testing.
func CompletionCommandForTest() *cobra.Command {
	return completionCmd
}
