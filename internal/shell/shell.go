package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/all-dot-files/tictoc/pkg/errors"
)

// ShellType represents a shell tictoc can generate completions for.
type ShellType string

const (
	ShellZsh        ShellType = "zsh"
	ShellBash       ShellType = "bash"
	ShellFish       ShellType = "fish"
	ShellPowerShell ShellType = "powershell"
)

// Shells lists the supported shells in the order they are documented.
func Shells() []ShellType {
	return []ShellType{ShellBash, ShellZsh, ShellFish, ShellPowerShell}
}

// Parse resolves a shell name, accepting "pwsh" for PowerShell.
func Parse(name string) (ShellType, error) {
	switch s := ShellType(strings.ToLower(strings.TrimSpace(name))); s {
	case ShellZsh, ShellBash, ShellFish, ShellPowerShell:
		return s, nil
	case "pwsh":
		return ShellPowerShell, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "shell.Parse", "unsupported shell %q", name).
		WithSuggestion("use bash, zsh, fish or powershell")
}

// DefaultInstallPath returns where a user-level completion script for shell
// is picked up, relative to home. PowerShell has no such directory.
func DefaultInstallPath(shell ShellType, home string) string {
	switch shell {
	case ShellZsh:
		return filepath.Join(home, ".zsh", "completions", "_tictoc")
	case ShellBash:
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "tictoc")
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "completions", "tictoc.fish")
	default:
		return ""
	}
}

// ValidateWritable checks that the directory holding path exists, creating
// it if needed, and accepts new files.
func ValidateWritable(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("completion path not accessible (%s): %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("completion path not accessible (%s): %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("completion path parent is not a directory: %s", dir)
	}
	f, err := os.CreateTemp(dir, ".tictoc-writecheck-*")
	if err != nil {
		return fmt.Errorf("cannot write completion file to %s: %w", dir, err)
	}
	f.Close()
	_ = os.Remove(f.Name())
	return nil
}
