package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/all-dot-files/tictoc/pkg/errors"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]ShellType{
		"bash": ShellBash, "ZSH": ShellZsh, " fish ": ShellFish, "pwsh": ShellPowerShell, "powershell": ShellPowerShell,
	} {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := Parse("tcsh"); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Parse(tcsh) error = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultInstallPath(t *testing.T) {
	home := t.TempDir()
	for _, s := range []ShellType{ShellBash, ShellZsh, ShellFish} {
		p := DefaultInstallPath(s, home)
		if !strings.HasPrefix(p, home) || !strings.Contains(filepath.Base(p), "tictoc") {
			t.Errorf("DefaultInstallPath(%s) = %q", s, p)
		}
	}
	if p := DefaultInstallPath(ShellPowerShell, home); p != "" {
		t.Errorf("powershell install path = %q, want empty", p)
	}
}

func TestValidateWritable(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "completions", "tictoc")
	if err := ValidateWritable(target); err != nil {
		t.Fatalf("ValidateWritable failed: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 0 {
		t.Errorf("write check left %d files behind", len(entries))
	}

	file := filepath.Join(dir, "plain")
	os.WriteFile(file, []byte("x"), 0644)
	if err := ValidateWritable(filepath.Join(file, "tictoc")); err == nil {
		t.Error("expected error when parent is a file")
	}
}
