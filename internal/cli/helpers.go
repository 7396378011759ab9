package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

// LogVerbose prints verbose output if verbose mode is enabled
func LogVerbose(format string, args ...interface{}) {
	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "🔍 "+format+"\n", args...)
	}
}

// Success prints a success message
func Success(w io.Writer, format string, args ...interface{}) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, green("✓ ")+format+"\n", args...)
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(os.Stderr, yellow("⚠️  ")+format+"\n", args...)
}

func newTable(w io.Writer, header ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	return table
}

// resolveUnit returns the unit named by flag, else the configured default.
func resolveUnit(flag string) (tictoc.Unit, error) {
	if flag == "" && configManager != nil {
		flag = configManager.Get().DefaultUnit
	}
	return tictoc.ParseUnit(flag)
}

// formatElapsed renders a reading with its unit, and the exact duration when
// the unit hides precision.
func formatElapsed(n int64, unit string, d time.Duration) string {
	s := fmt.Sprintf("%d%s", n, unit)
	if u, err := tictoc.ParseUnit(unit); err == nil && u > tictoc.Nanoseconds && d != time.Duration(n)*u.Duration() {
		s += fmt.Sprintf(" (%s)", d)
	}
	return s
}

func runStatus(run models.Run) string {
	if run.Succeeded() {
		return color.GreenString("ok")
	}
	if run.ExitCode >= 0 {
		return color.RedString("exit %d", run.ExitCode)
	}
	return color.RedString("error")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
