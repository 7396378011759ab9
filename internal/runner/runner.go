// Package runner times external commands on a tracker.
package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/logger"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

// Spec describes one command to time.
type Spec struct {
	// Key names the timer. Empty means the command's base name.
	Key     string
	Command []string
	Unit    tictoc.Unit
	Dir     string
	Env     []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// KeyFor returns the timer key Run will use for spec.
func (s Spec) KeyFor() string {
	if s.Key != "" {
		return s.Key
	}
	if len(s.Command) == 0 {
		return ""
	}
	return filepath.Base(s.Command[0])
}

// Run executes the command under a timer and returns the run record. A
// command that fails or cannot be started still yields a record, with
// ExitCode and Error set; err reports only timer and argument problems.
func Run(ctx context.Context, tr *tracker.Tracker, spec Spec) (models.Run, error) {
	if len(spec.Command) == 0 {
		return models.Run{}, errors.New(errors.ErrInvalidInput, "runner.Run", "no command given").
			WithSuggestion("pass the command after --, e.g. tictoc run -- make build")
	}
	unit := spec.Unit
	if unit == 0 {
		unit = tictoc.DefaultUnit
	}
	if !unit.Valid() {
		return models.Run{}, errors.Newf(errors.ErrInvalidInput, "runner.Run", "invalid unit %v", unit)
	}

	key := spec.KeyFor()
	log := logger.FromContext(ctx).With("key", key)

	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = spec.Env
	}
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr

	log.Debug("running command", "command", spec.Command)
	timer, runErr := tr.Measure(key, cmd.Run)
	if runErr != nil && timer.Key == "" {
		return models.Run{}, runErr
	}

	elapsed, err := tr.Elapsed(key, unit)
	if err != nil {
		return models.Run{}, err
	}

	h := LocalHost(ctx)
	run := models.Run{
		ID:         uuid.NewString(),
		Key:        timer.Key,
		Command:    append([]string(nil), spec.Command...),
		Unit:       unit.String(),
		Elapsed:    elapsed,
		Duration:   timer.Elapsed,
		StartedAt:  timer.Start,
		FinishedAt: timer.End,
		Host:       h.Hostname,
		Platform:   h.Platform,
	}

	if runErr != nil {
		run.Error = runErr.Error()
		run.ExitCode = -1
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) && exitErr.ExitCode() >= 0 {
			run.ExitCode = exitErr.ExitCode()
		}
		log.Debug("command failed", "exit_code", run.ExitCode, "error", runErr)
	}

	log.Debug("command finished", "elapsed", fmt.Sprintf("%d%s", run.Elapsed, run.Unit))
	return run, nil
}
