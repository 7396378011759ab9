package tictoc

import (
	"github.com/all-dot-files/tictoc/pkg/errors"
)

// Error codes carried by the errors the registry returns.
const (
	CodeTimerAlreadyExists = "TIMER_ALREADY_EXISTS"
	CodeTimerNotExists     = "TIMER_NOT_EXISTS"
	CodeTimerUpdate        = "TIMER_UPDATE"
	CodeTimerResult        = "TIMER_RESULT"
)

// Sentinels for errors.Is. Registry errors match these by code.
var (
	ErrTimerAlreadyExists = errors.New(CodeTimerAlreadyExists, "tictoc", "timer already exists")
	ErrTimerNotExists     = errors.New(CodeTimerNotExists, "tictoc", "timer does not exist")
	ErrTimerUpdate        = errors.New(CodeTimerUpdate, "tictoc", "error updating timer")
	ErrTimerResult        = errors.New(CodeTimerResult, "tictoc", "cannot resolve timer result")
)

func errAlreadyExists(op, key string) error {
	return errors.Newf(CodeTimerAlreadyExists, op, "timer %q already exists", key).
		WithSuggestion("use a different key, or read the existing timer with Elapsed")
}

func errNotExists(op, key string) error {
	return errors.Newf(CodeTimerNotExists, op, "timer %q does not exist", key).
		WithSuggestion("start the timer before stopping or querying it")
}

func errRunning(op, key string) error {
	return errors.Newf(CodeTimerResult, op, "timer %q is still running", key).
		WithSuggestion("stop the timer before reading its elapsed time")
}

func errOverflow(op, key string, unit Unit) error {
	return errors.Newf(CodeTimerResult, op, "elapsed time of timer %q overflows %s", key, unit.Name()).
		WithSuggestion("read the elapsed time in a coarser unit")
}
