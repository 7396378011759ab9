package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"
)

func TestAppErrorString(t *testing.T) {
	err := New(ErrNotFound, "store.Get", "run not found")
	if got, want := err.Error(), "[NOT_FOUND] store.Get: run not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(io.EOF, ErrInternal, "store.Load", "read failed")
	if got, want := wrapped.Error(), "[INTERNAL] store.Load: read failed (cause: EOF)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(wrapped, io.EOF) {
		t.Error("wrapped error should unwrap to io.EOF")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrInternal, "op", "msg") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if WrapWithSuggestion(nil, ErrInternal, "op", "msg", "try again") != nil {
		t.Error("WrapWithSuggestion(nil) should return nil")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New("TIMER_NOT_EXISTS", "tictoc", "timer does not exist")
	err := Newf("TIMER_NOT_EXISTS", "tictoc.Stop", "timer %q does not exist", "job1")

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match errors sharing a code")
	}
	if stderrors.Is(err, New(ErrConflict, "tictoc", "conflict")) {
		t.Error("errors.Is should not match a different code")
	}

	outer := fmt.Errorf("handler: %w", err)
	if !stderrors.Is(outer, sentinel) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestIsCodeAndCodeOf(t *testing.T) {
	err := fmt.Errorf("cli: %w", New(ErrUnauthorized, "server.auth", "bad token"))

	if !IsCode(err, ErrUnauthorized) {
		t.Error("IsCode should find a wrapped AppError")
	}
	if IsCode(err, ErrNotFound) {
		t.Error("IsCode matched the wrong code")
	}
	if got := CodeOf(io.EOF); got != "" {
		t.Errorf("CodeOf(plain error) = %q, want empty", got)
	}
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrInvalidInput, "config.Set", "unknown key").WithSuggestion("run 'tictoc config show'")
	if err.Suggestion != "run 'tictoc config show'" {
		t.Errorf("unexpected suggestion %q", err.Suggestion)
	}
}
