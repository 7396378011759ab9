// Package tracker shares one timer registry between goroutines and records
// metrics for every operation on it.
package tracker

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

// Tracker serialises access to a tictoc.Registry.
type Tracker struct {
	mu      sync.Mutex
	reg     *tictoc.Registry
	metrics *Metrics
	log     *slog.Logger
}

// New wraps reg. metrics and log may be nil.
func New(reg *tictoc.Registry, metrics *Metrics, log *slog.Logger) *Tracker {
	if reg == nil {
		reg = tictoc.New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{reg: reg, metrics: metrics, log: log}
}

func (t *Tracker) Start(key string) (tictoc.Mark, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mark, err := t.reg.Start(key)
	t.metrics.observe("start", err)
	return mark, err
}

// Stop finishes the timer and publishes its elapsed seconds.
func (t *Tracker) Stop(key string) (tictoc.Mark, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mark, err := t.reg.Stop(key)
	t.metrics.observe("stop", err)
	if err != nil {
		return mark, err
	}

	if timer, err := t.reg.Timer(key); err == nil {
		t.metrics.setElapsed(timer.Key, timer.Elapsed.Seconds())
	}
	return mark, nil
}

func (t *Tracker) Elapsed(key string, unit tictoc.Unit) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.reg.Elapsed(key, unit)
	t.metrics.observe("elapsed", err)
	return n, err
}

func (t *Tracker) Timer(key string) (tictoc.Timer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.Timer(key)
}

func (t *Tracker) Snapshot() []tictoc.Timer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.Snapshot()
}

// Measure starts key, runs fn, and stops key whether or not fn succeeds.
// It returns fn's error, or the timer error if the timer could not be used.
func (t *Tracker) Measure(key string, fn func() error) (tictoc.Timer, error) {
	if _, err := t.Start(key); err != nil {
		return tictoc.Timer{}, err
	}
	fnErr := fn()
	if _, err := t.Stop(key); err != nil {
		t.log.Warn("failed to stop timer", "key", key, "error", err)
		return tictoc.Timer{}, err
	}
	timer, err := t.Timer(key)
	if err != nil {
		return tictoc.Timer{}, err
	}
	return timer, fnErr
}

func resultLabel(err error) string {
	code := errors.CodeOf(err)
	if code == "" {
		return "error"
	}
	return strings.ToLower(code)
}
