package tictoc

import (
	"log/slog"
	"sort"

	"github.com/benbjohnson/clock"

	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/logger"
)

// DefaultKey is the timer addressed by the empty key.
const DefaultKey = "tictoc.default"

// Registry maps keys to timers. The zero value is not usable; use New.
type Registry struct {
	clock  clock.Clock
	log    *slog.Logger
	timers map[string]record
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the time source. The default is the system clock.
func WithClock(c clock.Clock) Option {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger receiving debug records for every start and
// stop. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		clock:  clock.New(),
		log:    logger.Discard(),
		timers: make(map[string]record),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func resolveKey(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}

// Start creates a running timer for key and returns its start instant. It
// fails with ErrTimerAlreadyExists if key holds a timer, running or finished.
func (r *Registry) Start(key string) (Mark, error) {
	key = resolveKey(key)
	if _, ok := r.timers[key]; ok {
		return Mark{}, errAlreadyExists("tictoc.Start", key)
	}

	rec := newRecord(r.clock.Now())
	r.timers[key] = rec
	r.log.Debug("timer started", "key", key, "start", rec.start)
	return rec.startMark(), nil
}

// Stop finishes the timer for key at the current instant and returns that
// instant. Stopping a finished timer finishes it again, replacing its end and
// elapsed time. It fails with ErrTimerNotExists if key was never started.
func (r *Registry) Stop(key string) (Mark, error) {
	key = resolveKey(key)
	rec, ok := r.timers[key]
	if !ok {
		return Mark{}, errNotExists("tictoc.Stop", key)
	}

	rec = rec.finish(r.clock.Now())
	if err := r.replace(key, rec); err != nil {
		return Mark{}, err
	}
	r.log.Debug("timer stopped", "key", key, "end", rec.end, "elapsed", rec.elapsed.duration())
	return rec.endMark(), nil
}

// replace swaps in rec for an existing entry.
func (r *Registry) replace(key string, rec record) error {
	if _, ok := r.timers[key]; !ok {
		return errors.Newf(CodeTimerUpdate, "tictoc.Stop", "no timer %q to update", key)
	}
	r.timers[key] = rec
	return nil
}

// Elapsed returns the finished timer's end minus start in unit, truncated
// toward zero. The zero Unit means DefaultUnit. It fails with
// ErrTimerNotExists for an unknown key, and with ErrTimerResult while the
// timer is running or when the value does not fit an int64.
func (r *Registry) Elapsed(key string, unit Unit) (int64, error) {
	return r.elapsed("tictoc.Elapsed", key, unit, primary)
}

func (r *Registry) elapsed(op, key string, unit Unit, measure func(record) (span, bool)) (int64, error) {
	u, err := unit.resolve()
	if err != nil {
		return 0, err
	}

	key = resolveKey(key)
	rec, ok := r.timers[key]
	if !ok {
		return 0, errNotExists(op, key)
	}

	s, finished := measure(rec)
	if !finished {
		return 0, errRunning(op, key)
	}

	n, ok := s.in(u)
	if !ok {
		return 0, errOverflow(op, key, u)
	}
	return n, nil
}

// Timer returns a snapshot of the timer for key.
func (r *Registry) Timer(key string) (Timer, error) {
	key = resolveKey(key)
	rec, ok := r.timers[key]
	if !ok {
		return Timer{}, errNotExists("tictoc.Timer", key)
	}
	return rec.snapshot(key), nil
}

// Snapshot returns snapshots of every timer, ordered by key.
func (r *Registry) Snapshot() []Timer {
	keys := make([]string, 0, len(r.timers))
	for k := range r.timers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Timer, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.timers[k].snapshot(k))
	}
	return out
}

// Has reports whether key holds a timer.
func (r *Registry) Has(key string) bool {
	_, ok := r.timers[resolveKey(key)]
	return ok
}

// Len returns the number of timers.
func (r *Registry) Len() int {
	return len(r.timers)
}
