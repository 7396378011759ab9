package storage

import (
	"context"
	"sort"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/pkg/errors"
)

// RunStore persists the history of timed command runs.
type RunStore interface {
	// Add stores a run. Its ID must be unique.
	Add(ctx context.Context, run models.Run) error
	// Get retrieves a run by ID
	Get(ctx context.Context, id string) (*models.Run, error)
	// List returns runs newest first
	List(ctx context.Context, filter Filter) ([]models.Run, error)
	// Delete deletes a run by ID
	Delete(ctx context.Context, id string) error
	// Prune keeps the newest keep runs and returns how many were removed.
	Prune(ctx context.Context, keep int) (int, error)
	Close() error
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Key   string
	Limit int
}

// Match reports whether run passes the filter's key criterion.
func (f Filter) Match(run models.Run) bool {
	return f.Key == "" || run.Key == f.Key
}

// ErrRunNotFound builds the error stores return for an unknown ID.
func ErrRunNotFound(op, id string) error {
	return errors.Newf(errors.ErrNotFound, op, "run %s not found", id).
		WithSuggestion("list recorded runs with 'tictoc history'")
}

// SortNewestFirst orders runs by start time, newest first, breaking ties by ID.
func SortNewestFirst(runs []models.Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID > runs[j].ID
	})
}

// Copy adds every run in src to dst, skipping runs dst already holds. It
// returns the number of runs copied.
func Copy(ctx context.Context, dst, src RunStore) (int, error) {
	runs, err := src.List(ctx, Filter{})
	if err != nil {
		return 0, err
	}

	copied := 0
	for i := len(runs) - 1; i >= 0; i-- {
		err := dst.Add(ctx, runs[i])
		switch {
		case err == nil:
			copied++
		case errors.IsCode(err, errors.ErrConflict):
		default:
			return copied, err
		}
	}
	return copied, nil
}
