// Package storagetest holds the behaviour every storage.RunStore driver must
// share.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/pkg/errors"
)

// NewRun builds a run for key started offset after a fixed base instant.
func NewRun(id, key string, offset time.Duration) models.Run {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	start := base.Add(offset)
	return models.Run{
		ID:         id,
		Key:        key,
		Command:    []string{"sleep", "0.1"},
		Unit:       "ms",
		Elapsed:    100,
		Duration:   100 * time.Millisecond,
		StartedAt:  start,
		FinishedAt: start.Add(100 * time.Millisecond),
		Host:       "builder",
		Platform:   "linux",
	}
}

// TestRunStore exercises a fresh, empty store.
func TestRunStore(t *testing.T, s storage.RunStore) {
	t.Helper()
	ctx := context.Background()

	runs := []models.Run{
		NewRun("a", "build", 0),
		NewRun("b", "test", time.Minute),
		NewRun("c", "build", 2*time.Minute),
	}
	runs[1].ExitCode = 2
	runs[1].Error = "exit status 2"
	for _, r := range runs {
		if err := s.Add(ctx, r); err != nil {
			t.Fatalf("Add(%s) failed: %v", r.ID, err)
		}
	}

	if err := s.Add(ctx, runs[0]); !errors.IsCode(err, errors.ErrConflict) {
		t.Errorf("duplicate Add error = %v, want CONFLICT", err)
	}

	got, err := s.Get(ctx, "b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(runs[1], *got, timeEqual); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Get(ctx, "zzz"); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("Get missing error = %v, want NOT_FOUND", err)
	}

	list, err := s.List(ctx, storage.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if ids := idsOf(list); ids != "c,b,a" {
		t.Errorf("List order = %s, want c,b,a", ids)
	}

	list, _ = s.List(ctx, storage.Filter{Key: "build", Limit: 1})
	if ids := idsOf(list); ids != "c" {
		t.Errorf("filtered List = %s, want c", ids)
	}

	if err := s.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "c"); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("second Delete error = %v, want NOT_FOUND", err)
	}

	for i := 0; i < 3; i++ {
		s.Add(ctx, NewRun(fmt.Sprintf("p%d", i), "prune", time.Duration(10+i)*time.Minute))
	}
	removed, err := s.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune removed %d, want 3", removed)
	}
	list, _ = s.List(ctx, storage.Filter{})
	if ids := idsOf(list); ids != "p2,p1" {
		t.Errorf("after Prune = %s, want p2,p1", ids)
	}

	if removed, _ := s.Prune(ctx, 10); removed != 0 {
		t.Errorf("Prune above size removed %d, want 0", removed)
	}
}

var timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

func idsOf(runs []models.Run) string {
	s := ""
	for i, r := range runs {
		if i > 0 {
			s += ","
		}
		s += r.ID
	}
	return s
}
