package yaml

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	storagetest.TestRunStore(t, s)
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", FileName)
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.Add(context.Background(), storagetest.NewRun("r1", "k", 0)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	again, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	runs, err := again.List(context.Background(), storage.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "r1" {
		t.Errorf("reopened store has %+v", runs)
	}
	if runs[0].Duration != storagetest.NewRun("r1", "k", 0).Duration {
		t.Errorf("duration = %v did not survive the round trip", runs[0].Duration)
	}
}

func TestCopySkipsExisting(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, _ := NewStore(filepath.Join(dir, "src.yaml"))
	dst, _ := NewStore(filepath.Join(dir, "dst.yaml"))

	src.Add(ctx, storagetest.NewRun("a", "k", 0))
	src.Add(ctx, storagetest.NewRun("b", "k", 1))
	dst.Add(ctx, storagetest.NewRun("a", "k", 0))

	copied, err := storage.Copy(ctx, dst, src)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if copied != 1 {
		t.Errorf("copied %d, want 1", copied)
	}
	runs, _ := dst.List(ctx, storage.Filter{})
	if len(runs) != 2 {
		t.Errorf("dst holds %d runs, want 2", len(runs))
	}
}
