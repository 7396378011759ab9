package sqlite

import (
	"context"
	"path/filepath"
	"testing"

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

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	s.Add(context.Background(), storagetest.NewRun("r1", "k", 0))
	s.Close()

	again, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer again.Close()
	if _, err := again.Get(context.Background(), "r1"); err != nil {
		t.Errorf("Get after reopen failed: %v", err)
	}
}
