package yaml

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/fileio"
)

// FileName is the history file created inside the data directory.
const FileName = "runs.yaml"

// Store implements storage.RunStore over a single YAML file
type Store struct {
	path string
	mu   sync.RWMutex
}

type document struct {
	Version string       `yaml:"version"`
	Runs    []models.Run `yaml:"runs"`
}

// NewStore creates a new YAML store, creating an empty file if none exists.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&document{}); err != nil {
			return nil, fmt.Errorf("failed to create history file: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Close() error {
	return nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if doc.Runs == nil {
		doc.Runs = []models.Run{}
	}
	return &doc, nil
}

func (s *Store) save(doc *document) error {
	doc.Version = "1"
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return fileio.WriteFile(s.path, data, 0600)
}

func (s *Store) Add(ctx context.Context, run models.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, r := range doc.Runs {
		if r.ID == run.ID {
			return errors.Newf(errors.ErrConflict, "yaml.Add", "run %s already recorded", run.ID)
		}
	}
	doc.Runs = append(doc.Runs, run)
	return s.save(doc)
}

func (s *Store) Get(ctx context.Context, id string) (*models.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Runs {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, storage.ErrRunNotFound("yaml.Get", id)
}

func (s *Store) List(ctx context.Context, filter storage.Filter) ([]models.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]models.Run, 0, len(doc.Runs))
	for _, r := range doc.Runs {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	storage.SortNewestFirst(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i, r := range doc.Runs {
		if r.ID == id {
			doc.Runs = append(doc.Runs[:i], doc.Runs[i+1:]...)
			return s.save(doc)
		}
	}
	return storage.ErrRunNotFound("yaml.Delete", id)
}

func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	if len(doc.Runs) <= keep {
		return 0, nil
	}

	storage.SortNewestFirst(doc.Runs)
	removed := len(doc.Runs) - keep
	doc.Runs = doc.Runs[:keep]
	return removed, s.save(doc)
}
