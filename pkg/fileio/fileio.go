package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileCache caches file contents, revalidating against the file's
// modification time and a TTL.
type FileCache struct {
	cache map[string]cachedFile
	mu    sync.RWMutex
	ttl   time.Duration
}

type cachedFile struct {
	content   []byte
	modTime   time.Time
	cacheTime time.Time
}

// NewFileCache creates a new file cache
func NewFileCache(ttl time.Duration) *FileCache {
	return &FileCache{
		cache: make(map[string]cachedFile),
		ttl:   ttl,
	}
}

// Read returns the file's contents, from cache while the entry is fresh.
func (fc *FileCache) Read(path string) ([]byte, error) {
	fc.mu.RLock()
	cached, exists := fc.cache[path]
	fc.mu.RUnlock()

	if exists {
		info, err := os.Stat(path)
		if err == nil && info.ModTime().Equal(cached.modTime) &&
			time.Since(cached.cacheTime) < fc.ttl {
			return cached.content, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fc.Invalidate(path)
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return content, nil
	}

	fc.mu.Lock()
	fc.cache[path] = cachedFile{
		content:   content,
		modTime:   info.ModTime(),
		cacheTime: time.Now(),
	}
	fc.mu.Unlock()

	return content, nil
}

// Invalidate removes a file from cache
func (fc *FileCache) Invalidate(path string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	delete(fc.cache, path)
}

// Clear clears the entire cache
func (fc *FileCache) Clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.cache = make(map[string]cachedFile)
}

// AtomicWriter writes to a temporary file beside the target and renames it
// into place on Commit, so readers never see a partial file.
type AtomicWriter struct {
	targetPath string
	perm       os.FileMode
	tempFile   *os.File
}

// NewAtomicWriter creates the temporary file in path's directory, creating
// the directory if needed.
func NewAtomicWriter(path string, perm os.FileMode) (*AtomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &AtomicWriter{
		targetPath: path,
		perm:       perm,
		tempFile:   tempFile,
	}, nil
}

// Write writes data to the temporary file
func (aw *AtomicWriter) Write(p []byte) (n int, err error) {
	return aw.tempFile.Write(p)
}

// Commit syncs the temporary file and renames it over the target.
func (aw *AtomicWriter) Commit() error {
	if err := aw.tempFile.Chmod(aw.perm); err != nil {
		aw.Abort()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := aw.tempFile.Sync(); err != nil {
		aw.Abort()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := aw.tempFile.Close(); err != nil {
		os.Remove(aw.tempFile.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(aw.tempFile.Name(), aw.targetPath); err != nil {
		os.Remove(aw.tempFile.Name())
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Abort aborts the write and removes temp file
func (aw *AtomicWriter) Abort() error {
	aw.tempFile.Close()
	return os.Remove(aw.tempFile.Name())
}

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	aw, err := NewAtomicWriter(path, perm)
	if err != nil {
		return err
	}
	if _, err := aw.Write(data); err != nil {
		aw.Abort()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	return aw.Commit()
}
