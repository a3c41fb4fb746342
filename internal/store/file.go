// Package store persists project cards, text styles and typography styles as
// whole JSON files keyed by name.
package store

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jonathan/archinews-creator/internal/schemas"
)

// FileStore is a JSON object of records keyed by name. Every read loads the
// whole file and every write rewrites it; writes are not atomic.
type FileStore[T any] struct {
	path   string
	schema string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store backed by path. When schema names an embedded
// schema, loaded files are checked against it and violations are logged.
func NewFileStore[T any](path, schema string, logger *slog.Logger) *FileStore[T] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileStore[T]{path: path, schema: schema, logger: logger}
}

// Path returns the backing file.
func (s *FileStore[T]) Path() string {
	return s.path
}

// Load returns all records. A missing, unreadable or malformed file yields an
// empty map.
func (s *FileStore[T]) Load() map[string]T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the record stored under key.
func (s *FileStore[T]) Get(key string) (T, bool) {
	rec, ok := s.Load()[key]
	return rec, ok
}

// Keys returns the record keys, sorted.
func (s *FileStore[T]) Keys() []string {
	records := s.Load()
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Put stores rec under key and rewrites the file.
func (s *FileStore[T]) Put(key string, rec T) error {
	return s.Update(func(records map[string]T) error {
		records[key] = rec
		return nil
	})
}

// Update loads the records, applies fn and rewrites the file unless fn fails.
func (s *FileStore[T]) Update(fn func(records map[string]T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	if err := fn(records); err != nil {
		return err
	}
	return s.save(records)
}

func (s *FileStore[T]) load() map[string]T {
	records := make(map[string]T)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("store file not found, starting empty", "path", s.path)
		} else {
			s.logger.Warn("store file unreadable, starting empty", "path", s.path, "error", err)
		}
		return records
	}

	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("store file malformed, starting empty", "path", s.path, "error", err)
		return make(map[string]T)
	}
	if records == nil {
		records = make(map[string]T)
	}

	if s.schema != "" {
		if err := schemas.ValidateDocument(s.schema, data); err != nil {
			s.logger.Warn("store file does not match schema", "path", s.path, "error", err)
		}
	}
	return records
}

func (s *FileStore[T]) save(records map[string]T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Cause: err}
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Op: "create directory for", Path: s.path, Cause: err}
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: s.path, Cause: err}
	}

	s.logger.Debug("store file written", "path", s.path, "records", len(records))
	return nil
}
