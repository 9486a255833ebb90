// Package jsondir implements store.Store over a directory holding one
// <key>.json file per collection, each a JSON array of records.
package jsondir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alfredjeanlab/maintgraph/internal/model"
	"github.com/alfredjeanlab/maintgraph/internal/store"
)

const ext = ".json"

// DirStore implements store.Store on a local directory.
type DirStore struct {
	dir string
	mu  sync.RWMutex
}

// Compile-time check that DirStore implements store.Store.
var _ store.Store = (*DirStore)(nil)

// New returns a store rooted at dir, creating it if needed.
func New(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid collection key %q", key)
	}
	return filepath.Join(s.dir, key+ext), nil
}

// Load reads <dir>/<key>.json.
func (s *DirStore) Load(_ context.Context, key string) ([]model.Record, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, err := os.ReadFile(p)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %q: %w", key, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

// Save writes the collection to a temporary file and renames it into place.
func (s *DirStore) Save(_ context.Context, key string, records []model.Record) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Keys lists the collections present in the directory.
func (s *DirStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	sort.Strings(keys)
	return keys, nil
}

// GetAllTasks makes DirStore a store.TaskSource.
func (s *DirStore) GetAllTasks(ctx context.Context) ([]model.Record, error) {
	return s.Load(ctx, store.KeyTasks)
}

// RunInTransaction calls fn with the store itself. Writes are individually
// atomic but not grouped.
func (s *DirStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op.
func (s *DirStore) Close() error {
	return nil
}
