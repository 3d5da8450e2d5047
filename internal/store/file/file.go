// Package file persists the worklog collections as JSON documents on the
// local filesystem, one file per collection. It is the default backend and
// mirrors the single-writer model of the application: a mutex guards each
// store and every save rewrites the whole collection.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"worklog/internal/core"
)

const (
	categoriesFile = "worklog_categories.json"
	workItemsFile  = "worklog_items.json"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadCategories reads the category collection. A missing file yields the
// seed set (persisted immediately so ids stay stable across restarts).
func (s *Store) LoadCategories(ctx context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cats []core.Category
	found, err := s.read(categoriesFile, &cats)
	if err != nil {
		return nil, err
	}
	if !found {
		cats = core.SeedCategories()
		if err := s.write(categoriesFile, cats); err != nil {
			return nil, err
		}
	}
	return cats, nil
}

func (s *Store) SaveCategories(ctx context.Context, categories []core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if categories == nil {
		categories = []core.Category{}
	}
	return s.write(categoriesFile, categories)
}

// LoadWorkItems reads the work item collection; a missing file is an empty
// collection.
func (s *Store) LoadWorkItems(ctx context.Context) ([]core.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []core.WorkItem
	if _, err := s.read(workItemsFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SaveWorkItems(ctx context.Context, items []core.WorkItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		items = []core.WorkItem{}
	}
	return s.write(workItemsFile, items)
}

// read unmarshals the named collection into v. Returns found=false when the
// file does not exist. A file that exists but fails to parse is corruption
// and surfaces as an error rather than being masked.
func (s *Store) read(name string, v any) (found bool, err error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

// write marshals v and replaces the named collection atomically via a
// temp file and rename, so a crash mid-save never leaves a torn document.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
