// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/h1bctl/internal/dataset"
)

// MissError is returned by Load when the artifact does not exist.
type MissError struct {
	Path string
}

func (e *MissError) Error() string {
	return fmt.Sprintf("cache file does not exist: %s", e.Path)
}

// Store reads and writes a dataset as a CSV file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the absolute path of the artifact, falling back to the
// configured path if it cannot be made absolute.
func (s *Store) Path() string {
	if abs, err := filepath.Abs(s.path); err == nil {
		return abs
	}
	return s.path
}

// Exists reports whether a regular file is present at the store path.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the dataset. A missing file yields *MissError.
func (s *Store) Load() (dataset.Dataset, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return dataset.Dataset{}, &MissError{Path: s.Path()}
	}
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open cache: %w", err)
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read cache %s: %w", s.path, err)
	}
	log.Debugf("loaded %d records from %s", ds.Len(), s.path)
	return ds, nil
}

// Save writes ds, replacing whatever was there. Parent directories are
// created as needed. The write goes to a temp file first so a failed write
// never leaves a truncated artifact behind.
func (s *Store) Save(ds dataset.Dataset) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := dataset.WriteCSV(tmp, ds); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("wrote %d records to %s", ds.Len(), s.path)
	return nil
}
