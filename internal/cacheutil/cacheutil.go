// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"github.com/staranto/h1bctl/internal/config"
)

const (
	DefaultRawFile      = "h1b_raw.csv"
	DefaultFilteredFile = "h1b_filtered.csv"
)

// Paths are the locations of the two artifacts a run produces.
type Paths struct {
	Dir      string
	Raw      string
	Filtered string
}

// Dir resolves the base data directory.
// Precedence:
//  1. H1BCTL_CACHE_DIR, if set and non-empty
//  2. data_dir from the config file
//  3. os.UserCacheDir()/h1bctl
//
// Returns ("", false) if a base cannot be resolved.
func Dir(cfg config.Type) (string, bool) {
	if c, ok := os.LookupEnv("H1BCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if c, _ := cfg.GetString("data_dir", ""); c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "h1bctl"), true
	}
	return "", false
}

// NewPaths resolves absolute artifact paths. File names may be overridden by
// files.raw and files.filtered in the config.
func NewPaths(cfg config.Type) (Paths, error) {
	base, ok := Dir(cfg)
	if !ok {
		return Paths{}, errors.New("unable to resolve a data directory; set H1BCTL_CACHE_DIR")
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	raw, _ := cfg.GetString("files.raw", DefaultRawFile)
	filtered, _ := cfg.GetString("files.filtered", DefaultFilteredFile)

	p := Paths{
		Dir:      base,
		Raw:      filepath.Join(base, raw),
		Filtered: filepath.Join(base, filtered),
	}
	if p.Raw == p.Filtered {
		return Paths{}, fmt.Errorf("raw and filtered artifacts must differ: %s", p.Raw)
	}
	return p, nil
}

// EnsureDir creates dir, and any parents, if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Purge removes the raw artifact, and any temp files a failed save left
// beside it, when older than the provided number of hours. Nothing else in the
// data directory is touched. If hours <= 0 it is a no-op.
func Purge(p Paths, hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(p.Raw), "."+filepath.Base(p.Raw)+".*"))
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	maxAge := time.Duration(hours) * time.Hour
	for _, path := range append([]string{p.Raw}, leftovers...) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.Remove(path); err == nil {
			log.Debugf("removed cache file %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
	}
	return nil
}
