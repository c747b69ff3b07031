// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/h1bctl/internal/config"
)

func TestDirPrecedence(t *testing.T) {
	cfg := config.Type{Data: map[string]interface{}{"data_dir": "/from/config"}}

	t.Setenv("H1BCTL_CACHE_DIR", "/from/env")
	dir, ok := Dir(cfg)
	assert.True(t, ok)
	assert.Equal(t, "/from/env", dir)

	t.Setenv("H1BCTL_CACHE_DIR", "")
	dir, ok = Dir(cfg)
	assert.True(t, ok)
	assert.Equal(t, "/from/config", dir)

	t.Setenv("XDG_CACHE_HOME", "/xdg")
	dir, ok = Dir(config.Type{})
	if ok {
		assert.Equal(t, "h1bctl", filepath.Base(dir))
	}
}

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("H1BCTL_CACHE_DIR", base)

	p, err := NewPaths(config.Type{})
	require.NoError(t, err)
	assert.Equal(t, base, p.Dir)
	assert.Equal(t, filepath.Join(base, DefaultRawFile), p.Raw)
	assert.Equal(t, filepath.Join(base, DefaultFilteredFile), p.Filtered)

	cfg := config.Type{Data: map[string]interface{}{
		"files": map[string]interface{}{"raw": "raw.csv", "filtered": "out.csv"},
	}}
	p, err = NewPaths(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "raw.csv"), p.Raw)
	assert.Equal(t, filepath.Join(base, "out.csv"), p.Filtered)
}

func TestNewPathsSameFile(t *testing.T) {
	t.Setenv("H1BCTL_CACHE_DIR", t.TempDir())
	cfg := config.Type{Data: map[string]interface{}{
		"files": map[string]interface{}{"raw": "same.csv", "filtered": "same.csv"},
	}}
	_, err := NewPaths(cfg)
	assert.ErrorContains(t, err, "must differ")
}

func TestNewPathsRelative(t *testing.T) {
	t.Setenv("H1BCTL_CACHE_DIR", "data")
	p, err := NewPaths(config.Type{})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.Dir))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	assert.NoError(t, EnsureDir(dir))
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	p := Paths{
		Dir:      dir,
		Raw:      filepath.Join(dir, DefaultRawFile),
		Filtered: filepath.Join(dir, DefaultFilteredFile),
	}
	leftover := filepath.Join(dir, "."+DefaultRawFile+".123456")
	unrelated := filepath.Join(dir, "notes", "thesis.docx")
	require.NoError(t, os.MkdirAll(filepath.Dir(unrelated), 0o755))

	old := time.Now().Add(-48 * time.Hour)
	for _, f := range []string{p.Raw, p.Filtered, leftover, unrelated} {
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
		require.NoError(t, os.Chtimes(f, old, old))
	}

	require.NoError(t, Purge(p, 0))
	assert.FileExists(t, p.Raw)

	require.NoError(t, Purge(p, 24))
	assert.NoFileExists(t, p.Raw)
	assert.NoFileExists(t, leftover)
	assert.FileExists(t, p.Filtered)
	assert.FileExists(t, unrelated)

	// A fresh raw artifact is kept.
	require.NoError(t, os.WriteFile(p.Raw, []byte("x"), 0o600))
	require.NoError(t, Purge(p, 24))
	assert.FileExists(t, p.Raw)

	// Missing directory is not an error.
	missing := filepath.Join(dir, "missing")
	assert.NoError(t, Purge(Paths{Dir: missing, Raw: filepath.Join(missing, DefaultRawFile)}, 24))
}
