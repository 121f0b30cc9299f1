package extract

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// Test Plan for the Scanner:
// - Aggregate per-file results keyed by root-relative path
// - Exclude files under ignored directories from the per-file results while
//   recording the modules they import
// - Let the ignored-module set flip a local name to third-party
// - Include vendored files as regular results when ignoring is disabled
// - Restrict scans to requested languages
// - Visit only direct children when recursive is off
// - Report unreadable files in Failed without aborting the scan
// - Reject invalid ignore patterns at construction
// - Invoke the progress reporter with consistent counts
// - Return identical results with and without the cache

func newTestScanner(t *testing.T, opts ScanOptions) *Scanner {
	t.Helper()
	s, err := NewScanner(newTestExtractor(t), opts)
	require.NoError(t, err)
	return s
}

// scanTree builds the directory layout used by most scanner tests:
//
//	app.py            imports os, requests, helpers
//	helpers.py        imports json
//	sub/model.py      imports os
//	vendor/lib.py     imports requests, flask
func scanTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "import os\nimport requests\nimport helpers\n")
	writeFile(t, filepath.Join(root, "helpers.py"), "import json\n")
	writeFile(t, filepath.Join(root, "sub", "model.py"), "import os\n")
	writeFile(t, filepath.Join(root, "vendor", "lib.py"), "import requests\nimport flask\n")
	return root
}

func TestScanner_Recursive(t *testing.T) {
	t.Parallel()

	root := scanTree(t)
	s := newTestScanner(t, ScanOptions{Recursive: true, IgnoreDirs: DefaultIgnoreDirs()})

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, result.Extracted, 3)
	assert.Contains(t, result.Extracted, "app.py")
	assert.Contains(t, result.Extracted, "helpers.py")
	assert.Contains(t, result.Extracted, "sub/model.py")
	assert.NotContains(t, result.Extracted, "vendor/lib.py")
	assert.Empty(t, result.Failed)

	assert.Equal(t, []string{"flask", "requests"}, result.IgnoredExternalModules.Sorted())

	app := result.Extracted["app.py"]
	assert.Equal(t, []string{"os"}, app.Stdlib.Sorted())
	// requests was sighted under vendor/, so it stays third-party; helpers is
	// a top-level sibling and stays first-party.
	assert.Equal(t, []string{"requests"}, app.ThirdParty.Sorted())
	assert.Equal(t, []string{"helpers"}, app.FirstParty.Sorted())
}

func TestScanner_IgnoredModuleOverridesLocal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "import helpers\n")
	writeFile(t, filepath.Join(root, "helpers.py"), "")
	writeFile(t, filepath.Join(root, "node_modules", "dep.py"), "import helpers\n")

	s := newTestScanner(t, ScanOptions{Recursive: true, IgnoreDirs: DefaultIgnoreDirs()})
	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"helpers"}, result.IgnoredExternalModules.Sorted())
	assert.Equal(t, []string{"helpers"}, result.Extracted["app.py"].ThirdParty.Sorted())
	assert.Empty(t, result.Extracted["app.py"].FirstParty)
}

func TestScanner_IgnoreDisabled(t *testing.T) {
	t.Parallel()

	root := scanTree(t)
	s := newTestScanner(t, ScanOptions{Recursive: true})

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Contains(t, result.Extracted, "vendor/lib.py")
	assert.Empty(t, result.IgnoredExternalModules)
}

func TestScanner_LanguageScope(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "import os\n")
	writeFile(t, filepath.Join(root, "main.rb"), "require \"json\"\n")

	s := newTestScanner(t, ScanOptions{Recursive: true, Languages: []lang.Language{lang.Python}})
	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Contains(t, result.Extracted, "app.py")
	assert.NotContains(t, result.Extracted, "main.rb")
	assert.NotContains(t, result.Failed, "main.rb")
}

func TestScanner_TypeScriptScopeIncludesTSX(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "api.ts"), "import { x } from 'axios';\n")
	writeFile(t, filepath.Join(root, "app.tsx"), "import React from 'react';\n")
	writeFile(t, filepath.Join(root, "main.py"), "import os\n")

	s := newTestScanner(t, ScanOptions{Recursive: true, Languages: []lang.Language{lang.TypeScript}})
	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Contains(t, result.Extracted, "api.ts")
	assert.Contains(t, result.Extracted, "app.tsx")
	assert.NotContains(t, result.Extracted, "main.py")
}

func TestScanner_NonRecursive(t *testing.T) {
	t.Parallel()

	root := scanTree(t)
	s := newTestScanner(t, ScanOptions{Recursive: false, IgnoreDirs: DefaultIgnoreDirs()})

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Contains(t, result.Extracted, "app.py")
	assert.Contains(t, result.Extracted, "helpers.py")
	assert.NotContains(t, result.Extracted, "sub/model.py")
	assert.Empty(t, result.IgnoredExternalModules)
}

func TestScanner_UnreadableFileFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.py"), "import os\n")
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.py"), filepath.Join(root, "broken.py")))

	s := newTestScanner(t, ScanOptions{Recursive: true})
	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Contains(t, result.Extracted, "ok.py")
	assert.Contains(t, result.Failed, "broken.py")
	assert.NotContains(t, result.Extracted, "broken.py")
}

func TestScanner_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	_, err := NewScanner(newTestExtractor(t), ScanOptions{IgnoreDirs: []string{"[unclosed"}})
	assert.Error(t, err)
}

type recordingReporter struct {
	mu        sync.Mutex
	total     int
	processed int
	stats     ScanStats
}

func (r *recordingReporter) OnScanStart(totalFiles int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = totalFiles
}

func (r *recordingReporter) OnFileProcessed(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
}

func (r *recordingReporter) OnScanComplete(stats ScanStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = stats
}

func TestScanner_ProgressReporting(t *testing.T) {
	t.Parallel()

	root := scanTree(t)
	reporter := &recordingReporter{}
	s := newTestScanner(t, ScanOptions{
		Recursive:  true,
		IgnoreDirs: DefaultIgnoreDirs(),
		Progress:   reporter,
	})

	_, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 3, reporter.total)
	assert.Equal(t, 3, reporter.processed)
	assert.Equal(t, 3, reporter.stats.FilesProcessed)
	assert.Equal(t, 0, reporter.stats.FilesFailed)
}

func TestScanner_CacheConsistency(t *testing.T) {
	t.Parallel()

	root := scanTree(t)
	plain := newTestScanner(t, ScanOptions{Recursive: true, IgnoreDirs: DefaultIgnoreDirs()})
	cached := newTestScanner(t, ScanOptions{Recursive: true, IgnoreDirs: DefaultIgnoreDirs(), Cache: true})

	want, err := plain.Scan(context.Background(), root)
	require.NoError(t, err)

	first, err := cached.Scan(context.Background(), root)
	require.NoError(t, err)
	second, err := cached.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, want.Extracted, first.Extracted)
	assert.Equal(t, first.Extracted, second.Extracted)
	assert.Equal(t, first.IgnoredExternalModules, second.IgnoredExternalModules)
}

func TestScanner_Summary(t *testing.T) {
	t.Parallel()

	root := scanTree(t)
	s := newTestScanner(t, ScanOptions{Recursive: true, IgnoreDirs: DefaultIgnoreDirs()})

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	total := result.Summary()
	assert.Equal(t, []string{"json", "os"}, total.Stdlib.Sorted())
	assert.Equal(t, []string{"requests"}, total.ThirdParty.Sorted())
	assert.Equal(t, []string{"helpers"}, total.FirstParty.Sorted())
}
