// Package stdlib embeds the per-language standard-library module lists.
// Each YAML file under data/ names the modules shipped with one language's
// standard distribution; the file name (minus extension) is the registry
// key. Adding or correcting entries never requires touching Go code.
package stdlib

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// registryFile is the on-disk shape of one data/*.yaml file.
type registryFile struct {
	Modules []string `yaml:"modules"`
}

// Registry holds every language's standard-library module set. Loaded once
// per process and read-only afterwards; safe to share across workers without
// locking.
type Registry struct {
	byLanguage map[string]map[string]struct{}
}

var (
	loadOnce sync.Once
	shared   *Registry
	loadErr  error
)

// Load returns the process-wide registry, reading the embedded data on first
// use.
func Load() (*Registry, error) {
	loadOnce.Do(func() {
		shared, loadErr = loadFromFS(dataFS)
	})
	return shared, loadErr
}

func loadFromFS(fsys fs.FS) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, "data")
	if err != nil {
		return nil, fmt.Errorf("read registry data: %w", err)
	}

	reg := &Registry{byLanguage: make(map[string]map[string]struct{}, len(entries))}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join("data", name))
		if err != nil {
			return nil, fmt.Errorf("read registry %s: %w", name, err)
		}

		var file registryFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse registry %s: %w", name, err)
		}

		set := make(map[string]struct{}, len(file.Modules))
		for _, m := range file.Modules {
			set[m] = struct{}{}
		}
		reg.byLanguage[strings.TrimSuffix(name, ".yaml")] = set
	}
	return reg, nil
}

// Contains reports whether module is a standard-library name for the given
// registry key. Unknown keys report false for every module.
func (r *Registry) Contains(language, module string) bool {
	set, ok := r.byLanguage[language]
	if !ok {
		return false
	}
	_, ok = set[module]
	return ok
}

// Languages returns the registry keys present in the embedded data.
func (r *Registry) Languages() []string {
	keys := make([]string, 0, len(r.byLanguage))
	for k := range r.byLanguage {
		keys = append(keys, k)
	}
	return keys
}
