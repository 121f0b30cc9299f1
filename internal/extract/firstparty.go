package extract

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// ProjectContext is the first-party detector: it records which module names
// are physically present at the top level of the analyzed tree, plus the Go
// module identity when the root carries a go.mod. Built once per scan and
// read-only afterwards.
type ProjectContext struct {
	root     string
	names    map[string]struct{}
	goModule string
}

// NewProjectContext inspects the top level of root. Directory names and file
// base names (without extension) become local module candidates: a sibling
// helpers.py or a pkg/ directory makes "helpers" and "pkg" first-party.
func NewProjectContext(root string) (*ProjectContext, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	ctx := &ProjectContext{
		root:  root,
		names: make(map[string]struct{}, len(entries)),
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if name != "" {
			ctx.names[name] = struct{}{}
		}
	}

	if data, err := os.ReadFile(filepath.Join(root, "go.mod")); err == nil {
		if mf, err := modfile.ParseLax("go.mod", data, nil); err == nil && mf.Module != nil {
			ctx.goModule = mf.Module.Mod.Path
		}
	}

	return ctx, nil
}

// emptyProjectContext is used when no project root is available; nothing
// classifies first-party through it.
func emptyProjectContext() *ProjectContext {
	return &ProjectContext{names: map[string]struct{}{}}
}

// IsLocal reports whether the canonical name matches a module physically
// present in the project. Go import paths match against the root go.mod
// module path; every other language matches top-level names.
func (p *ProjectContext) IsLocal(name string, language lang.Language) bool {
	if language == lang.Go {
		if p.goModule == "" {
			return false
		}
		return name == p.goModule || strings.HasPrefix(name, p.goModule+"/")
	}
	_, ok := p.names[name]
	return ok
}

// Fingerprint distinguishes project contexts for cache keying.
func (p *ProjectContext) Fingerprint() string {
	return p.root + "\x00" + p.goModule
}
