package extract

import (
	"strings"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
	"github.com/evamaxfield/extract-imported-libraries/internal/extract/stdlib"
)

// Classifier assigns canonical module names to stdlib, third-party or
// first-party. Decision order:
//
//  1. relative references are first-party by definition;
//  2. names marked builtin by their specifier, or present in the language's
//     stdlib registry, are stdlib;
//  3. names ever sighted under an ignored (vendored) directory are
//     third-party, even when a same-named local module exists (vendored
//     code is never first-party);
//  4. names matching a module physically present in the project are
//     first-party;
//  5. everything else is third-party.
type Classifier struct {
	registry *stdlib.Registry
	project  *ProjectContext
	ignored  ModuleSet
}

// NewClassifier builds a classifier. ignored may be nil (single-file mode,
// or a scan with the ignore policy disabled).
func NewClassifier(registry *stdlib.Registry, project *ProjectContext, ignored ModuleSet) *Classifier {
	if project == nil {
		project = emptyProjectContext()
	}
	return &Classifier{registry: registry, project: project, ignored: ignored}
}

// Classify returns the category for one canonical name.
func (c *Classifier) Classify(name lang.Canonical, language lang.Language) Category {
	if name.Relative {
		return CategoryFirstParty
	}
	if name.Builtin || c.isStdlib(name.Name, language) {
		return CategoryStdlib
	}
	if c.ignored != nil && c.ignored.Contains(name.Name) {
		return CategoryThirdParty
	}
	if c.project.IsLocal(name.Name, language) {
		return CategoryFirstParty
	}
	return CategoryThirdParty
}

func (c *Classifier) isStdlib(name string, language lang.Language) bool {
	if language == lang.Go {
		return goStdlibPath(name)
	}
	return c.registry.Contains(language.RegistryKey(), name)
}

// goStdlibPath reports whether a Go import path belongs to the standard
// library: stdlib paths never carry a dotted (domain) first segment.
func goStdlibPath(path string) bool {
	first := path
	if i := strings.Index(first, "/"); i >= 0 {
		first = first[:i]
	}
	return !strings.Contains(first, ".")
}
