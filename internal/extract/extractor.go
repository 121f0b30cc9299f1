package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
	"github.com/evamaxfield/extract-imported-libraries/internal/extract/stdlib"
)

// Extractor extracts and classifies the imports of single source files. It
// is stateless apart from the shared read-only stdlib registry and safe for
// concurrent use.
type Extractor struct {
	registry *stdlib.Registry
}

// New returns an Extractor backed by the process-wide stdlib registries.
func New() (*Extractor, error) {
	registry, err := stdlib.Load()
	if err != nil {
		return nil, fmt.Errorf("load stdlib registries: %w", err)
	}
	return &Extractor{registry: registry}, nil
}

// ExtractFile extracts one file in single-file mode: first-party detection
// uses the file's own directory as the project root. All failures are
// returned as values; nothing panics on malformed input.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (ImportedLibraries, error) {
	project, err := NewProjectContext(filepath.Dir(path))
	if err != nil {
		project = emptyProjectContext()
	}
	return e.extract(ctx, path, NewClassifier(e.registry, project, nil))
}

// extract runs the visit → normalize → classify pipeline for one file with
// the supplied classifier (which carries the scan-wide project context and
// ignored-module set in directory mode).
func (e *Extractor) extract(ctx context.Context, path string, classifier *Classifier) (ImportedLibraries, error) {
	specs, err := e.rawSpecifiers(ctx, path)
	if err != nil {
		return ImportedLibraries{}, err
	}

	libs := NewImportedLibraries()
	for _, spec := range specs {
		canonical := lang.Normalize(spec)
		if canonical.Name == "" {
			continue
		}
		// A name is classified exactly once per file, keeping the three
		// sets disjoint no matter how many constructs imported it.
		if libs.Contains(canonical.Name) {
			continue
		}
		libs.add(classifier.Classify(canonical, spec.Language), canonical.Name)
	}
	return libs, nil
}

// CanonicalNames returns the canonical module names a file references,
// without classification. Used on files under ignored directories, which
// contribute raw names but no classified result.
func (e *Extractor) CanonicalNames(ctx context.Context, path string) ([]lang.Canonical, error) {
	specs, err := e.rawSpecifiers(ctx, path)
	if err != nil {
		return nil, err
	}
	names := make([]lang.Canonical, 0, len(specs))
	for _, spec := range specs {
		if canonical := lang.Normalize(spec); canonical.Name != "" {
			names = append(names, canonical)
		}
	}
	return names, nil
}

// rawSpecifiers reads and parses a file, then collects its raw import
// specifiers. Every failure mode maps to one of the typed errors.
func (e *Extractor) rawSpecifiers(ctx context.Context, path string) ([]lang.RawSpecifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	language, ok := lang.ForPath(path)
	if !ok {
		return nil, &UnsupportedLanguageError{Path: path, Ext: filepath.Ext(path)}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	tree, err := lang.Parse(language, source)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer tree.Close()

	specs, err := lang.Visit(tree.RootNode(), language, source)
	if err != nil {
		return nil, visitError(path, err)
	}
	return specs, nil
}
