package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// DefaultIgnoreDirs returns the default ignore-directory policy: names that
// conventionally hold vendored or external code. Overridable per scan; an
// empty policy disables ignoring entirely.
func DefaultIgnoreDirs() []string {
	return []string{"vendor", "node_modules", "third_party", "external", "deps", ".git"}
}

// ScanOptions configures a directory scan.
type ScanOptions struct {
	// Recursive descends into subdirectories; when false only the direct
	// children of the root are visited.
	Recursive bool

	// Languages restricts which languages are attempted. Empty means all
	// supported. Files outside scope are skipped silently, not failed.
	Languages []lang.Language

	// IgnoreDirs holds directory-name patterns (gobwas/glob syntax; plain
	// names match exactly) compared against each path segment. Files under
	// a matching directory contribute raw module names to
	// IgnoredExternalModules but are never classified as project code.
	IgnoreDirs []string

	// Workers bounds the worker pool; <= 0 means GOMAXPROCS.
	Workers int

	// Cache enables the per-file result cache across scans.
	Cache bool

	// Progress receives per-file callbacks; nil means silent.
	Progress ProgressReporter
}

// Scanner walks a directory tree and aggregates per-file extraction results.
// Files are independent units of work and are processed by a bounded worker
// pool; one bad file never aborts the scan.
type Scanner struct {
	extractor *Extractor
	opts      ScanOptions
	ignore    []glob.Glob
	scope     map[lang.Language]struct{}
	cache     *resultCache
}

// NewScanner compiles the scan options. The ignore patterns are validated
// here so a bad pattern fails fast rather than mid-scan.
func NewScanner(extractor *Extractor, opts ScanOptions) (*Scanner, error) {
	if opts.Progress == nil {
		opts.Progress = NoOpProgressReporter{}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	s := &Scanner{extractor: extractor, opts: opts}

	for _, pattern := range opts.IgnoreDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		s.ignore = append(s.ignore, g)
	}

	if len(opts.Languages) > 0 {
		s.scope = make(map[lang.Language]struct{}, len(opts.Languages))
		for _, l := range opts.Languages {
			s.scope[l] = struct{}{}
			// .tsx files belong to the TypeScript scope even though they
			// parse with the TSX grammar.
			if l == lang.TypeScript {
				s.scope[lang.TSX] = struct{}{}
			}
		}
	}

	if opts.Cache {
		cache, err := newResultCache()
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	return s, nil
}

// Scan extracts every in-scope file under root. Files beneath ignored
// directories are processed first so their module names are known before any
// project file is classified; project files then run through the bounded
// pool. Cancelling the context stops dispatch; in-flight files complete and
// the partial result is returned alongside the context error.
func (s *Scanner) Scan(ctx context.Context, root string) (*DirectoryResult, error) {
	start := time.Now()

	project, err := NewProjectContext(root)
	if err != nil {
		return nil, fmt.Errorf("inspect project root: %w", err)
	}

	result := &DirectoryResult{
		Extracted:              make(map[string]ImportedLibraries),
		Failed:                 make(map[string]string),
		IgnoredExternalModules: NewModuleSet(),
	}

	regular, ignored, err := s.enumerate(root, result)
	if err != nil {
		return nil, err
	}

	s.collectIgnored(ctx, ignored, result)

	classifier := NewClassifier(s.extractor.registry, project, result.IgnoredExternalModules)
	fingerprint := ""
	if s.cache != nil {
		fingerprint = scanFingerprint(project, result.IgnoredExternalModules)
	}

	s.opts.Progress.OnScanStart(len(regular))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, file := range regular {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rel := s.relPath(root, file)
			libs, err := s.extractCached(gctx, fingerprint, file, classifier)

			mu.Lock()
			if err != nil {
				result.Failed[rel] = err.Error()
			} else {
				result.Extracted[rel] = libs
			}
			mu.Unlock()

			s.opts.Progress.OnFileProcessed(rel)
			return nil
		})
	}

	err = g.Wait()

	s.opts.Progress.OnScanComplete(ScanStats{
		FilesProcessed: len(result.Extracted),
		FilesFailed:    len(result.Failed),
		Duration:       time.Since(start),
	})

	if err != nil {
		return result, err
	}
	return result, nil
}

// enumerate lists the in-scope files under root, split into project files
// and files beneath ignored directories. Unreadable subdirectories land in
// the failed map rather than aborting the walk.
func (s *Scanner) enumerate(root string, result *DirectoryResult) (regular, ignored []string, err error) {
	if !s.opts.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !s.inScope(entry.Name()) {
				continue
			}
			regular = append(regular, filepath.Join(root, entry.Name()))
		}
		return regular, nil, nil
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Failed[s.relPath(root, path)] = err.Error()
			return nil
		}
		if d.IsDir() || !s.inScope(d.Name()) {
			return nil
		}
		if s.underIgnoredDir(root, path) {
			ignored = append(ignored, path)
		} else {
			regular = append(regular, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return regular, ignored, nil
}

// collectIgnored scans vendored files for raw module names only. Their
// failures are not reported: ignored code is not part of the project.
func (s *Scanner) collectIgnored(ctx context.Context, files []string, result *DirectoryResult) {
	if len(files) == 0 {
		return
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, file := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			names, err := s.extractor.CanonicalNames(gctx, file)
			if err != nil {
				return nil
			}
			mu.Lock()
			for _, name := range names {
				// Relative references inside vendored code are local to the
				// vendored package, not external module names.
				if !name.Relative {
					result.IgnoredExternalModules.Add(name.Name)
				}
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors here
}

func (s *Scanner) extractCached(ctx context.Context, fingerprint, path string, classifier *Classifier) (ImportedLibraries, error) {
	if s.cache == nil {
		return s.extractor.extract(ctx, path, classifier)
	}

	info, err := os.Stat(path)
	if err != nil {
		return ImportedLibraries{}, fmt.Errorf("read %s: %w", path, err)
	}
	key := s.cache.key(fingerprint, path, info)
	if libs, ok := s.cache.get(key); ok {
		return libs, nil
	}

	libs, err := s.extractor.extract(ctx, path, classifier)
	if err != nil {
		return ImportedLibraries{}, err
	}
	s.cache.put(key, libs)
	return libs, nil
}

// inScope reports whether a file name's extension maps to a language the
// scan should attempt. Out-of-scope files are skipped silently.
func (s *Scanner) inScope(name string) bool {
	language, ok := lang.ForPath(name)
	if !ok {
		return false
	}
	if s.scope == nil {
		return true
	}
	_, ok = s.scope[language]
	return ok
}

// underIgnoredDir reports whether any directory segment between root and the
// file matches the ignore policy.
func (s *Scanner) underIgnoredDir(root, path string) bool {
	if len(s.ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, g := range s.ignore {
			if g.Match(segment) {
				return true
			}
		}
	}
	return false
}

func (s *Scanner) relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
