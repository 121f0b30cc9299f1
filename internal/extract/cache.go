package extract

import (
	"fmt"
	"hash/fnv"
	"os"

	"github.com/maypok86/otter"
)

const cacheCapacity = 16_384

// resultCache memoizes per-file extraction results so repeated scans skip
// re-parsing unchanged files. Keys mix the file's identity (absolute path,
// size, mtime) with a scan fingerprint covering the project context and the
// ignored-module set, since both feed classification.
type resultCache struct {
	cache otter.Cache[string, ImportedLibraries]
}

func newResultCache() (*resultCache, error) {
	cache, err := otter.MustBuilder[string, ImportedLibraries](cacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("build result cache: %w", err)
	}
	return &resultCache{cache: cache}, nil
}

// scanFingerprint folds the classification inputs that are constant for one
// scan into a single value for cache keying.
func scanFingerprint(project *ProjectContext, ignored ModuleSet) string {
	h := fnv.New64a()
	h.Write([]byte(project.Fingerprint()))
	for _, name := range ignored.Sorted() {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum64())
}

func (c *resultCache) key(fingerprint, path string, info os.FileInfo) string {
	return fmt.Sprintf("%s|%s|%d|%d", fingerprint, path, info.Size(), info.ModTime().UnixNano())
}

func (c *resultCache) get(key string) (ImportedLibraries, bool) {
	return c.cache.Get(key)
}

func (c *resultCache) put(key string, libs ImportedLibraries) {
	c.cache.Set(key, libs)
}
