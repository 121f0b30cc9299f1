// Package extract implements import extraction and classification: reading a
// source file, locating its import constructs through the per-language
// grammar adapters, normalizing the referenced names, and sorting each into
// stdlib, third-party or first-party. The Scanner applies this per file over
// a directory tree with per-file failure isolation.
package extract

import (
	"encoding/json"
	"sort"
)

// Category is the classification of one canonical module name.
type Category string

const (
	CategoryStdlib     Category = "stdlib"
	CategoryThirdParty Category = "third_party"
	CategoryFirstParty Category = "first_party"
)

// ModuleSet is a set of canonical module names. Membership is what matters;
// it marshals as a sorted JSON array for stable output.
type ModuleSet map[string]struct{}

// NewModuleSet builds a set from the given names.
func NewModuleSet(names ...string) ModuleSet {
	s := make(ModuleSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s ModuleSet) Add(name string) {
	s[name] = struct{}{}
}

func (s ModuleSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in sorted order.
func (s ModuleSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s ModuleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *ModuleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewModuleSet(names...)
	return nil
}

// ImportedLibraries holds one file's classified module names. The three sets
// are disjoint by construction: a name is classified exactly once per file,
// however many constructs imported it.
type ImportedLibraries struct {
	Stdlib     ModuleSet `json:"stdlib"`
	ThirdParty ModuleSet `json:"third_party"`
	FirstParty ModuleSet `json:"first_party"`
}

// NewImportedLibraries returns an empty result with all three sets allocated.
func NewImportedLibraries() ImportedLibraries {
	return ImportedLibraries{
		Stdlib:     NewModuleSet(),
		ThirdParty: NewModuleSet(),
		FirstParty: NewModuleSet(),
	}
}

// Contains reports whether the name is already classified in any set.
func (l ImportedLibraries) Contains(name string) bool {
	return l.Stdlib.Contains(name) || l.ThirdParty.Contains(name) || l.FirstParty.Contains(name)
}

// Total returns the number of distinct classified names.
func (l ImportedLibraries) Total() int {
	return len(l.Stdlib) + len(l.ThirdParty) + len(l.FirstParty)
}

func (l ImportedLibraries) add(cat Category, name string) {
	switch cat {
	case CategoryStdlib:
		l.Stdlib.Add(name)
	case CategoryFirstParty:
		l.FirstParty.Add(name)
	default:
		l.ThirdParty.Add(name)
	}
}

// merge unions other into l.
func (l ImportedLibraries) merge(other ImportedLibraries) {
	for n := range other.Stdlib {
		l.Stdlib.Add(n)
	}
	for n := range other.ThirdParty {
		l.ThirdParty.Add(n)
	}
	for n := range other.FirstParty {
		l.FirstParty.Add(n)
	}
}

// DirectoryResult is the aggregate of one directory scan. Immutable once
// returned; no path appears in both Extracted and Failed.
type DirectoryResult struct {
	// Extracted maps root-relative file paths to their classified imports.
	Extracted map[string]ImportedLibraries `json:"extracted"`

	// Failed maps root-relative file paths to the error that kept them out
	// of Extracted.
	Failed map[string]string `json:"failed"`

	// IgnoredExternalModules holds every module name whose sighting was
	// beneath an ignored (vendored/external) directory. A name is not
	// removed when also seen elsewhere: the set records "appeared in
	// ignored code", not "appeared only there".
	IgnoredExternalModules ModuleSet `json:"ignored_external_modules"`
}

// Summary unions the classified sets of every extracted file.
func (r *DirectoryResult) Summary() ImportedLibraries {
	total := NewImportedLibraries()
	for _, libs := range r.Extracted {
		total.merge(libs)
	}
	return total
}
