package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract"
)

// writeJSON renders any result value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeLibraries renders one classified result as text, one category per
// block. Empty categories are skipped.
func writeLibraries(w io.Writer, libs extract.ImportedLibraries) {
	if libs.Total() == 0 {
		fmt.Fprintln(w, "No imports found.")
		return
	}
	writeCategory(w, "Standard library", libs.Stdlib)
	writeCategory(w, "Third-party", libs.ThirdParty)
	writeCategory(w, "First-party", libs.FirstParty)
}

func writeCategory(w io.Writer, title string, names extract.ModuleSet) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, name := range names.Sorted() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// writeDirectoryResult renders a full scan: per-file results in path order,
// then failures, then the modules sighted under ignored directories.
func writeDirectoryResult(w io.Writer, result *extract.DirectoryResult) {
	paths := make([]string, 0, len(result.Extracted))
	for path := range result.Extracted {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		libs := result.Extracted[path]
		if libs.Total() == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", path)
		writeCategory(w, "  Standard library", libs.Stdlib)
		writeCategory(w, "  Third-party", libs.ThirdParty)
		writeCategory(w, "  First-party", libs.FirstParty)
		fmt.Fprintln(w)
	}

	if len(result.Failed) > 0 {
		failed := make([]string, 0, len(result.Failed))
		for path := range result.Failed {
			failed = append(failed, path)
		}
		sort.Strings(failed)

		fmt.Fprintln(w, "Failed:")
		for _, path := range failed {
			fmt.Fprintf(w, "  %s: %s\n", path, result.Failed[path])
		}
		fmt.Fprintln(w)
	}

	if len(result.IgnoredExternalModules) > 0 {
		fmt.Fprintln(w, "Modules seen under ignored directories:")
		for _, name := range result.IgnoredExternalModules.Sorted() {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
