// Package lang holds the per-language knowledge of the extractor: the closed
// set of supported languages, the grammar adapter table describing which
// syntax-tree shapes introduce imports, the visitor that walks a parse tree
// and yields raw import specifiers, and the normalizer that reduces raw
// specifiers to canonical root module names.
package lang

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Language identifies one supported language. The set is closed: adding a
// language means adding a constant here, a grammar entry in treesitter.go,
// an adapter entry in grammar.go, and (usually) a stdlib registry file.
type Language string

const (
	Python     Language = "python"
	R          Language = "r"
	Go         Language = "go"
	Rust       Language = "rust"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	C          Language = "c"
	Java       Language = "java"
	PHP        Language = "php"
	Ruby       Language = "ruby"
)

// extensions maps a file extension to the language its files are parsed as.
var extensions = map[string]Language{
	".py":   Python,
	".r":    R,
	".R":    R,
	".go":   Go,
	".rs":   Rust,
	".js":   JavaScript,
	".jsx":  JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".ts":   TypeScript,
	".tsx":  TSX,
	".c":    C,
	".h":    C,
	".java": Java,
	".php":  PHP,
	".rb":   Ruby,
}

// ForPath returns the language for a file path based on its extension.
func ForPath(path string) (Language, bool) {
	l, ok := extensions[filepath.Ext(path)]
	return l, ok
}

// ForName returns the language with the given name, accepting "tsx" as an
// alias for the TSX grammar.
func ForName(name string) (Language, error) {
	for _, l := range All() {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q (supported: %v)", name, All())
}

// All returns every supported language in stable order.
func All() []Language {
	return []Language{Python, R, Go, Rust, JavaScript, TypeScript, TSX, C, Java, PHP, Ruby}
}

// Extensions returns the supported file extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// RegistryKey returns the stdlib registry a language's names are checked
// against. TypeScript and TSX share the JavaScript (Node builtin) registry.
func (l Language) RegistryKey() string {
	switch l {
	case TypeScript, TSX:
		return string(JavaScript)
	default:
		return string(l)
	}
}
