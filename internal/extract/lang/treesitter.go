package lang

import (
	"fmt"
	"sync"

	r "github.com/r-lib/tree-sitter-r/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	grammarOnce sync.Once
	grammars    map[Language]*sitter.Language
)

// loadGrammars builds the language → grammar table once per process. The
// table is read-only afterwards and shared across all workers.
func loadGrammars() {
	grammars = map[Language]*sitter.Language{
		Python:     sitter.NewLanguage(python.Language()),
		R:          sitter.NewLanguage(r.Language()),
		Go:         sitter.NewLanguage(golang.Language()),
		Rust:       sitter.NewLanguage(rust.Language()),
		JavaScript: sitter.NewLanguage(javascript.Language()),
		TypeScript: sitter.NewLanguage(typescript.LanguageTypescript()),
		TSX:        sitter.NewLanguage(typescript.LanguageTSX()),
		C:          sitter.NewLanguage(c.Language()),
		Java:       sitter.NewLanguage(java.Language()),
		PHP:        sitter.NewLanguage(php.LanguagePHP()),
		Ruby:       sitter.NewLanguage(ruby.Language()),
	}
}

// Grammar returns the tree-sitter grammar for a language.
func Grammar(l Language) (*sitter.Language, error) {
	grammarOnce.Do(loadGrammars)
	g, ok := grammars[l]
	if !ok {
		return nil, fmt.Errorf("no grammar registered for language %q", l)
	}
	return g, nil
}

// Parse parses source with the grammar for the given language and returns
// the syntax tree. The caller owns the tree and must Close it.
func Parse(l Language, source []byte) (*sitter.Tree, error) {
	grammar, err := Grammar(l)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("set %s grammar: %w", l, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%s parser rejected source", l)
	}
	return tree, nil
}
