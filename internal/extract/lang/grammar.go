package lang

import "fmt"

// ConstructKind tags the import construct a raw specifier was captured from.
type ConstructKind string

const (
	// KindPlain is a direct import of a module path ("import a.b", `import "fmt"`).
	KindPlain ConstructKind = "plain"
	// KindFrom is a from-style import ("from a.b import c", "use a::b::c").
	KindFrom ConstructKind = "from"
	// KindAliased is an import bound to a different local name ("import numpy as np").
	KindAliased ConstructKind = "aliased"
	// KindRelative references the current or an enclosing package ("from . import x").
	KindRelative ConstructKind = "relative"
	// KindDynamic is a call-style import (require("x"), library(pkg), import("x")).
	KindDynamic ConstructKind = "dynamic"
)

// RawSpecifier is the literal text captured from one import construct,
// before any normalization. Transient: produced and consumed within a single
// file's extraction.
type RawSpecifier struct {
	Text     string
	Kind     ConstructKind
	Language Language
	Relative bool
}

// extractStrategy selects how the specifier text is pulled out of a matched
// node. The strategies are interpreted by the visitor; the table itself
// carries no behavior.
type extractStrategy uint8

const (
	// byChildKind collects every named child whose kind is in PathKinds.
	byChildKind extractStrategy = iota
	// byField takes the single child at Field.
	byField
	// byCallArg matches call nodes whose callee (CalleeField) text is one of
	// CalleeNames, then takes the first descendant of ArgsField whose kind is
	// in PathKinds.
	byCallArg
	// byScopedPath descends through nested path nodes (Rust use trees) to the
	// leftmost identifier.
	byScopedPath
)

// importRule describes one syntax-node shape that introduces an import and
// where the referenced path or name lives inside it.
type importRule struct {
	NodeKind string
	Kind     ConstructKind
	Strategy extractStrategy

	// Field names the child holding the path (byField) or, for byCallArg,
	// ArgsField/CalleeField name the argument list and callee children.
	Field       string
	CalleeField string
	ArgsField   string
	CalleeNames []string

	// PathKinds restricts which node kinds are accepted as the path text.
	PathKinds []string

	// Unwrap maps an accepted child kind to the field that holds the real
	// path node inside it ("" means first named child).
	Unwrap map[string]string

	// Optional marks Field as allowed to be absent (e.g. export statements
	// without a source). Absence of a non-optional field is a malformed node.
	Optional bool

	// Relative marks every specifier from this rule as package-relative.
	// RelativePathKinds marks only specific path node kinds as relative
	// (e.g. a quoted C include is local, an angle-bracket one is not).
	Relative          bool
	RelativePathKinds []string

	// RelativeWrapperKinds lists path kinds that wrap a relative reference
	// (Python's relative_import): the inner dotted name, when present,
	// becomes the specifier text; otherwise the bare "." sentinel is used.
	RelativeWrapperKinds []string
}

// adapters is the grammar adapter table: for every supported language, every
// syntax-node shape that can introduce an import and the rule for extracting
// the referenced name. Pure data; lookup only.
var adapters = map[Language][]importRule{
	Python: {
		{
			// import a.b, c
			NodeKind:  "import_statement",
			Kind:      KindPlain,
			Strategy:  byChildKind,
			PathKinds: []string{"dotted_name", "aliased_import"},
			Unwrap:    map[string]string{"aliased_import": "name"},
		},
		{
			// from a.b import c / from . import c / from .a import c
			NodeKind:             "import_from_statement",
			Kind:                 KindFrom,
			Strategy:             byField,
			Field:                "module_name",
			PathKinds:            []string{"dotted_name", "relative_import"},
			RelativeWrapperKinds: []string{"relative_import"},
		},
	},

	R: {
		{
			// library(pkg), require(pkg), requireNamespace("pkg")
			NodeKind:    "call",
			Kind:        KindDynamic,
			Strategy:    byCallArg,
			CalleeField: "function",
			ArgsField:   "arguments",
			CalleeNames: []string{"library", "require", "requireNamespace", "loadNamespace"},
			PathKinds:   []string{"identifier", "string"},
		},
		{
			// pkg::sym and pkg:::sym
			NodeKind:  "namespace_operator",
			Kind:      KindPlain,
			Strategy:  byField,
			Field:     "lhs",
			PathKinds: []string{"identifier", "string"},
		},
	},

	Go: {
		{
			// import "path" (grouped, aliased, dot and blank forms all share
			// the import_spec path child)
			NodeKind:  "import_spec",
			Kind:      KindPlain,
			Strategy:  byField,
			Field:     "path",
			PathKinds: []string{"interpreted_string_literal", "raw_string_literal"},
		},
	},

	Rust: {
		{
			// use a::b::c; use a::{b, c}; use a as x; use a::*;
			NodeKind: "use_declaration",
			Kind:     KindFrom,
			Strategy: byScopedPath,
			Field:    "argument",
		},
		{
			// extern crate a;
			NodeKind:  "extern_crate_declaration",
			Kind:      KindPlain,
			Strategy:  byField,
			Field:     "name",
			PathKinds: []string{"identifier"},
		},
	},

	JavaScript: javascriptRules,
	TypeScript: javascriptRules,
	TSX:        javascriptRules,

	C: {
		{
			// #include <stdio.h> / #include "local.h"
			NodeKind:          "preproc_include",
			Kind:              KindPlain,
			Strategy:          byField,
			Field:             "path",
			PathKinds:         []string{"system_lib_string", "string_literal"},
			RelativePathKinds: []string{"string_literal"},
		},
	},

	Java: {
		{
			// import a.b.C; import static a.b.C.d; import a.b.*;
			NodeKind:  "import_declaration",
			Kind:      KindPlain,
			Strategy:  byChildKind,
			PathKinds: []string{"scoped_identifier", "identifier"},
		},
	},

	PHP: {
		{
			// use A\B\C; and use A\{B, C};
			NodeKind:  "namespace_use_declaration",
			Kind:      KindPlain,
			Strategy:  byChildKind,
			PathKinds: []string{"namespace_use_clause", "namespace_name"},
			Unwrap:    map[string]string{"namespace_use_clause": ""},
		},
		{
			// require 'file.php' and friends always reference project files
			NodeKind:  "require_expression",
			Kind:      KindDynamic,
			Strategy:  byChildKind,
			PathKinds: []string{"string", "encapsed_string"},
			Relative:  true,
		},
		{
			NodeKind:  "require_once_expression",
			Kind:      KindDynamic,
			Strategy:  byChildKind,
			PathKinds: []string{"string", "encapsed_string"},
			Relative:  true,
		},
		{
			NodeKind:  "include_expression",
			Kind:      KindDynamic,
			Strategy:  byChildKind,
			PathKinds: []string{"string", "encapsed_string"},
			Relative:  true,
		},
		{
			NodeKind:  "include_once_expression",
			Kind:      KindDynamic,
			Strategy:  byChildKind,
			PathKinds: []string{"string", "encapsed_string"},
			Relative:  true,
		},
	},

	Ruby: {
		{
			// require "m" / gem "m"
			NodeKind:    "call",
			Kind:        KindDynamic,
			Strategy:    byCallArg,
			CalleeField: "method",
			ArgsField:   "arguments",
			CalleeNames: []string{"require", "gem"},
			PathKinds:   []string{"string"},
		},
		{
			// require_relative "sibling"
			NodeKind:    "call",
			Kind:        KindRelative,
			Strategy:    byCallArg,
			CalleeField: "method",
			ArgsField:   "arguments",
			CalleeNames: []string{"require_relative"},
			PathKinds:   []string{"string"},
			Relative:    true,
		},
	},
}

// javascriptRules is shared by the JavaScript, TypeScript and TSX grammars;
// the three grammars use identical node shapes for imports.
var javascriptRules = []importRule{
	{
		// import ... from "m"; import "m";
		NodeKind:  "import_statement",
		Kind:      KindFrom,
		Strategy:  byField,
		Field:     "source",
		PathKinds: []string{"string"},
	},
	{
		// export ... from "m" (re-export); source is absent on plain exports
		NodeKind:  "export_statement",
		Kind:      KindFrom,
		Strategy:  byField,
		Field:     "source",
		PathKinds: []string{"string"},
		Optional:  true,
	},
	{
		// require("m") and dynamic import("m")
		NodeKind:    "call_expression",
		Kind:        KindDynamic,
		Strategy:    byCallArg,
		CalleeField: "function",
		ArgsField:   "arguments",
		CalleeNames: []string{"require", "import"},
		PathKinds:   []string{"string"},
	},
}

// adapterFor returns the import rules for a language, or an error when the
// language has no adapter entry.
func adapterFor(l Language) ([]importRule, error) {
	rules, ok := adapters[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %q", l)
	}
	return rules, nil
}
