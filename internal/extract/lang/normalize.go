package lang

import "strings"

// RelativeSentinel is the canonical name of a reference to the current
// package ("from . import x", "use self::a"). It is first-party by
// definition and never looked up in a registry.
const RelativeSentinel = "."

// Canonical identifies the top-level module a specifier refers to. Relative
// names are always first-party and skip stdlib/third-party lookup entirely.
// Builtin marks a name the specifier itself declares as standard-library
// (the node: prefix), independent of any registry.
type Canonical struct {
	Name     string
	Relative bool
	Builtin  bool
}

// Normalize reduces a raw specifier to its canonical root module name.
// Dotted and path-segmented specifiers reduce to their first segment, except
// where the ecosystem treats a longer prefix as one unit (npm scoped
// packages, Go import paths, C header names). Case and punctuation are
// preserved; module names are case-sensitive in every supported ecosystem.
func Normalize(spec RawSpecifier) Canonical {
	text := stripDelimiters(strings.TrimSpace(spec.Text))
	if text == "" {
		return Canonical{Name: RelativeSentinel, Relative: true}
	}

	switch spec.Language {
	case Python:
		if trimmed := strings.TrimLeft(text, "."); trimmed == "" {
			return Canonical{Name: RelativeSentinel, Relative: true}
		} else if spec.Relative {
			return Canonical{Name: firstSegment(trimmed, "."), Relative: true}
		}
		return Canonical{Name: firstSegment(text, "."), Relative: false}

	case Java:
		return Canonical{Name: firstSegment(text, "."), Relative: spec.Relative}

	case Rust:
		if spec.Relative {
			return Canonical{Name: RelativeSentinel, Relative: true}
		}
		return Canonical{Name: firstSegment(text, "::"), Relative: false}

	case PHP:
		if spec.Relative {
			return relativePath(text)
		}
		text = strings.TrimPrefix(text, "\\")
		return Canonical{Name: firstSegment(text, "\\")}

	case JavaScript, TypeScript, TSX:
		return normalizeJSPath(text, spec.Relative)

	case Ruby:
		if spec.Relative {
			return relativePath(text)
		}
		return Canonical{Name: firstSegment(text, "/")}

	case Go:
		// A Go import path is the unit of identity; keep it whole.
		return Canonical{Name: text, Relative: spec.Relative}

	case C:
		// Header names keep their literal spelling ("stdio.h").
		return Canonical{Name: text, Relative: spec.Relative}

	case R:
		return Canonical{Name: text, Relative: spec.Relative}

	default:
		return Canonical{Name: text, Relative: spec.Relative}
	}
}

// normalizeJSPath applies npm conventions: relative and absolute paths are
// local to the project, node:-prefixed names are builtins whether or not the
// registry lists them, and scoped packages keep their first two segments.
func normalizeJSPath(text string, relative bool) Canonical {
	if relative || strings.HasPrefix(text, ".") || strings.HasPrefix(text, "/") {
		return relativePath(text)
	}
	if rest, ok := strings.CutPrefix(text, "node:"); ok {
		return Canonical{Name: firstSegment(rest, "/"), Builtin: true}
	}
	if strings.HasPrefix(text, "@") {
		parts := strings.SplitN(text, "/", 3)
		if len(parts) >= 2 {
			return Canonical{Name: parts[0] + "/" + parts[1]}
		}
		return Canonical{Name: text}
	}
	return Canonical{Name: firstSegment(text, "/")}
}

// relativePath resolves a relative file reference to the local name it
// points at, or the current-package sentinel when it only climbs.
func relativePath(text string) Canonical {
	text = strings.TrimPrefix(text, "/")
	for {
		switch {
		case strings.HasPrefix(text, "./"):
			text = text[2:]
		case strings.HasPrefix(text, "../"):
			text = text[3:]
		default:
			if text == "." || text == ".." {
				text = ""
			}
			name := firstSegment(text, "/")
			if name == "" {
				name = RelativeSentinel
			} else if dot := strings.LastIndex(name, "."); dot > 0 {
				name = name[:dot] // drop a file extension, keep dotfiles
			}
			return Canonical{Name: name, Relative: true}
		}
	}
}

// stripDelimiters removes the quoting a grammar leaves on string-literal
// paths: single/double quotes, Go raw-string backticks, and the angle
// brackets of C system includes.
func stripDelimiters(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	switch {
	case first == '"' && last == '"',
		first == '\'' && last == '\'',
		first == '`' && last == '`',
		first == '<' && last == '>':
		return s[1 : len(s)-1]
	}
	return s
}

func firstSegment(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}
