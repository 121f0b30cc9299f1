package lang

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// MalformedNodeError reports a node that matched an adapter rule but lacked
// the child the rule expects. It indicates an adapter/grammar mismatch and is
// surfaced as a file-level failure, never a crash.
type MalformedNodeError struct {
	Language Language
	NodeKind string
	Field    string
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed %s import node %q: missing %q", e.Language, e.NodeKind, e.Field)
}

// Visit walks the tree depth-first and returns every raw import specifier the
// language's adapter recognizes, in source order. It descends into children
// regardless of matches (imports can be nested in conditionals or function
// bodies in every supported language) and does not deduplicate; duplicates
// are resolved during set construction. Re-invokable on the same tree.
func Visit(root *sitter.Node, l Language, source []byte) ([]RawSpecifier, error) {
	rules, err := adapterFor(l)
	if err != nil {
		return nil, err
	}

	byKind := make(map[string][]importRule, len(rules))
	for _, r := range rules {
		byKind[r.NodeKind] = append(byKind[r.NodeKind], r)
	}

	var specs []RawSpecifier
	var walk func(n *sitter.Node) error
	walk = func(n *sitter.Node) error {
		if n == nil {
			return nil
		}
		for _, rule := range byKind[n.Kind()] {
			out, err := applyRule(n, rule, l, source)
			if err != nil {
				return err
			}
			specs = append(specs, out...)
		}
		for i := uint(0); i < uint(n.ChildCount()); i++ {
			if err := walk(n.Child(i)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return specs, nil
}

// applyRule extracts the specifiers a single matched node yields under one
// adapter rule.
func applyRule(n *sitter.Node, rule importRule, l Language, source []byte) ([]RawSpecifier, error) {
	switch rule.Strategy {
	case byChildKind:
		return extractByChildKind(n, rule, l, source)
	case byField:
		return extractByField(n, rule, l, source)
	case byCallArg:
		return extractByCallArg(n, rule, l, source), nil
	case byScopedPath:
		return extractByScopedPath(n, rule, l, source)
	default:
		return nil, fmt.Errorf("unknown extraction strategy %d for %s", rule.Strategy, l)
	}
}

func extractByChildKind(n *sitter.Node, rule importRule, l Language, source []byte) ([]RawSpecifier, error) {
	var specs []RawSpecifier
	for i := uint(0); i < uint(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		kind := child.Kind()
		if !contains(rule.PathKinds, kind) {
			continue
		}

		path := child
		if field, ok := rule.Unwrap[kind]; ok {
			path = unwrapChild(child, field)
			if path == nil {
				return nil, &MalformedNodeError{Language: l, NodeKind: n.Kind(), Field: field}
			}
		}

		specs = append(specs, RawSpecifier{
			Text:     nodeText(path, source),
			Kind:     constructKind(rule, kind),
			Language: l,
			Relative: rule.Relative || contains(rule.RelativePathKinds, kind),
		})
	}
	return specs, nil
}

func extractByField(n *sitter.Node, rule importRule, l Language, source []byte) ([]RawSpecifier, error) {
	path := n.ChildByFieldName(rule.Field)
	if path == nil {
		if rule.Optional {
			return nil, nil
		}
		return nil, &MalformedNodeError{Language: l, NodeKind: n.Kind(), Field: rule.Field}
	}

	kind := path.Kind()
	if len(rule.PathKinds) > 0 && !contains(rule.PathKinds, kind) {
		return nil, &MalformedNodeError{Language: l, NodeKind: n.Kind(), Field: rule.Field}
	}

	// Relative wrappers (Python's relative_import) carry an optional inner
	// dotted name: "from .a import b" names a, bare "from . import b" does
	// not and normalizes to the current-package sentinel.
	if contains(rule.RelativeWrapperKinds, kind) {
		text := "."
		if inner := firstDescendantOfKind(path, "dotted_name"); inner != nil {
			text = nodeText(inner, source)
		}
		return []RawSpecifier{{Text: text, Kind: KindRelative, Language: l, Relative: true}}, nil
	}

	if field, ok := rule.Unwrap[kind]; ok {
		path = unwrapChild(path, field)
		if path == nil {
			return nil, &MalformedNodeError{Language: l, NodeKind: n.Kind(), Field: field}
		}
	}

	return []RawSpecifier{{
		Text:     nodeText(path, source),
		Kind:     constructKind(rule, kind),
		Language: l,
		Relative: rule.Relative || contains(rule.RelativePathKinds, kind),
	}}, nil
}

// extractByCallArg handles library-call-style imports. A node whose callee is
// not one of the rule's names is simply not an import; a matching call with a
// non-literal argument (require(someVar)) is skipped, not an error, since no
// static name can be extracted.
func extractByCallArg(n *sitter.Node, rule importRule, l Language, source []byte) []RawSpecifier {
	callee := n.ChildByFieldName(rule.CalleeField)
	if callee == nil || !contains(rule.CalleeNames, nodeText(callee, source)) {
		return nil
	}
	args := n.ChildByFieldName(rule.ArgsField)
	if args == nil {
		return nil
	}
	var path *sitter.Node
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if contains(rule.PathKinds, child.Kind()) {
			path = child
			break
		}
		// R wraps values in argument nodes; look one level down.
		if inner := firstNamedChildOfKinds(child, rule.PathKinds); inner != nil {
			path = inner
			break
		}
	}
	if path == nil {
		return nil
	}
	return []RawSpecifier{{
		Text:     nodeText(path, source),
		Kind:     rule.Kind,
		Language: l,
		Relative: rule.Relative,
	}}
}

// extractByScopedPath resolves Rust use trees to their leftmost path
// segments. A single use declaration can name several roots
// (use {a::b, c};), so this may yield multiple specifiers.
func extractByScopedPath(n *sitter.Node, rule importRule, l Language, source []byte) ([]RawSpecifier, error) {
	arg := n.ChildByFieldName(rule.Field)
	if arg == nil {
		return nil, &MalformedNodeError{Language: l, NodeKind: n.Kind(), Field: rule.Field}
	}
	var specs []RawSpecifier
	err := leftmostPathRoots(arg, l, source, func(root *sitter.Node) {
		kind := root.Kind()
		specs = append(specs, RawSpecifier{
			Text:     nodeText(root, source),
			Kind:     rule.Kind,
			Language: l,
			Relative: kind == "crate" || kind == "self" || kind == "super",
		})
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

// leftmostPathRoots walks a use tree down its path fields and calls yield for
// every leftmost segment it reaches.
func leftmostPathRoots(n *sitter.Node, l Language, source []byte, yield func(*sitter.Node)) error {
	cur := n
	for depth := 0; cur != nil && depth < 64; depth++ {
		switch cur.Kind() {
		case "identifier", "crate", "self", "super", "metavariable":
			yield(cur)
			return nil
		case "scoped_identifier", "scoped_use_list", "scoped_type_identifier", "use_as_clause":
			next := cur.ChildByFieldName("path")
			if next == nil {
				return &MalformedNodeError{Language: l, NodeKind: cur.Kind(), Field: "path"}
			}
			cur = next
		case "use_wildcard":
			if cur.NamedChildCount() == 0 {
				return nil // bare `use *` names nothing
			}
			cur = cur.NamedChild(0)
		case "use_list":
			for i := uint(0); i < uint(cur.NamedChildCount()); i++ {
				if err := leftmostPathRoots(cur.NamedChild(i), l, source, yield); err != nil {
					return err
				}
			}
			return nil
		default:
			return nil // string literals in use macros etc.; nothing to name
		}
	}
	return nil
}

// constructKind applies per-child-kind overrides (an aliased_import inside a
// plain import statement reports as aliased).
func constructKind(rule importRule, childKind string) ConstructKind {
	if childKind == "aliased_import" {
		return KindAliased
	}
	return rule.Kind
}

// unwrapChild resolves an Unwrap entry: a named field, or the first named
// child when the field is empty.
func unwrapChild(n *sitter.Node, field string) *sitter.Node {
	if field != "" {
		return n.ChildByFieldName(field)
	}
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

// nodeText extracts the text content of a node.
func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

func firstNamedChildOfKinds(n *sitter.Node, kinds []string) *sitter.Node {
	for i := uint(0); i < uint(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if contains(kinds, child.Kind()) {
			return child
		}
	}
	return nil
}

func firstDescendantOfKind(n *sitter.Node, kind string) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == kind {
		return n
	}
	for i := uint(0); i < uint(n.NamedChildCount()); i++ {
		if found := firstDescendantOfKind(n.NamedChild(i), kind); found != nil {
			return found
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
