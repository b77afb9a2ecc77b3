// # internal/parser/scope_builder.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// BuildScopes walks a parsed file and produces its scope tree: a global
// scope (unresolved bucket), a module scope holding every top-level
// declaration, and nested function/block scopes beneath.
//
// Declarations are registered during the walk; references are only resolved
// after the whole file has been visited, so a `const console = ...` late in
// the file still binds uses that appear before it. This mirrors hoisting
// closely enough for shadow detection, which is whole-file anyway.
func BuildScopes(root *sitter.Node, source []byte, path string) *Scope {
	global := NewScope(nil)
	if root == nil {
		return global
	}

	b := &scopeBuilder{
		source:   source,
		path:     path,
		global:   global,
		declared: make(map[uint]struct{}),
	}

	module := NewScope(global)
	b.walkChildren(root, module, module)
	b.resolvePending()

	return global
}

type scopeBuilder struct {
	source []byte
	path   string
	global *Scope

	// declared records the start offsets of identifiers that are
	// declaration names, so the reference pass can skip them.
	declared map[uint]struct{}

	pending []pendingRef
}

type pendingRef struct {
	scope *Scope
	node  *sitter.Node
}

func (b *scopeBuilder) text(node *sitter.Node) string {
	return string(b.source[node.StartByte():node.EndByte()])
}

// walk dispatches on node kind: declarations register bindings, scope
// carriers open a child scope, identifiers queue as pending references.
// hoist is the nearest function-or-module scope, the target of `var`.
func (b *scopeBuilder) walk(node *sitter.Node, current, hoist *Scope) {
	switch node.Kind() {
	case "variable_declaration": // var
		b.declareVariables(node, hoist)

	case "lexical_declaration": // let, const
		b.declareVariables(node, current)

	case "function_declaration", "generator_function_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			b.declareName(name, current)
		}
		inner := NewScope(current)
		b.declareParams(node, inner)
		b.walkChildren(node, inner, inner)
		return

	case "function_expression", "arrow_function", "method_definition":
		inner := NewScope(current)
		if name := node.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			// A named function expression binds its own name inside itself.
			b.declareName(name, inner)
		}
		b.declareParams(node, inner)
		b.walkChildren(node, inner, inner)
		return

	case "class_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			b.declareName(name, current)
		}

	case "import_statement":
		b.declareImports(node, current)
		return // nothing inside an import is a value reference

	case "catch_clause":
		inner := NewScope(current)
		if param := node.ChildByFieldName("parameter"); param != nil {
			b.declarePattern(param, inner)
		}
		b.walkChildren(node, inner, hoist)
		return

	case "for_in_statement":
		inner := NewScope(current)
		if left := node.ChildByFieldName("left"); left != nil {
			b.declarePattern(left, inner)
		}
		b.walkChildren(node, inner, hoist)
		return

	case "statement_block", "for_statement":
		inner := NewScope(current)
		b.walkChildren(node, inner, hoist)
		return

	case "identifier":
		if _, isDecl := b.declared[node.StartByte()]; !isDecl {
			b.pending = append(b.pending, pendingRef{scope: current, node: node})
		}
		return
	}

	b.walkChildren(node, current, hoist)
}

func (b *scopeBuilder) walkChildren(node *sitter.Node, current, hoist *Scope) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil {
			b.walk(child, current, hoist)
		}
	}
}

func (b *scopeBuilder) declareName(node *sitter.Node, scope *Scope) {
	scope.Declare(b.text(node))
	b.declared[node.StartByte()] = struct{}{}
}

// declareVariables registers every declarator name of a var/let/const
// statement into scope. Initializer expressions are left to the normal
// walk; their identifiers resolve as references.
func (b *scopeBuilder) declareVariables(node *sitter.Node, scope *Scope) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		decl := node.NamedChild(i)
		if decl == nil || decl.Kind() != "variable_declarator" {
			continue
		}
		if name := decl.ChildByFieldName("name"); name != nil {
			b.declarePattern(name, scope)
		}
	}
}

// declarePattern registers every name bound by a (possibly destructuring)
// pattern. Default-value expressions are not part of the pattern and keep
// their identifiers as references.
func (b *scopeBuilder) declarePattern(node *sitter.Node, scope *Scope) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		b.declareName(node, scope)
	case "assignment_pattern", "object_assignment_pattern":
		b.declarePattern(node.ChildByFieldName("left"), scope)
	case "pair_pattern":
		b.declarePattern(node.ChildByFieldName("value"), scope)
	case "required_parameter", "optional_parameter": // typescript
		b.declarePattern(node.ChildByFieldName("pattern"), scope)
	case "object_pattern", "array_pattern", "rest_pattern":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			b.declarePattern(node.NamedChild(i), scope)
		}
	}
}

func (b *scopeBuilder) declareParams(node *sitter.Node, scope *Scope) {
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.NamedChildCount(); i++ {
			b.declarePattern(params.NamedChild(i), scope)
		}
	}
	// Arrow functions with a bare parameter: x => ...
	if param := node.ChildByFieldName("parameter"); param != nil {
		b.declarePattern(param, scope)
	}
}

func (b *scopeBuilder) declareImports(node *sitter.Node, scope *Scope) {
	clause := namedChildOfKind(node, "import_clause")
	if clause == nil {
		return
	}
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier": // default import
			b.declareName(child, scope)
		case "namespace_import":
			if ident := namedChildOfKind(child, "identifier"); ident != nil {
				b.declareName(ident, scope)
			}
		case "named_imports":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				spec := child.NamedChild(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				// The local binding is the alias when present, the
				// imported name otherwise.
				name := spec.ChildByFieldName("alias")
				if name == nil {
					name = spec.ChildByFieldName("name")
				}
				if name != nil {
					b.declareName(name, scope)
				}
			}
		}
	}
}

// resolvePending binds every collected identifier use to its nearest
// enclosing binding, or files it in the global unresolved bucket.
func (b *scopeBuilder) resolvePending() {
	for _, ref := range b.pending {
		name := b.text(ref.node)
		r := Reference{
			Name:     name,
			Node:     ref.node,
			Location: locationOf(ref.node, b.path),
		}
		if binding := ref.scope.Resolve(name); binding != nil {
			binding.Refs = append(binding.Refs, r)
		} else {
			b.global.Unresolved[name] = append(b.global.Unresolved[name], r)
		}
	}
}

func namedChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
