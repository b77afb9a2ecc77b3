// # internal/parser/scope.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Scope is one node in the lexical scope tree of a file. The tree is built
// once by the scope builder and is read-only afterwards. The parent chain is
// acyclic and ends at the global scope, which is the only scope carrying the
// unresolved-reference bucket.
type Scope struct {
	Bindings map[string]*Binding
	Parent   *Scope
	Children []*Scope

	// Unresolved holds use sites of names with no binding anywhere in the
	// tree, keyed by name. Populated on the global scope only. This is how
	// ambient globals like `console` surface: they are never declared, so
	// every use of them lands here.
	Unresolved map[string][]Reference
}

// Binding is one declared name within a scope. Defs counts declaring
// definition sites; a binding with Defs > 0 shadows any ambient global of
// the same name for the whole file.
type Binding struct {
	Name string
	Defs int
	Refs []Reference
}

// Reference is a use site of a name. Node is the identifier itself; its
// syntactic parents are inspected by consumers, never mutated.
type Reference struct {
	Name     string
	Node     *sitter.Node
	Location Location
}

// NewScope creates a scope under parent. A nil parent creates a global
// scope with an unresolved bucket.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		Bindings: make(map[string]*Binding),
		Parent:   parent,
	}
	if parent == nil {
		s.Unresolved = make(map[string][]Reference)
	} else {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare registers a declaring definition of name in this scope, creating
// the binding if needed.
func (s *Scope) Declare(name string) *Binding {
	b, ok := s.Bindings[name]
	if !ok {
		b = &Binding{Name: name}
		s.Bindings[name] = b
	}
	b.Defs++
	return b
}

// Lookup probes this scope only.
func (s *Scope) Lookup(name string) *Binding {
	return s.Bindings[name]
}

// Resolve finds the nearest enclosing binding of name, walking the parent
// chain up to the global scope. Returns nil when no scope binds the name.
func (s *Scope) Resolve(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.Bindings[name]; ok {
			return b
		}
	}
	return nil
}

// Root returns the global scope at the top of the parent chain.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// ModuleScope returns the immediate child of the global scope, where the
// scope builder places all top-level declarations of a file. Returns nil
// for an empty tree.
func (s *Scope) ModuleScope() *Scope {
	root := s.Root()
	if len(root.Children) == 0 {
		return nil
	}
	return root.Children[0]
}

// HasDeclaration reports whether any scope in the tree rooted at s carries
// a declaring definition of name.
func (s *Scope) HasDeclaration(name string) bool {
	if b, ok := s.Bindings[name]; ok && b.Defs > 0 {
		return true
	}
	for _, child := range s.Children {
		if child.HasDeclaration(name) {
			return true
		}
	}
	return false
}
