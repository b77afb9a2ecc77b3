package parser

import (
	"testing"
)

func TestResolveWalksParentChain(t *testing.T) {
	global := NewScope(nil)
	module := NewScope(global)
	fn := NewScope(module)
	block := NewScope(fn)

	module.Declare("outer")
	fn.Declare("inner")

	if b := block.Resolve("inner"); b == nil || b.Name != "inner" {
		t.Errorf("expected inner resolved from block scope, got %v", b)
	}
	if b := block.Resolve("outer"); b == nil || b.Name != "outer" {
		t.Errorf("expected outer resolved through the chain, got %v", b)
	}
	if b := block.Resolve("missing"); b != nil {
		t.Errorf("expected nil for unbound name, got %v", b)
	}
}

func TestResolvePrefersNearestBinding(t *testing.T) {
	global := NewScope(nil)
	module := NewScope(global)
	fn := NewScope(module)

	outer := module.Declare("x")
	inner := fn.Declare("x")

	if b := fn.Resolve("x"); b != inner {
		t.Error("expected the nearest enclosing binding")
	}
	if b := module.Resolve("x"); b != outer {
		t.Error("expected the module binding from module scope")
	}
}

func TestLookupIsLocalOnly(t *testing.T) {
	global := NewScope(nil)
	module := NewScope(global)
	fn := NewScope(module)

	module.Declare("x")

	if fn.Lookup("x") != nil {
		t.Error("Lookup must not consult parent scopes")
	}
	if module.Lookup("x") == nil {
		t.Error("Lookup must find local bindings")
	}
}

func TestDeclareCountsDefinitions(t *testing.T) {
	s := NewScope(nil)
	b1 := s.Declare("x")
	b2 := s.Declare("x")

	if b1 != b2 {
		t.Error("redeclaration must reuse the binding")
	}
	if b1.Defs != 2 {
		t.Errorf("expected 2 defs, got %d", b1.Defs)
	}
}

func TestRootAndModuleScope(t *testing.T) {
	global := NewScope(nil)
	module := NewScope(global)
	fn := NewScope(module)

	if fn.Root() != global {
		t.Error("Root must return the global scope")
	}
	if fn.ModuleScope() != module {
		t.Error("ModuleScope must return the first child of the root")
	}
	if global.Unresolved == nil {
		t.Error("global scope must carry the unresolved bucket")
	}
	if module.Unresolved != nil {
		t.Error("only the global scope carries the unresolved bucket")
	}
}

func TestHasDeclarationSearchesWholeTree(t *testing.T) {
	global := NewScope(nil)
	module := NewScope(global)
	fn := NewScope(module)
	fn.Declare("console")

	if !global.HasDeclaration("console") {
		t.Error("expected nested declaration to be found from the root")
	}
	if global.HasDeclaration("window") {
		t.Error("unexpected declaration found")
	}
}
