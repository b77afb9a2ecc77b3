// # internal/parser/types.go
package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SourceFile is one parsed source file together with its scope tree.
// The tree-sitter tree stays alive until Close is called; every node held
// by the scope tree points into it.
type SourceFile struct {
	Path     string
	Language string
	Source   []byte
	Root     *sitter.Node
	Scope    *Scope // global scope, see scope.go
	ParsedAt time.Time

	tree *sitter.Tree
}

// Close releases the underlying tree-sitter tree. The scope tree must not
// be used afterwards.
func (f *SourceFile) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

type Location struct {
	File   string
	Line   int
	Column int
}

func locationOf(node *sitter.Node, file string) Location {
	return Location{
		File:   file,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}
