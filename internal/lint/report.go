package lint

import (
	"logshift/internal/parser"
)

// Edit is one text rewrite against the original source: replace the byte
// span [Start, End) with NewText. Start == End is a pure insertion.
type Edit struct {
	Start   uint
	End     uint
	NewText string
}

// Insertion reports whether the edit adds text without removing any.
func (e Edit) Insertion() bool { return e.Start == e.End }

// Report is one fixable diagnostic: a detected console call, its location,
// and the ordered edits that rewrite it. Edits never overlap; at most one
// report per file carries the prologue insertion.
type Report struct {
	Method   Method
	Message  string
	Location parser.Location

	// Span of the full call expression being replaced.
	Start uint
	End   uint

	Edits []Edit
}
