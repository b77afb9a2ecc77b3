package lint

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"logshift/internal/parser"
)

const (
	// consoleName is the ambient global whose direct use is policed.
	consoleName = "console"

	// loggerName is the per-file structured logger binding the fixer
	// rewrites calls against, and whose presence gates the prologue.
	loggerName = "moduleLogger"

	// emitMethodName is the structured logger's internal dispatch method.
	// The logger implementation itself writes through console.emit, so
	// accesses to it are never flagged.
	emitMethodName = "emit"

	loggerImportPath = "@app/logging"
)

// Engine detects console.error/warn/info calls within one file's scope tree
// and produces fixable reports rewriting them to moduleLogger calls. It is
// a pure single pass: no state survives Run, so files can be processed
// concurrently with one Engine each.
type Engine struct {
	source []byte
}

func NewEngine(source []byte) *Engine {
	return &Engine{source: source}
}

// Run walks every reference to the console global in fileScope and returns
// one report per qualifying call. A file that declares its own `console`
// anywhere (parameter, local, import) produces no reports at all.
func (e *Engine) Run(fileScope *parser.Scope, filename string) []Report {
	if fileScope == nil {
		return nil
	}

	root := fileScope.Root()
	if root.HasDeclaration(consoleName) {
		return nil
	}

	refs := consoleReferences(root)
	if len(refs) == 0 {
		return nil
	}

	loggerBound := loggerBinding(root)
	prologueDone := false

	var reports []Report
	for _, ref := range refs {
		occ, ok := e.classify(ref)
		if !ok {
			continue
		}

		report := Report{
			Method:   occ.method,
			Message:  fmt.Sprintf("No native console.%s allowed, use moduleLogger.%s instead", occ.method, occ.method),
			Location: ref.Location,
			Start:    occ.call.StartByte(),
			End:      occ.call.EndByte(),
		}

		// The prologue is gated on a fresh binding probe, but within one
		// fix pass it is attached to the first report only so that a file
		// with many occurrences still gains exactly one import block.
		if !loggerBound && !prologueDone {
			report.Edits = append(report.Edits, Edit{Start: 0, End: 0, NewText: prologue(filename)})
			prologueDone = true
		}

		report.Edits = append(report.Edits, Edit{
			Start:   occ.call.StartByte(),
			End:     occ.call.EndByte(),
			NewText: e.rebuild(occ),
		})

		reports = append(reports, report)
	}

	return reports
}

// consoleReferences gathers the candidate reference set: the binding's use
// sites when console is bound without a declaring definition (an ambient
// binding), or the global unresolved bucket when it was never declared.
func consoleReferences(root *parser.Scope) []parser.Reference {
	if b := root.Resolve(consoleName); b != nil {
		if b.Defs > 0 {
			return nil
		}
		return b.Refs
	}
	return root.Unresolved[consoleName]
}

// loggerBinding reports whether the module scope, the immediate child of
// the file's root scope, already binds the structured logger.
func loggerBinding(root *parser.Scope) bool {
	module := root.ModuleScope()
	return module != nil && module.Lookup(loggerName) != nil
}

type occurrence struct {
	method Method
	call   *sitter.Node
	args   []*sitter.Node
}

// classify keeps a reference only when it is the object of a direct member
// access that is itself being called, the accessed method is in the policed
// set, and it is not the logger's own dispatch method.
func (e *Engine) classify(ref parser.Reference) (occurrence, bool) {
	member := ref.Node.Parent()
	if member == nil || member.Kind() != "member_expression" {
		return occurrence{}, false
	}
	object := member.ChildByFieldName("object")
	if object == nil || object.StartByte() != ref.Node.StartByte() {
		return occurrence{}, false
	}

	property := member.ChildByFieldName("property")
	if property == nil || property.Kind() != "property_identifier" {
		return occurrence{}, false
	}
	name := e.text(property)
	if name == emitMethodName {
		return occurrence{}, false
	}

	method := ParseMethod(name)
	if method == MethodOther {
		return occurrence{}, false
	}

	call := member.Parent()
	if call == nil || call.Kind() != "call_expression" {
		return occurrence{}, false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.StartByte() != member.StartByte() {
		return occurrence{}, false
	}

	return occurrence{
		method: method,
		call:   call,
		args:   callArguments(call),
	}, true
}

func callArguments(call *sitter.Node) []*sitter.Node {
	list := call.ChildByFieldName("arguments")
	if list == nil {
		return nil
	}
	var args []*sitter.Node
	for i := uint(0); i < list.NamedChildCount(); i++ {
		arg := list.NamedChild(i)
		if arg == nil || arg.Kind() == "comment" {
			continue
		}
		args = append(args, arg)
	}
	return args
}

// rebuild produces the replacement call text for an occurrence.
//
// error/warn calls are positional and ambiguous: with a single argument it
// is the error value itself, with two or more the second argument is the
// value and the first its descriptive text, remaining arguments pass
// through in order. The reconstructed call leads with the value.
//
// info calls keep their original argument order.
//
// Arguments that are neither literals nor plain identifiers textualize to
// nothing and are dropped rather than aborting the fix.
func (e *Engine) rebuild(occ occurrence) string {
	var parts []string

	switch occ.method {
	case MethodError, MethodWarn:
		ordered := occ.args
		if len(occ.args) >= 2 {
			ordered = make([]*sitter.Node, 0, len(occ.args))
			ordered = append(ordered, occ.args[1], occ.args[0])
			ordered = append(ordered, occ.args[2:]...)
		}
		for _, arg := range ordered {
			if text := e.literalOrIdentifier(arg); text != "" {
				parts = append(parts, text)
			}
		}

	case MethodInfo:
		for _, arg := range occ.args {
			if text := e.cookedLiteralOrIdentifier(arg); text != "" {
				parts = append(parts, text)
			}
		}
	}

	return fmt.Sprintf("moduleLogger.%s(%s)", occ.method, strings.Join(parts, ","))
}

func prologue(filename string) string {
	base := filepath.Base(filename)
	namespace := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("import { getLogger } from %q;\nconst moduleLogger = getLogger([%q]);\n", loggerImportPath, namespace)
}

func (e *Engine) text(node *sitter.Node) string {
	return string(e.source[node.StartByte():node.EndByte()])
}
