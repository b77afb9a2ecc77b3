// # internal/parser/loader.go
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
	}

	gl.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
	gl.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	gl.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())

	return gl
}

func (gl *GrammarLoader) Language(name string) (*sitter.Language, error) {
	lang := gl.languages[name]
	if lang == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", name)
	}
	return lang, nil
}

// DetectLanguage maps a file path to a grammar name, or "" for files the
// tool does not handle.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs", ".jsx":
		return "javascript"
	case ".ts", ".cts", ".mts":
		return "typescript"
	case ".tsx":
		return "tsx"
	default:
		return ""
	}
}

// SupportedFile reports whether path has an extension the tool lints.
func SupportedFile(path string) bool {
	return DetectLanguage(path) != ""
}
