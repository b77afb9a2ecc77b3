// # internal/parser/parser.go
package parser

import (
	"errors"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"logshift/internal/shared/observability"
)

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// ParseFile parses content with the grammar matching path's extension and
// builds the file's scope tree. The caller owns the returned SourceFile and
// must Close it.
func (p *Parser) ParseFile(path string, content []byte) (*SourceFile, error) {
	lang := DetectLanguage(path)
	if lang == "" {
		return nil, errors.New("unsupported language")
	}

	grammar, err := p.loader.Language(lang)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}

	root := tree.RootNode()
	scope := BuildScopes(root, content, path)

	observability.ParseDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())

	return &SourceFile{
		Path:     path,
		Language: lang,
		Source:   content,
		Root:     root,
		Scope:    scope,
		ParsedAt: time.Now(),
		tree:     tree,
	}, nil
}
