package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

const (
	// LangTSX parses every script region: it accepts both type annotations and
	// JSX markup.
	LangTSX = "tsx"
	// LangJavaScript re-parses plain .js/.jsx modules the TSX grammar rejects.
	LangJavaScript = "javascript"
)

type GrammarLoader struct {
	pools map[string]*ParserPool
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		pools: map[string]*ParserPool{
			LangTSX:        NewParserPool(sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())),
			LangJavaScript: NewParserPool(sitter.NewLanguage(tree_sitter_javascript.Language())),
		},
	}
}

func (gl *GrammarLoader) Pool(lang string) (*ParserPool, error) {
	pool, ok := gl.pools[lang]
	if !ok {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}
	return pool, nil
}
