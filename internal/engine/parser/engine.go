package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeHandler processes a node. Returning true skips the node's children.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node) bool

// ExtractionContext carries the region being walked and collects its output.
type ExtractionContext struct {
	Source     []byte
	Region     Region
	Specifiers []Specifier
}

// ExtractorEngine walks the syntax tree and dispatches node handlers by kind.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}

	if handler, ok := e.handlers[node.Kind()]; ok {
		if handler(ctx, node) {
			return
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.Walk(ctx, node.Child(i))
	}
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

// Line converts a node position to a 1-based line in the enclosing file.
func (c *ExtractionContext) Line(node *sitter.Node) int {
	return c.Region.Line + int(node.StartPosition().Row)
}

func (c *ExtractionContext) Add(value string, node *sitter.Node) {
	c.Specifiers = append(c.Specifiers, Specifier{
		Value:  value,
		Region: c.Region.Kind,
		Line:   c.Line(node),
	})
}
