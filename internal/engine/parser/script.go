package parser

import (
	"fmt"

	"importtree/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const (
	globReceiver = "Astro"
	globMember   = "glob"
)

// ScriptExtractor collects static import sources and literal arguments of
// import(...) and Astro.glob(...) calls from one script region.
type ScriptExtractor struct {
	pool   *ParserPool
	engine *ExtractorEngine
}

func NewScriptExtractor(pool *ParserPool) *ScriptExtractor {
	e := &ScriptExtractor{pool: pool}
	e.engine = NewExtractorEngine(map[string]NodeHandler{
		"import_statement": e.extractImport,
		"call_expression":  e.extractCall,
	})
	return e
}

// ExtractRegion parses region and returns its specifiers in source order.
// A region that does not parse cleanly yields a CodeSyntax error and nothing else.
func (e *ScriptExtractor) ExtractRegion(region Region, filePath string) ([]Specifier, error) {
	tree := e.pool.Parse(region.Source)
	if tree == nil {
		return nil, e.syntaxError(region, filePath, "parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, e.syntaxError(region, filePath, fmt.Sprintf("invalid syntax near line %d", region.Line+int(firstErrorRow(root))))
	}

	ctx := &ExtractionContext{Source: region.Source, Region: region}
	e.engine.Walk(ctx, root)
	return ctx.Specifiers, nil
}

func (e *ScriptExtractor) syntaxError(region Region, filePath, msg string) error {
	err := errors.New(errors.CodeSyntax, msg)
	err = errors.AddContext(err, errors.CtxPath, filePath)
	return errors.AddContext(err, errors.CtxRegion, string(region.Kind))
}

func (e *ScriptExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	source := node.ChildByFieldName("source")
	if source == nil {
		return true
	}
	if value := stringValue(ctx.Text(source)); value != "" {
		ctx.Add(value, node)
	}
	return true
}

func (e *ScriptExtractor) extractCall(ctx *ExtractionContext, node *sitter.Node) bool {
	fn := node.ChildByFieldName("function")
	if fn == nil || !e.isImportLikeCallee(ctx, fn) {
		return false
	}

	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return false
	}
	first := args.NamedChild(0)
	if first == nil || first.Kind() != "string" {
		return false
	}
	if value := stringValue(ctx.Text(first)); value != "" {
		ctx.Add(value, node)
	}
	return false
}

func (e *ScriptExtractor) isImportLikeCallee(ctx *ExtractionContext, fn *sitter.Node) bool {
	switch fn.Kind() {
	case "import":
		return true
	case "member_expression":
		object := fn.ChildByFieldName("object")
		property := fn.ChildByFieldName("property")
		return object != nil && property != nil &&
			object.Kind() == "identifier" && ctx.Text(object) == globReceiver &&
			ctx.Text(property) == globMember
	}
	return false
}

func firstErrorRow(node *sitter.Node) uint {
	if node.IsError() || node.IsMissing() {
		return node.StartPosition().Row
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.HasError() {
			return firstErrorRow(child)
		}
	}
	return node.StartPosition().Row
}
