package formats

import (
	"fmt"

	"importtree/internal/core/errors"
	"importtree/internal/engine/graph"
)

const (
	FormatLLM     = "llm"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatTSV     = "tsv"
)

// Render dispatches to the renderer for format.
func Render(format string, tree *graph.ImportTree) (string, error) {
	switch format {
	case FormatLLM:
		return RenderGrouped(tree), nil
	case FormatJSON:
		data, err := RenderJSON(tree)
		if err != nil {
			return "", errors.Wrap(err, errors.CodeInternal, "encode import tree")
		}
		return string(data), nil
	case FormatDOT:
		return NewDOTGenerator(tree).Generate()
	case FormatMermaid:
		return NewMermaidGenerator(tree).Generate()
	case FormatTSV:
		return NewTSVGenerator(tree).Generate()
	default:
		return "", errors.New(errors.CodeNotSupported, fmt.Sprintf("unknown output format %q", format))
	}
}
