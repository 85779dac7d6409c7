package formats

import (
	"bytes"
	"encoding/json"

	"importtree/internal/engine/graph"
)

// RenderJSON renders the tree as two-space indented JSON. Decoding the result
// yields an equal tree. Characters such as & < > are written verbatim.
func RenderJSON(tree *graph.ImportTree) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(tree)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// normalize makes "pages" and "imports" encode as arrays, never null.
func normalize(tree *graph.ImportTree) *graph.ImportTree {
	if tree == nil {
		return &graph.ImportTree{Pages: []graph.ImportTreePage{}}
	}
	out := &graph.ImportTree{Pages: make([]graph.ImportTreePage, 0, len(tree.Pages))}
	for _, page := range tree.Pages {
		if page.Imports == nil {
			page.Imports = []string{}
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}
