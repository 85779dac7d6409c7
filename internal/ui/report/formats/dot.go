package formats

import (
	"fmt"
	"strings"

	"importtree/internal/engine/graph"
)

type DOTGenerator struct {
	tree *graph.ImportTree
}

func NewDOTGenerator(tree *graph.ImportTree) *DOTGenerator {
	return &DOTGenerator{tree: normalize(tree)}
}

// Generate renders pages as a filled cluster and every reachable file as a
// box, with one edge per page -> import pair.
func (d *DOTGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph imports {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  overlap=false;\n\n")

	ids := nodeIDs(d.tree)

	buf.WriteString("  subgraph cluster_pages {\n")
	buf.WriteString("    label=\"Pages\";\n")
	buf.WriteString("    style=filled;\n")
	buf.WriteString("    color=\"whitesmoke\";\n")
	buf.WriteString("    node [fillcolor=\"lightblue\", style=\"rounded,filled\"];\n")
	for _, page := range d.tree.Pages {
		buf.WriteString(fmt.Sprintf("    %s [label=\"%s\"];\n", ids[pageKey(page.Path)], escapeLabel(page.Path)))
	}
	buf.WriteString("  }\n\n")

	for _, file := range d.tree.Files() {
		buf.WriteString(fmt.Sprintf("  %s [label=\"%s\"];\n", ids[fileKey(file)], escapeLabel(file)))
	}
	if len(d.tree.Pages) > 0 {
		buf.WriteString("\n")
	}

	for _, edge := range d.tree.Edges() {
		buf.WriteString(fmt.Sprintf("  %s -> %s;\n", ids[pageKey(edge[0])], ids[fileKey(edge[1])]))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
