package formats

import (
	"fmt"
	"strings"

	"importtree/internal/engine/graph"
)

type MermaidGenerator struct {
	tree *graph.ImportTree
}

func NewMermaidGenerator(tree *graph.ImportTree) *MermaidGenerator {
	return &MermaidGenerator{tree: normalize(tree)}
}

func (m *MermaidGenerator) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("%%{init: {'theme': 'base', 'flowchart': {'nodeSpacing': 80, 'rankSpacing': 110, 'curve': 'basis'}}}%%\n")
	b.WriteString("flowchart LR\n")

	ids := nodeIDs(m.tree)
	for _, page := range m.tree.Pages {
		b.WriteString(fmt.Sprintf("  %s([\"%s\"])\n", ids[pageKey(page.Path)], escapeLabel(page.Path)))
	}
	for _, file := range m.tree.Files() {
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids[fileKey(file)], escapeLabel(file)))
	}
	for _, edge := range m.tree.Edges() {
		b.WriteString(fmt.Sprintf("  %s --> %s\n", ids[pageKey(edge[0])], ids[fileKey(edge[1])]))
	}

	if len(m.tree.Pages) > 0 {
		b.WriteString("\n  classDef page fill:#dbeafe,stroke:#1d4ed8,color:#000000;\n")
		pageIDs := make([]string, 0, len(m.tree.Pages))
		for _, page := range m.tree.Pages {
			pageIDs = append(pageIDs, ids[pageKey(page.Path)])
		}
		b.WriteString(fmt.Sprintf("  class %s page\n", strings.Join(pageIDs, ",")))
	}
	return b.String(), nil
}
