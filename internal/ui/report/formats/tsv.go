package formats

import (
	"fmt"
	"strings"

	"importtree/internal/engine/graph"
)

type TSVGenerator struct {
	tree *graph.ImportTree
}

func NewTSVGenerator(tree *graph.ImportTree) *TSVGenerator {
	return &TSVGenerator{tree: normalize(tree)}
}

func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Page\tImport\n")
	for _, edge := range t.tree.Edges() {
		buf.WriteString(fmt.Sprintf("%s\t%s\n", edge[0], edge[1]))
	}
	return buf.String(), nil
}
