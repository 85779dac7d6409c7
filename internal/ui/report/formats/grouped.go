package formats

import (
	"strings"

	"importtree/internal/engine/graph"
)

const indexDocument = "index.html"

// RenderGrouped renders one "## <url>, <url>/index.html" heading per page
// followed by a blank line and its imports as bullets. Blocks are separated by
// a blank line and the output has no trailing newline.
func RenderGrouped(tree *graph.ImportTree) string {
	if tree == nil {
		return ""
	}
	blocks := make([]string, 0, len(tree.Pages))
	for _, page := range tree.Pages {
		blocks = append(blocks, groupedBlock(page))
	}
	return strings.Join(blocks, "\n\n")
}

func groupedBlock(page graph.ImportTreePage) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(page.Path)
	b.WriteString(", ")
	b.WriteString(indexURL(page.Path))
	b.WriteString("\n\n")
	for i, imp := range page.Imports {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(imp)
	}
	return b.String()
}

func indexURL(url string) string {
	return strings.TrimSuffix(url, "/") + "/" + indexDocument
}
