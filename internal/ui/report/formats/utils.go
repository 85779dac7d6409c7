package formats

import (
	"fmt"
	"strings"
	"unicode"

	"importtree/internal/engine/graph"
)

func sanitizeID(name string) string {
	if name == "" {
		return "n"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

// makeIDs assigns every distinct name a unique sanitized identifier.
// Collisions get a numeric suffix in input order.
func makeIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		if _, ok := ids[name]; ok {
			continue
		}
		base := sanitizeID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// nodeIDs keys page nodes by "page:" + url and file nodes by "file:" + import
// so a page URL never collides with a file path.
func nodeIDs(tree *graph.ImportTree) map[string]string {
	names := make([]string, 0, len(tree.Pages))
	for _, page := range tree.Pages {
		names = append(names, pageKey(page.Path))
	}
	for _, file := range tree.Files() {
		names = append(names, fileKey(file))
	}
	return makeIDs(names)
}

func pageKey(url string) string  { return "page:" + url }
func fileKey(file string) string { return "file:" + file }
