package graph

import (
	"path/filepath"
	"sort"
	"strings"

	"importtree/internal/shared/util"
)

// ImportMarker prefixes every root-relative entry of ImportTreePage.Imports.
const ImportMarker = "@"

// PageEntry is one routable page file and the URL it serves.
type PageEntry struct {
	URLPath  string
	FilePath string
}

type ImportTreePage struct {
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
}

type ImportTree struct {
	Pages []ImportTreePage `json:"pages"`
}

// URLPath derives a page URL from the page file's path relative to the pages
// root: the extension is dropped and a trailing index segment collapses into
// its parent.
func URLPath(relPath string) string {
	rel := filepath.ToSlash(relPath)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	url := "/" + strings.TrimPrefix(rel, "/")

	if url == "/index" {
		return "/"
	}
	return strings.TrimSuffix(url, "/index")
}

// FormatImportPath renders an absolute file path as the marker-prefixed,
// slash-separated path relative to root.
func FormatImportPath(absPath, root string) string {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	return ImportMarker + filepath.ToSlash(rel)
}

// NewPage converts a reachability set into a page record with a sorted,
// duplicate-free import list.
func NewPage(urlPath string, reachable []string, root string) ImportTreePage {
	seen := make(map[string]bool, len(reachable))
	imports := make([]string, 0, len(reachable))
	for _, file := range reachable {
		formatted := FormatImportPath(file, root)
		if seen[formatted] {
			continue
		}
		seen[formatted] = true
		imports = append(imports, formatted)
	}
	sort.Strings(imports)
	return ImportTreePage{Path: urlPath, Imports: imports}
}

// Edges flattens the tree into page -> import pairs in tree order.
func (t *ImportTree) Edges() [][2]string {
	var edges [][2]string
	for _, page := range t.Pages {
		for _, imp := range page.Imports {
			edges = append(edges, [2]string{page.Path, imp})
		}
	}
	return edges
}

// Files returns every distinct import across all pages, sorted.
func (t *ImportTree) Files() []string {
	set := make(map[string]bool)
	for _, page := range t.Pages {
		for _, imp := range page.Imports {
			set[imp] = true
		}
	}
	return util.SortedStringKeys(set)
}
