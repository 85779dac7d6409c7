package graph

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"index.astro", "/"},
		{"about.astro", "/about"},
		{filepath.Join("blog", "index.astro"), "/blog"},
		{filepath.Join("blog", "post-1.astro"), "/blog/post-1"},
		{filepath.Join("docs", "guides", "index.astro"), "/docs/guides"},
		{filepath.Join("[slug]", "index.astro"), "/[slug]"},
		{"reindex.astro", "/reindex"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, URLPath(tt.rel), tt.rel)
	}
}

func TestNewPage_SortedAndDeduplicated(t *testing.T) {
	root := filepath.FromSlash("/proj")
	abs := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	page := NewPage("/", []string{
		abs("src/pages/index.astro"),
		abs("src/components/Header.astro"),
		abs("src/components/Footer.astro"),
		abs("src/components/Header.astro"),
		abs("src/components/Hero/Image.astro"),
		abs("src/components/Hero.astro"),
	}, root)

	assert.Equal(t, "/", page.Path)
	assert.Equal(t, []string{
		"@src/components/Footer.astro",
		"@src/components/Header.astro",
		"@src/components/Hero.astro",
		"@src/components/Hero/Image.astro",
		"@src/pages/index.astro",
	}, page.Imports)
}

func TestImportTree_JSONRoundTrip(t *testing.T) {
	tree := ImportTree{Pages: []ImportTreePage{
		{Path: "/about", Imports: []string{"@src/a.astro"}},
		{Path: "/", Imports: []string{"@src/b.astro", "@src/c.ts"}},
	}}

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages":[{"path":"/about","imports":["@src/a.astro"]},{"path":"/","imports":["@src/b.astro","@src/c.ts"]}]}`, string(data))

	var decoded ImportTree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tree, decoded)
}

func TestImportTree_EdgesAndFiles(t *testing.T) {
	tree := ImportTree{Pages: []ImportTreePage{
		{Path: "/", Imports: []string{"@a", "@b"}},
		{Path: "/x", Imports: []string{"@b"}},
	}}
	assert.Equal(t, [][2]string{{"/", "@a"}, {"/", "@b"}, {"/x", "@b"}}, tree.Edges())
	assert.Equal(t, []string{"@a", "@b"}, tree.Files())
}
