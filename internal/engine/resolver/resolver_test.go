package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"importtree/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+rel+"\n"), 0o644))
	}
}

func TestResolve_Policy(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/components/Header.astro",
		"src/components/Header.ts",
		"src/components/Button.tsx",
		"src/lib/util.js",
		"src/lib/nav/index.ts",
		"src/lib/nav.d/index.astro",
		"src/layouts/Base.astro",
		"src/styles/site.css",
		"src/pages/index.astro",
	)
	r := NewResolver(root)
	pages := filepath.Join(root, "src", "pages")

	tests := []struct {
		name string
		spec string
		want string
	}{
		{"relative with extension", "../components/Header.astro", "src/components/Header.astro"},
		{"relative probes template first", "../components/Header", "src/components/Header.astro"},
		{"relative probes script extensions", "../components/Button", "src/components/Button.tsx"},
		{"relative non-script asset", "../styles/site.css", "src/styles/site.css"},
		{"directory as module", "../lib/nav", "src/lib/nav/index.ts"},
		{"at alias", "@/layouts/Base.astro", "src/layouts/Base.astro"},
		{"tilde alias", "~/lib/util", "src/lib/util.js"},
		{"src relative bare path", "lib/util.js", "src/lib/util.js"},
		{"src relative directory", "lib/nav.d", "src/lib/nav.d/index.astro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.spec, pages)
			require.NoError(t, err)
			assert.Equal(t, []string{filepath.Join(root, filepath.FromSlash(tt.want))}, got)
		})
	}
}

func TestResolve_ExternalAndMissing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/pages/index.astro", "react")
	r := NewResolver(root)
	pages := filepath.Join(root, "src", "pages")

	for _, spec := range []string{
		"react",
		"astro:content",
		"@astrojs/react",
		"@scope/pkg/sub",
		"./missing",
		"../../../../outside/file",
		"",
	} {
		got, err := r.Resolve(spec, pages)
		assert.NoError(t, err, spec)
		assert.Empty(t, got, spec)
	}
}

func TestResolve_DirectoryIsNotAFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/widgets/Card/index.astro", "src/widgets/Card.js")
	r := NewResolver(root)

	got, err := r.Resolve("./Card", filepath.Join(root, "src", "widgets"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "widgets", "Card.js")}, got)
}

func TestResolve_EscapingRootIsDropped(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "site")
	writeTree(t, parent, "shared/lib.ts", "site/src/pages/index.astro")
	r := NewResolver(root)

	got, err := r.Resolve("../../../shared/lib.ts", filepath.Join(root, "src", "pages"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_Globs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/pages/posts/a.md",
		"src/pages/posts/b.md",
		"src/pages/posts/nested/c.md",
		"src/pages/posts/.hidden.md",
		"src/pages/posts/notes.txt",
		"src/content/blog/x.mdx",
		"src/content/blog/2024/y.mdx",
		"src/pages/[lang]/docs/intro.md",
	)
	r := NewResolver(root)
	pages := filepath.Join(root, "src", "pages")
	abs := func(rels ...string) []string {
		out := make([]string, 0, len(rels))
		for _, rel := range rels {
			out = append(out, filepath.Join(root, filepath.FromSlash(rel)))
		}
		return out
	}

	got, err := r.Resolve("./posts/*.md", pages)
	require.NoError(t, err)
	assert.Equal(t, abs("src/pages/posts/a.md", "src/pages/posts/b.md"), got)

	got, err = r.Resolve("./posts/**/*.md", pages)
	require.NoError(t, err)
	assert.Equal(t, abs("src/pages/posts/a.md", "src/pages/posts/b.md", "src/pages/posts/nested/c.md"), got)

	got, err = r.Resolve("@/content/blog/**/*.mdx", pages)
	require.NoError(t, err)
	assert.Equal(t, abs("src/content/blog/2024/y.mdx", "src/content/blog/x.mdx"), got)

	got, err = r.Resolve("content/blog/*.mdx", pages)
	require.NoError(t, err)
	assert.Equal(t, abs("src/content/blog/x.mdx"), got)

	got, err = r.Resolve("./[lang]/docs/*.md", pages)
	require.NoError(t, err)
	assert.Equal(t, abs("src/pages/[lang]/docs/intro.md"), got)

	got, err = r.Resolve("./nowhere/*.md", pages)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandGlob_InvalidPattern(t *testing.T) {
	root := t.TempDir()
	_, err := ExpandGlob(filepath.Join(root, "src", "*[.md"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeGlob))
}

func TestExpandDoubleStar(t *testing.T) {
	assert.Equal(t, []string{"*.md"}, expandDoubleStar("*.md"))
	assert.Equal(t, []string{"**/*.md", "*.md"}, expandDoubleStar("**/*.md"))
	assert.Equal(t, []string{"a/**/b/*.md", "a/b/*.md"}, expandDoubleStar("a/**/b/*.md"))
}

func TestIsExternal(t *testing.T) {
	assert.True(t, IsExternal("react"))
	assert.True(t, IsExternal("@astrojs/tailwind"))
	assert.False(t, IsExternal("@/components/A"))
	assert.False(t, IsExternal("~/components/A"))
	assert.False(t, IsExternal("./a"))
	assert.False(t, IsExternal("components/A"))
}
