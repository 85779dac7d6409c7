package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"importtree/internal/shared/util"
)

// SourceDir is the project directory that alias and bare-path specifiers
// resolve into.
const SourceDir = "src"

// AliasPrefixes map onto <root>/src/.
var AliasPrefixes = []string{"@/", "~/"}

// ProbeExtensions is tried in order after the bare path, and again for
// <candidate>/index<ext>. Templates win over scripts of the same name.
var ProbeExtensions = []string{"", ".astro", ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// Resolver maps raw specifiers to existing files under one project root.
type Resolver struct {
	root   string
	srcDir string
}

func NewResolver(root string) *Resolver {
	root = filepath.Clean(root)
	return &Resolver{
		root:   root,
		srcDir: filepath.Join(root, SourceDir),
	}
}

// Resolve returns the files spec refers to when written in a file inside
// fromDir. External package references and misses resolve to nothing with a
// nil error; only glob enumeration failures are reported.
func (r *Resolver) Resolve(spec, fromDir string) ([]string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	if strings.Contains(spec, "*") {
		matches, err := ExpandGlob(r.globPattern(spec, fromDir))
		return r.insideRoot(matches), err
	}

	var candidate string
	switch {
	case IsRelative(spec):
		candidate = filepath.Join(fromDir, filepath.FromSlash(spec))
	case hasAliasPrefix(spec):
		candidate = filepath.Join(r.srcDir, filepath.FromSlash(spec[2:]))
	case IsExternal(spec):
		return nil, nil
	default:
		candidate = filepath.Join(r.srcDir, filepath.FromSlash(spec))
	}

	path, ok := probe(candidate)
	if !ok || !r.contains(path) {
		return nil, nil
	}
	return []string{path}, nil
}

func (r *Resolver) globPattern(spec, fromDir string) string {
	switch {
	case IsRelative(spec):
		return filepath.Join(fromDir, filepath.FromSlash(spec))
	case hasAliasPrefix(spec):
		return filepath.Join(r.srcDir, filepath.FromSlash(spec[2:]))
	default:
		return filepath.Join(r.srcDir, filepath.FromSlash(spec))
	}
}

// IsRelative reports whether spec is written relative to its containing file.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, ".")
}

// IsExternal reports whether spec names a package rather than a project file:
// no path separator at all, or a scoped @pkg name that is not an alias.
func IsExternal(spec string) bool {
	if IsRelative(spec) || hasAliasPrefix(spec) {
		return false
	}
	return !strings.Contains(spec, "/") || strings.HasPrefix(spec, "@")
}

func hasAliasPrefix(spec string) bool {
	for _, prefix := range AliasPrefixes {
		if strings.HasPrefix(spec, prefix) {
			return true
		}
	}
	return false
}

func probe(candidate string) (string, bool) {
	for _, ext := range ProbeExtensions {
		if path := candidate + ext; isRegularFile(path) {
			return path, true
		}
	}
	for _, ext := range ProbeExtensions {
		if path := filepath.Join(candidate, "index"+ext); isRegularFile(path) {
			return path, true
		}
	}
	return "", false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (r *Resolver) contains(path string) bool {
	return util.HasPathPrefix(filepath.ToSlash(path), filepath.ToSlash(r.root))
}

func (r *Resolver) insideRoot(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if r.contains(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
