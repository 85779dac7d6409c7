package resolver

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"importtree/internal/core/errors"

	"github.com/gobwas/glob"
)

// Only "*" starts the wildcard part; the directory prefix before it is
// matched literally even when it contains "[" or "{" (e.g. [slug] routes).
const globMeta = "*"

// ExpandGlob returns the regular files matching pattern, sorted. "*" stays
// within one path segment and "**" spans zero or more directories. Hidden
// entries below the static prefix are skipped. A missing prefix directory
// matches nothing; any other failure returns a CodeGlob error.
func ExpandGlob(pattern string) ([]string, error) {
	slashed := filepath.ToSlash(filepath.Clean(pattern))
	base, rest := splitGlobBase(slashed)
	if rest == "" {
		return nil, nil
	}

	matchers, err := compileVariants(glob.QuoteMeta(base), rest)
	if err != nil {
		return nil, globError(err, pattern, "invalid glob pattern")
	}

	var matches []string
	walkErr := filepath.WalkDir(filepath.FromSlash(base), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		slashPath := filepath.ToSlash(path)
		if slashPath != base && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		for _, m := range matchers {
			if m.Match(slashPath) {
				matches = append(matches, path)
				break
			}
		}
		return nil
	})
	if walkErr != nil {
		if stderrors.Is(walkErr, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, globError(walkErr, pattern, "glob enumeration failed")
	}

	sort.Strings(matches)
	return matches, nil
}

// splitGlobBase separates the longest wildcard-free directory prefix.
func splitGlobBase(pattern string) (string, string) {
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if strings.ContainsAny(seg, globMeta) {
			base := strings.Join(segments[:i], "/")
			if base == "" && strings.HasPrefix(pattern, "/") {
				base = "/"
			}
			return base, strings.Join(segments[i:], "/")
		}
	}
	return pattern, ""
}

func compileVariants(base, rest string) ([]glob.Glob, error) {
	prefix := strings.TrimSuffix(base, "/") + "/"
	variants := expandDoubleStar(rest)
	out := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(prefix+v, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// expandDoubleStar adds a variant for every "**/" segment matching zero
// directories, which the matcher alone would require to be non-empty.
func expandDoubleStar(pattern string) []string {
	if strings.HasPrefix(pattern, "**/") {
		tail := expandDoubleStar(pattern[3:])
		out := make([]string, 0, 2*len(tail))
		for _, t := range tail {
			out = append(out, "**/"+t, t)
		}
		return out
	}
	i := strings.Index(pattern, "/**/")
	if i < 0 {
		return []string{pattern}
	}
	head := pattern[:i]
	tail := expandDoubleStar(pattern[i+4:])
	out := make([]string, 0, 2*len(tail))
	for _, t := range tail {
		out = append(out, head+"/**/"+t, head+"/"+t)
	}
	return out
}

func globError(err error, pattern, msg string) error {
	return errors.AddContext(errors.Wrap(err, errors.CodeGlob, msg), errors.CtxPattern, pattern)
}
