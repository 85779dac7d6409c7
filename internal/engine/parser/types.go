package parser

import (
	"path/filepath"
	"strings"
)

// SourceKind selects how a file's text is split into script regions.
type SourceKind int

const (
	KindUnknown SourceKind = iota
	// KindTemplate is a composite template: frontmatter, markup, inline scripts.
	KindTemplate
	// KindScript is a plain JavaScript/TypeScript module.
	KindScript
)

func (k SourceKind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

type RegionKind string

const (
	RegionFrontmatter RegionKind = "frontmatter"
	RegionScript      RegionKind = "script"
	RegionModule      RegionKind = "module"
)

// Region is a slice of a source file that is parsed as a standalone script.
type Region struct {
	Kind   RegionKind
	Source []byte
	Line   int // 1-based line of the region's first byte in the file
}

// Specifier is a raw reference string exactly as written in source.
type Specifier struct {
	Value  string
	Region RegionKind
	Line   int
}

// Extraction is the result of scanning one file. Issues hold recoverable
// per-region failures; a region listed there contributed no specifiers.
type Extraction struct {
	Path       string
	Kind       SourceKind
	Specifiers []Specifier
	Components []string
	Issues     []error
}

func (e *Extraction) Values() []string {
	out := make([]string, 0, len(e.Specifiers))
	for _, s := range e.Specifiers {
		out = append(out, s.Value)
	}
	return out
}

var sourceKinds = map[string]SourceKind{
	".astro": KindTemplate,
	".js":    KindScript,
	".jsx":   KindScript,
	".ts":    KindScript,
	".tsx":   KindScript,
}

// KindForPath maps a file extension to its SourceKind. Files of unknown kind
// are reachable leaves and are never parsed.
func KindForPath(path string) SourceKind {
	return sourceKinds[strings.ToLower(filepath.Ext(path))]
}
