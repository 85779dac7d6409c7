package parser

import (
	"bytes"
	"regexp"
)

var (
	frontmatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)
	scriptPattern      = regexp.MustCompile(`(?is)<script\b[^>]*>(.*?)</script\s*>`)
)

// TemplateRegions holds the script-bearing parts of a composite template and
// the markup body that follows its frontmatter.
type TemplateRegions struct {
	Frontmatter *Region
	Scripts     []Region
	Body        []byte
	BodyLine    int
}

// SplitTemplate is a lexical pre-pass over a composite template. It finds at
// most one leading frontmatter block and every inline <script> element.
// Nested or escaped delimiters are not understood.
func SplitTemplate(content []byte) TemplateRegions {
	out := TemplateRegions{Body: content, BodyLine: 1}

	if m := frontmatterPattern.FindSubmatchIndex(content); m != nil {
		out.Frontmatter = &Region{
			Kind:   RegionFrontmatter,
			Source: content[m[2]:m[3]],
			Line:   lineAt(content, m[2]),
		}
		out.Body = content[m[1]:]
		out.BodyLine = lineAt(content, m[1])
	}

	for _, m := range scriptPattern.FindAllSubmatchIndex(content, -1) {
		out.Scripts = append(out.Scripts, Region{
			Kind:   RegionScript,
			Source: content[m[2]:m[3]],
			Line:   lineAt(content, m[2]),
		})
	}
	return out
}

// Regions lists the script regions in extraction order.
func (t TemplateRegions) Regions() []Region {
	regions := make([]Region, 0, len(t.Scripts)+1)
	if t.Frontmatter != nil {
		regions = append(regions, *t.Frontmatter)
	}
	return append(regions, t.Scripts...)
}

func lineAt(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
