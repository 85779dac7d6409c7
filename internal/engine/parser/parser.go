package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"importtree/internal/core/errors"
)

// Parser extracts raw specifiers from template and script files.
type Parser struct {
	scripts *ScriptExtractor
	plainJS *ScriptExtractor
}

func NewParser(loader *GrammarLoader) (*Parser, error) {
	tsx, err := loader.Pool(LangTSX)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "script grammar unavailable")
	}
	js, err := loader.Pool(LangJavaScript)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "javascript grammar unavailable")
	}
	return &Parser{scripts: NewScriptExtractor(tsx), plainJS: NewScriptExtractor(js)}, nil
}

// ParseFile dispatches on the file's kind. Per-region failures are collected
// in Extraction.Issues and never abort the remaining regions.
func (p *Parser) ParseFile(path string, content []byte) (*Extraction, error) {
	kind := KindForPath(path)
	switch kind {
	case KindTemplate:
		return p.parseTemplate(path, content), nil
	case KindScript:
		return p.parseRegions(path, kind, []Region{{Kind: RegionModule, Source: content, Line: 1}}), nil
	default:
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("unsupported source kind: %s", path))
	}
}

func (p *Parser) parseTemplate(path string, content []byte) *Extraction {
	parts := SplitTemplate(content)
	out := p.parseRegions(path, KindTemplate, parts.Regions())
	out.Components = ScanComponents(parts.Body)
	return out
}

func (p *Parser) parseRegions(path string, kind SourceKind, regions []Region) *Extraction {
	out := &Extraction{Path: path, Kind: kind}
	fallback := kind == KindScript && isPlainJavaScript(path)
	for _, region := range regions {
		specs, err := p.scripts.ExtractRegion(region, path)
		if err != nil && fallback {
			if jsSpecs, jsErr := p.plainJS.ExtractRegion(region, path); jsErr == nil {
				specs, err = jsSpecs, nil
			}
		}
		if err != nil {
			out.Issues = append(out.Issues, err)
			continue
		}
		out.Specifiers = append(out.Specifiers, specs...)
	}
	return out
}

func isPlainJavaScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx":
		return true
	}
	return false
}

// IsSupportedPath reports whether path is parsed for further references.
func (p *Parser) IsSupportedPath(path string) bool {
	return KindForPath(path) != KindUnknown
}
