package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"importtree/internal/core/errors"
	"importtree/internal/engine/parser"
	"importtree/internal/engine/resolver"
	"importtree/internal/shared/observability"
)

// walker owns the reachability set of a single page. A new walker is created
// for every page, so nothing leaks between pages or concurrent runs.
type walker struct {
	ctx      context.Context
	parser   *parser.Parser
	resolver *resolver.Resolver
	diag     *Analyzer

	visited map[string]bool
	order   []string
}

func newWalker(ctx context.Context, p *parser.Parser, r *resolver.Resolver, diag *Analyzer) *walker {
	return &walker{
		ctx:      ctx,
		parser:   p,
		resolver: r,
		diag:     diag,
		visited:  make(map[string]bool),
	}
}

// visit marks path as reachable and then follows its specifiers depth-first
// in declaration order. Only context cancellation is returned.
func (w *walker) visit(path string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	path = filepath.Clean(path)
	if w.visited[path] {
		return nil
	}
	w.visited[path] = true
	w.order = append(w.order, path)
	observability.FilesVisited.Inc()

	if !w.parser.IsSupportedPath(path) {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		err = errors.AddContext(errors.Wrap(err, errors.CodeFileUnreadable, "could not read file"), errors.CtxPath, path)
		w.diag.warnIssue("skipping unreadable file", err, "path", path)
		return nil
	}

	start := time.Now()
	extraction, err := w.parser.ParseFile(path, content)
	if err != nil {
		w.diag.warnIssue("skipping unparsable file", err, "path", path)
		return nil
	}
	observability.ParsingDuration.WithLabelValues(extraction.Kind.String()).Observe(time.Since(start).Seconds())
	for _, issue := range extraction.Issues {
		w.diag.warnIssue("could not parse script region", issue, "path", path)
	}
	if len(extraction.Components) > 0 {
		w.diag.debug("component tags", "path", path, "components", extraction.Components)
	}

	dir := filepath.Dir(path)
	for _, spec := range extraction.Specifiers {
		targets, err := w.resolver.Resolve(spec.Value, dir)
		if err != nil {
			err = errors.AddContext(err, errors.CtxSpecifier, spec.Value)
			err = errors.AddContext(err, errors.CtxLine, spec.Line)
			w.diag.warnIssue("could not expand glob specifier", err, "path", path)
		}
		for _, target := range targets {
			if err := w.visit(target); err != nil {
				return err
			}
		}
	}
	return nil
}
