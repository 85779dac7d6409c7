package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"importtree/internal/core/errors"
	"importtree/internal/engine/graph"
	"importtree/internal/engine/parser"
	"importtree/internal/engine/resolver"
	"importtree/internal/shared/observability"

	"github.com/gobwas/glob"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultPagesDir = "src/pages"

type Options struct {
	Dir         string   // Project root
	PagesDir    string   // Relative to Dir; DefaultPagesDir when empty
	ExcludeDirs []string // Directory base-name globs skipped during page discovery
}

// Analyzer builds import trees. It holds no per-run state, so one Analyzer
// may serve concurrent Parse calls.
type Analyzer struct {
	parser   *parser.Parser
	logger   *slog.Logger
	suppress atomic.Bool
}

// New creates an Analyzer. A nil logger logs through slog.Default at call time.
func New(logger *slog.Logger) (*Analyzer, error) {
	p, err := parser.NewParser(parser.NewGrammarLoader())
	if err != nil {
		return nil, err
	}
	return &Analyzer{parser: p, logger: logger}, nil
}

// SetSuppressWarnings silences diagnostics for subsequent Parse calls.
func (a *Analyzer) SetSuppressWarnings(suppress bool) {
	a.suppress.Store(suppress)
}

func (a *Analyzer) WarningsSuppressed() bool {
	return a.suppress.Load()
}

// Parse discovers every page under the pages root and computes, page by page,
// the set of project files reachable from it. Only discovery failures and
// context cancellation are returned; everything inside traversal is warned
// about and skipped.
func (a *Analyzer) Parse(ctx context.Context, opts Options) (_ *graph.ImportTree, err error) {
	ctx, span := observability.Tracer.Start(ctx, "Analyzer.Parse", trace.WithAttributes(attribute.String("dir", opts.Dir)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	defer prometheus.NewTimer(observability.AnalysisDuration).ObserveDuration()

	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid project path %q", opts.Dir))
	}
	pagesDir := opts.PagesDir
	if pagesDir == "" {
		pagesDir = DefaultPagesDir
	}
	pagesRoot := filepath.Join(root, pagesDir)

	excludes, err := compileGlobs(opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	entries, err := discoverPages(pagesRoot, excludes)
	if err != nil {
		return nil, err
	}

	res := resolver.NewResolver(root)
	tree := &graph.ImportTree{Pages: make([]graph.ImportTreePage, 0, len(entries))}
	for _, entry := range entries {
		page, err := a.parsePage(ctx, res, entry, root)
		if err != nil {
			return nil, err
		}
		tree.Pages = append(tree.Pages, page)
	}
	span.SetAttributes(attribute.Int("pages", len(tree.Pages)))
	return tree, nil
}

// parsePage traverses one page with a fresh walker.
func (a *Analyzer) parsePage(ctx context.Context, res *resolver.Resolver, entry graph.PageEntry, root string) (graph.ImportTreePage, error) {
	ctx, span := observability.Tracer.Start(ctx, "Analyzer.parsePage", trace.WithAttributes(attribute.String("page", entry.URLPath)))
	defer span.End()

	w := newWalker(ctx, a.parser, res, a)
	if err := w.visit(entry.FilePath); err != nil {
		return graph.ImportTreePage{}, err
	}
	observability.PagesAnalyzed.Inc()
	span.SetAttributes(attribute.Int("files", len(w.order)))
	return graph.NewPage(entry.URLPath, w.order, root), nil
}

func (a *Analyzer) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// warnIssue counts a recoverable condition and logs it unless suppressed.
func (a *Analyzer) warnIssue(msg string, err error, args ...any) {
	observability.TraversalWarnings.WithLabelValues(string(errors.CodeOf(err))).Inc()
	if a.suppress.Load() {
		return
	}
	a.log().Warn(msg, append(args, "error", err)...)
}

func (a *Analyzer) debug(msg string, args ...any) {
	if a.suppress.Load() {
		return
	}
	a.log().Debug(msg, args...)
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid exclude pattern %q", p))
		}
		out = append(out, g)
	}
	return out, nil
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer *Analyzer
	defaultErr      error
)

// Default returns the process-wide Analyzer used by the package-level helpers.
func Default() (*Analyzer, error) {
	defaultOnce.Do(func() {
		defaultAnalyzer, defaultErr = New(nil)
	})
	return defaultAnalyzer, defaultErr
}

// SetSuppressWarnings toggles diagnostics for every later Parse call made
// through the package-level helpers.
func SetSuppressWarnings(suppress bool) {
	if a, err := Default(); err == nil {
		a.SetSuppressWarnings(suppress)
	}
}

func Parse(ctx context.Context, opts Options) (*graph.ImportTree, error) {
	a, err := Default()
	if err != nil {
		return nil, err
	}
	return a.Parse(ctx, opts)
}
