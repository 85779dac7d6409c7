package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	coreapp "importtree/internal/core/app"
	"importtree/internal/core/config"
	"importtree/internal/core/errors"
	"importtree/internal/core/watcher"
	"importtree/internal/engine/resolver"
	"importtree/internal/shared/observability"
	"importtree/internal/shared/util"
	"importtree/internal/ui/report/formats"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Run executes the CLI and returns the process exit code: 0 on success, 1 when
// analysis or output fails, 2 on usage errors.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintln(stderr, "Run 'importtree --help' for usage.")
	return 2
}

// session is one resolved invocation: config merged with flags.
type session struct {
	root     string
	format   string
	cfg      *config.Config
	quiet    bool
	out      string
	stdout   io.Writer
	logger   *slog.Logger
	analyzer *coreapp.Analyzer
	writeMu  sync.Mutex
}

func runAnalysis(cmd *cobra.Command, opts *cliOptions, format, projectPath string, stdout, stderr io.Writer) error {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return runFailure(errors.Wrap(err, errors.CodeValidationError, "invalid project path"))
	}

	cfg, err := loadConfig(opts.configPath, root)
	if err != nil {
		return runFailure(err)
	}
	applyFlags(cmd, cfg, opts)
	if format != "" {
		cfg.Output.Format = format
	}
	if err := config.Validate(cfg); err != nil {
		return runFailure(err)
	}

	logger := configureLogging(stderr, opts.verbose)

	shutdown, err := observability.SetupTracing(cmd.Context(), cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.OTLPInsecure)
	if err != nil {
		return runFailure(errors.Wrap(err, errors.CodeValidationError, "configure tracing"))
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	analyzer, err := coreapp.New(logger)
	if err != nil {
		return runFailure(err)
	}
	analyzer.SetSuppressWarnings(cfg.Quiet)

	s := &session{
		root:     root,
		format:   cfg.Output.Format,
		cfg:      cfg,
		quiet:    cfg.Quiet,
		out:      cfg.Output.Path,
		stdout:   stdout,
		logger:   logger,
		analyzer: analyzer,
	}

	if !s.quiet {
		fmt.Fprintf(stderr, "Analyzing Astro project at: %s\n", root)
	}

	ctx := cmd.Context()
	if err := s.renderOnce(ctx); err != nil {
		return runFailure(err)
	}
	if !opts.watch {
		return nil
	}
	if err := s.watch(ctx); err != nil {
		return runFailure(err)
	}
	return nil
}

// loadConfig reads an explicit --config strictly; the implicit project file
// is optional.
func loadConfig(explicit, root string) (*config.Config, error) {
	path := config.ResolvePath(explicit, root)
	if explicit != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "load config"), errors.CtxPath, path)
		}
		return cfg, nil
	}
	cfg, _, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "load config"), errors.CtxPath, path)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *cliOptions) {
	flags := cmd.Flags()
	if flags.Changed("pages-dir") {
		cfg.PagesDir = opts.pagesDir
	}
	if opts.quiet {
		cfg.Quiet = true
	}
	if flags.Changed("out") {
		cfg.Output.Path = opts.out
	}
	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = opts.metricsFile
	}
	if flags.Changed("otlp-endpoint") {
		cfg.Telemetry.OTLPEndpoint = opts.otlpEndpoint
	}
}

// configureLogging routes slog through a charmbracelet/log handler on stderr.
func configureLogging(stderr io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "importtree",
	})
	handler.SetStyles(logStyles())
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// logStyles makes recoverable warnings stand out from debug chatter.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("214"))
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Faint(true).
		MaxWidth(4)
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return styles
}

func (s *session) renderOnce(ctx context.Context) error {
	tree, err := s.analyzer.Parse(ctx, coreapp.Options{
		Dir:         s.root,
		PagesDir:    s.cfg.PagesDir,
		ExcludeDirs: s.cfg.Exclude.Dirs,
	})
	if err != nil {
		return err
	}
	rendered, err := formats.Render(s.format, tree)
	if err != nil {
		return err
	}
	if err := s.write(rendered); err != nil {
		return err
	}
	return s.writeMetrics()
}

func (s *session) writeMetrics() error {
	path := s.cfg.Telemetry.MetricsFile
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "create metrics directory"), errors.CtxPath, path)
	}
	if err := observability.WriteTextfile(path); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write metrics"), errors.CtxPath, path)
	}
	return nil
}

func (s *session) write(rendered string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if s.out == "" {
		_, err := io.WriteString(s.stdout, rendered)
		return err
	}
	if err := util.WriteStringWithDirs(s.out, rendered, 0o644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write output"), errors.CtxPath, s.out)
	}
	s.logger.Debug("wrote output", "path", s.out, "format", s.format)
	return nil
}

// watch re-renders after every debounced batch of changes under the watch
// roots until ctx is cancelled. Batches arriving faster than watch.min_interval
// wait their turn.
func (s *session) watch(ctx context.Context) error {
	limiter := util.NewLimiter(s.cfg.Watch.MinInterval, 1)
	w, err := watcher.NewWatcher(s.cfg.Watch.Debounce, s.cfg.Exclude.Dirs, s.logger, func(paths []string) {
		s.logger.Debug("change detected", "files", len(paths))
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		if err := s.renderOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Error("re-analysis failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	roots := watchRoots(s.root, s.cfg.PagesDir)
	if err := w.Watch(roots); err != nil {
		return err
	}
	if !s.quiet {
		s.logger.Info("watching for changes", "dirs", roots)
	}

	<-ctx.Done()
	return nil
}

// watchRoots returns <root>/src plus the pages root when it lies outside src.
// A missing src directory is skipped in that case.
func watchRoots(root, pagesDir string) []string {
	src := filepath.Join(root, resolver.SourceDir)
	pages := filepath.Join(root, filepath.FromSlash(pagesDir))
	if util.HasPathPrefix(filepath.ToSlash(pages), filepath.ToSlash(src)) {
		return []string{src}
	}
	var roots []string
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		roots = append(roots, src)
	}
	return append(roots, pages)
}
