package cli

import (
	"fmt"
	"io"

	"importtree/internal/core/config"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "1.0.0"

type cliOptions struct {
	pagesDir   string
	quiet      bool
	configPath string
	out        string
	watch      bool
	verbose    bool

	metricsFile  string
	otlpEndpoint string
}

// ExitError carries the process exit code for failures past argument parsing.
// Every other error returned by the command tree is a usage error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func runFailure(err error) error {
	return &ExitError{Code: 1, Err: err}
}

var formatSummaries = map[string]string{
	config.FormatLLM:     "Print imports grouped per page as bullet lists",
	config.FormatJSON:    "Print the import tree as indented JSON",
	config.FormatDOT:     "Print page -> import edges as a Graphviz digraph",
	config.FormatMermaid: "Print page -> import edges as a Mermaid flowchart",
	config.FormatTSV:     "Print page -> import edges as tab-separated rows",
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "importtree [project-path]",
		Short: "List the files every Astro page can reach through imports",
		Long: `importtree walks each page under the pages directory, follows its imports,
dynamic imports, Astro.glob calls and <script> imports, and prints the set of
project files each page depends on.

Without a subcommand the format comes from importtree.toml (default "llm").`,
		Example: `  importtree llm ./my-astro-project
  importtree json ./my-astro-project --pages-dir src/content
  importtree llm ./my-astro-project --quiet`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, opts, "", args[0], stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("importtree v{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.pagesDir, "pages-dir", "", "Pages directory relative to project root (default: src/pages)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress warning messages")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: <project-path>/"+config.DefaultFileName+")")
	flags.StringVarP(&opts.out, "out", "o", "", "Write output to this file instead of stdout")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever files under src/ change")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after each render")
	flags.StringVar(&opts.otlpEndpoint, "otlp-endpoint", "", "Export traces to this OTLP/gRPC collector (host:port)")

	for _, format := range config.Formats {
		root.AddCommand(newFormatCmd(format, opts, stdout, stderr))
	}
	return root
}

func newFormatCmd(format string, opts *cliOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           fmt.Sprintf("%s <project-path>", format),
		Short:         formatSummaries[format],
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, opts, format, args[0], stdout, stderr)
		},
	}
}
