package config

import (
	"time"
)

// DefaultFileName is looked up in the project root when no --config is given.
const DefaultFileName = "importtree.toml"

const (
	FormatLLM     = "llm"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatTSV     = "tsv"
)

// Formats lists every renderer the CLI can select.
var Formats = []string{FormatLLM, FormatJSON, FormatDOT, FormatMermaid, FormatTSV}

type Config struct {
	PagesDir  string    `toml:"pages_dir"`
	Quiet     bool      `toml:"quiet"`
	Exclude   Exclude   `toml:"exclude"`
	Watch     Watch     `toml:"watch"`
	Output    Output    `toml:"output"`
	Telemetry Telemetry `toml:"telemetry"`
}

type Exclude struct {
	Dirs []string `toml:"dirs"` // Glob patterns matched against directory base names
}

type Watch struct {
	Debounce    time.Duration `toml:"debounce"`
	MinInterval time.Duration `toml:"min_interval"` // Minimum gap between re-analyses; 0 disables
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"` // Empty writes to stdout
}

type Telemetry struct {
	MetricsFile  string `toml:"metrics_file"`  // Prometheus textfile written after each render
	OTLPEndpoint string `toml:"otlp_endpoint"` // host:port of an OTLP/gRPC collector
	OTLPInsecure bool   `toml:"otlp_insecure"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.PagesDir == "" {
		cfg.PagesDir = "src/pages"
	}
	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = []string{"node_modules", ".git"}
	}
	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatLLM
	}
}
