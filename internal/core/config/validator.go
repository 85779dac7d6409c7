package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"importtree/internal/shared/util"

	"github.com/gobwas/glob"
)

func Validate(cfg *Config) error {
	if err := validatePagesDir(cfg); err != nil {
		return err
	}
	if err := validateExclude(cfg); err != nil {
		return err
	}
	if err := validateWatch(cfg); err != nil {
		return err
	}
	return validateOutput(cfg)
}

func validatePagesDir(cfg *Config) error {
	if filepath.IsAbs(strings.TrimSpace(cfg.PagesDir)) {
		return fmt.Errorf("pages_dir must be relative to the project root, got %q", cfg.PagesDir)
	}
	dir := util.NormalizePatternPath(cfg.PagesDir)
	if dir == "" {
		return fmt.Errorf("pages_dir must not be empty")
	}
	if dir == ".." || strings.HasPrefix(dir, "../") {
		return fmt.Errorf("pages_dir must stay inside the project root, got %q", cfg.PagesDir)
	}
	cfg.PagesDir = dir
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Dirs {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude.dirs[%d] must not be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude.dirs[%d] pattern %q: %w", i, pattern, err)
		}
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", cfg.Watch.Debounce)
	}
	if cfg.Watch.MinInterval < 0 {
		return fmt.Errorf("watch.min_interval must be >= 0, got %s", cfg.Watch.MinInterval)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	format := strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("output.format must be one of: %s", strings.Join(Formats, ", "))
	}
	cfg.Output.Format = format
	return nil
}
