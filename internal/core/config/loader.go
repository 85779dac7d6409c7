package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to DefaultConfig when the file does
// not exist. Any other read, decode or validation failure is returned.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	return nil, false, err
}

// ResolvePath returns explicit when set, otherwise the default file name
// inside projectRoot.
func ResolvePath(explicit, projectRoot string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(projectRoot, DefaultFileName)
}
