package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// prismConfig is the optional prism.toml discovered by walking up from the
// working directory. Everything in it is a default; flags win.
type prismConfig struct {
	Render renderConfig `toml:"render"`
}

type renderConfig struct {
	Color    string `toml:"color"`    // auto|on|off
	Severity string `toml:"severity"` // default severity for `prism render`
}

func findPrismToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "prism.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadPrismConfig returns the discovered config, or zero defaults when no
// prism.toml exists anywhere up the tree.
func loadPrismConfig(startDir string) (prismConfig, error) {
	path, ok, err := findPrismToml(startDir)
	if err != nil || !ok {
		return prismConfig{}, err
	}

	var cfg prismConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return prismConfig{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return cfg, nil
}
