package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidysql/tidysql/config"
)

// configFileNames are tried, in order, at each ancestor directory
// during discovery. TOML is preferred since the original tidysql
// config crate is TOML-first; YAML is accepted for parity with the
// teacher's own sqlcode.yaml convention.
var configFileNames = []string{"tidysql.toml", "tidysql.yaml", "tidysql.yml"}

// loadConfig resolves the active configuration the way the original
// tidysql-config crate's load_config does: an explicit --config path
// wins outright, otherwise every ancestor of dir is searched for one
// of configFileNames, and an unconfigured tree falls back to
// config.Default().
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		found, err := findConfigPath(directory)
		if err != nil {
			return config.Config{}, err
		}
		path = found
	}

	if path == "" {
		cfg := config.Default()
		applyDialectOverride(&cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg config.Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		cfg, err = config.LoadYAML(data)
	default:
		cfg, err = config.LoadTOML(data)
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDialectOverride(&cfg)
	return cfg, nil
}

func applyDialectOverride(cfg *config.Config) {
	if dialect != "" {
		cfg.Core.Dialect = dialect
	}
}

// findConfigPath walks dir and its ancestors looking for one of
// configFileNames, mirroring find_config_path's ancestor search.
func findConfigPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(abs, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}
