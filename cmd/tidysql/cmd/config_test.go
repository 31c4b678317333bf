package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindConfigPathFindsNearestAncestor(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	cfgPath := filepath.Join(root, "a", "tidysql.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[core]\ndialect = \"postgres\"\n"), 0o644))

	found, err := findConfigPath(sub)
	require.NoError(t, err)
	require.Equal(t, cfgPath, found)
}

func TestFindConfigPathReturnsEmptyWhenNoneExists(t *testing.T) {
	root := t.TempDir()
	found, err := findConfigPath(root)
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestFindConfigPathPrefersTOMLOverYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "tidysql.toml"), []byte("[core]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tidysql.yaml"), []byte("core:\n"), 0o644))

	found, err := findConfigPath(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "tidysql.toml"), found)
}

func TestLoadConfigFallsBackToDefault(t *testing.T) {
	root := t.TempDir()
	directory = root
	configPath = ""
	dialect = ""

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, "ansi", cfg.Core.Dialect)
}

func TestLoadConfigAppliesDialectOverride(t *testing.T) {
	root := t.TempDir()
	directory = root
	configPath = ""
	dialect = "tsql"
	defer func() { dialect = "" }()

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, "tsql", cfg.Core.Dialect)
}
