package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, "tasks.json", filepath.Base(cfg.Storage.Path))
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
backend = "yaml"
path = "~/tasks/list.yaml"

[ui]
sort = "priority"
descending = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, "yaml", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "tasks", "list.yaml"), cfg.Storage.Path)
	assert.Equal(t, "priority", cfg.UI.Sort)
	assert.True(t, cfg.UI.Descending)
	assert.True(t, cfg.UI.ShowDone, "unset keys keep their default")
}

func TestLoadFromRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[storage\nbackend="), 0644))
	_, err := LoadFrom(broken)
	assert.ErrorContains(t, err, "parsing config file")

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("[storage]\ndriver = \"sqlite\"\n"), 0644))
	_, err = LoadFrom(unknown)
	assert.ErrorContains(t, err, "unknown key storage.driver")
}

func TestSaveToThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Storage.Backend = "yaml"
	cfg.Storage.Path = "/tmp/tasks.yaml"
	cfg.UI.ShowDone = false

	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
