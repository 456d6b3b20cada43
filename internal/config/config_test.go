package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	for in, want := range map[string]string{
		"~/Music/crates":  filepath.Join(home, "Music", "crates"),
		"~":               home,
		"~/":              home,
		"/srv/music":      "/srv/music",
		"relative/albums": "relative/albums",
		"":                "",
		"~someone/music":  "~someone/music",
	} {
		assert.Equal(t, want, expandPath(in), "expandPath(%q)", in)
	}
}

func TestConfigPaths_LocalFileLast(t *testing.T) {
	paths := getConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "config.toml", paths[len(paths)-1])

	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, ".config", "crates", "config.toml"), paths[0])
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.RefreshCooldown)
	assert.Equal(t, time.Duration(0), cfg.LoadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.RecentsLimit)
	assert.NotNil(t, cfg.Layouts)
}

func TestLoadFrom_LastFileWins(t *testing.T) {
	dir := t.TempDir()
	first := writeConfig(t, dir, "a.toml", `
library_sources = ["/music"]
refresh_cooldown = "30s"
log_level = "DEBUG"

[layouts]
albums = "detailed"
`)
	second := writeConfig(t, dir, "b.toml", `
load_timeout = "2s"
recents_limit = 25
icons = "nerd"
notifications = true

[layouts]
albums = "simple"
`)

	cfg, err := LoadFrom(first, second)
	require.NoError(t, err)

	assert.Equal(t, []string{"/music"}, cfg.LibrarySources)
	assert.Equal(t, 30*time.Second, cfg.RefreshCooldown)
	assert.Equal(t, 2*time.Second, cfg.LoadTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.RecentsLimit)
	assert.Equal(t, "nerd", cfg.Icons)
	assert.True(t, cfg.Notifications)
	assert.Equal(t, "simple", cfg.Layouts["albums"])
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "library_sources = [")
	_, err := LoadFrom(path)
	require.Error(t, err)
}
