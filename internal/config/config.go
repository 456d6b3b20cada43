package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultRefreshCooldown = 10 * time.Second
	defaultRecentsLimit    = 100
	defaultLogLevel        = "info"
)

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // paths to scan for music library

	// Minimum interval between two view refreshes, shared by every view.
	RefreshCooldown time.Duration `koanf:"refresh_cooldown"`
	// Upper bound for one view load. Zero waits indefinitely.
	LoadTimeout time.Duration `koanf:"load_timeout"`

	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error" or "off"
	LogFile  string `koanf:"log_file"`  // empty means the XDG state dir

	Database string `koanf:"database"` // empty means the XDG data dir
	CacheDir string `koanf:"cache_dir"`

	// Layout per view kind: "simple", "grid" or "detailed".
	Layouts map[string]string `koanf:"layouts"`

	RecentsLimit int `koanf:"recents_limit"`

	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"

	Notifications bool `koanf:"notifications"` // desktop notifications via D-Bus
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order (last wins). Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.Database = expandPath(cfg.Database)
	cfg.CacheDir = expandPath(cfg.CacheDir)

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RefreshCooldown <= 0 {
		c.RefreshCooldown = defaultRefreshCooldown
	}
	if c.LoadTimeout < 0 {
		c.LoadTimeout = 0
	}
	if c.RecentsLimit <= 0 {
		c.RecentsLimit = defaultRecentsLimit
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Layouts == nil {
		c.Layouts = map[string]string{}
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/crates/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "crates", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// expandPath resolves a leading "~" or "~/" against the home directory.
// "~user" forms are left alone.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
