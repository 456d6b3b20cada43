package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/config"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/logging"
	"github.com/llehouerou/crates/internal/state"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path != "" {
			c.config, c.configErr = config.LoadFrom(path)
		} else {
			c.config, c.configErr = config.Load()
		}
		if c.configErr != nil {
			c.configErr = fmt.Errorf("load config: %w", c.configErr)
		}
	})
	return c.config, c.configErr
}

// openLogger opens the log file named by the config, or the XDG state
// location when none is set.
func (c *commandContext) openLogger(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" && cfg.LogLevel != logging.LevelOff {
		var err error
		if path, err = state.DefaultLogPath(); err != nil {
			return nil, nil, fmt.Errorf("log path: %w", err)
		}
	}
	return logging.New(cfg.LogLevel, path)
}

func (c *commandContext) openState(cfg *config.Config) (*state.Manager, error) {
	mgr, err := state.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return mgr, nil
}

func artworkDir(cfg *config.Config) string {
	dir := cfg.CacheDir
	if dir == "" {
		dir = state.DefaultCacheDir()
	}
	return filepath.Join(dir, "artwork")
}

// scanLockPath places the scan lock beside the database it guards.
func scanLockPath(cfg *config.Config) (string, error) {
	db := cfg.Database
	if db == "" {
		var err error
		if db, err = state.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return db + ".scan.lock", nil
}

// newLibrary opens the library of mgr guarded by the scan lock of cfg.
func newLibrary(cfg *config.Config, mgr *state.Manager) (*library.Library, error) {
	lockPath, err := scanLockPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("scan lock: %w", err)
	}
	return library.New(mgr.DB()).WithScanLock(lockPath), nil
}
