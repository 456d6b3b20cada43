// Package logging sets up the application logger. The terminal belongs to
// the TUI, so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LevelOff disables logging.
const LevelOff = "off"

// New returns a logger writing to path at level. The returned closer releases
// the file. With LevelOff the logger discards everything.
func New(level, path string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if level == LevelOff {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(lvl)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Discard returns an entry that drops everything. Used in tests and as the
// fallback for optional loggers.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// Component returns an entry tagged with a component field.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
