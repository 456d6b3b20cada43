package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "crates"
	dbFileName   = "crates.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]TabState
}

// Open opens the database at path, or at the XDG data location when path is
// empty, and initializes the schema.
func Open(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return NewManager(db), nil
}

// NewManager wraps an already initialized database.
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db, pending: make(map[string]TabState)}
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.takePending()
	m.saveMu.Unlock()

	for _, tab := range pending {
		_ = saveTab(m.db, tab)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) GetTabs() ([]TabState, error) {
	return getTabs(m.db)
}

// SaveTab records tab state. Writes are debounced; Close flushes them.
func (m *Manager) SaveTab(tab TabState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[tab.Tab] = tab

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.takePending()
		m.saveMu.Unlock()

		for _, tab := range pending {
			_ = saveTab(m.db, tab)
		}
	})
}

// takePending must be called with saveMu held.
func (m *Manager) takePending() []TabState {
	if len(m.pending) == 0 {
		return nil
	}
	tabs := make([]TabState, 0, len(m.pending))
	for _, tab := range m.pending {
		tabs = append(tabs, tab)
	}
	m.pending = make(map[string]TabState)
	return tabs
}

// DefaultDBPath returns the XDG data path of the database.
func DefaultDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// DefaultLogPath returns the XDG state path of the log file.
func DefaultLogPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// DefaultCacheDir returns the XDG cache directory of the application.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// OpenInMemory returns a single-connection in-memory database with the schema
// initialized. Used by tests across packages.
func OpenInMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
