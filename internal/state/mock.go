// internal/state/mock.go
package state

import (
	"database/sql"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	tabs     map[string]TabState
	settings map[string]string
	layouts  map[string]string
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		tabs:     make(map[string]TabState),
		settings: make(map[string]string),
		layouts:  make(map[string]string),
	}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveTab(tab TabState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabs[tab.Tab] = tab
}

func (m *Mock) GetTabs() ([]TabState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tabs := make([]TabState, 0, len(m.tabs))
	for _, t := range m.tabs {
		tabs = append(tabs, t)
	}
	return tabs, nil
}

func (m *Mock) GetSetting(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings[key], nil
}

func (m *Mock) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *Mock) LayoutOverrides() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.layouts))
	for k, v := range m.layouts {
		out[k] = v
	}
	return out, nil
}

func (m *Mock) SaveLayout(kind, layout string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layouts[kind] = layout
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// IsClosed returns whether Close was called.
func (m *Mock) IsClosed() bool {
	return m.closed
}
