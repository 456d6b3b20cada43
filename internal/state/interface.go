package state

import "database/sql"

// Store is what the app needs from Manager; Mock implements it for tests.
type Store interface {
	DB() *sql.DB
	SaveTab(tab TabState)
	GetTabs() ([]TabState, error)
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	LayoutOverrides() (map[string]string, error)
	SaveLayout(kind, layout string) error
	Close() error
}

var (
	_ Store = (*Manager)(nil)
	_ Store = (*Mock)(nil)
)
