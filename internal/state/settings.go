package state

import (
	"database/sql"
	"errors"
)

// Settings keys.
const (
	SettingRingtone = "ringtone_song_id"
)

// GetSetting returns the stored value for key, or "" when unset.
func (m *Manager) GetSetting(key string) (string, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSetting stores value under key.
func (m *Manager) SetSetting(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// LayoutOverrides returns the runtime layout choices keyed by profile kind.
func (m *Manager) LayoutOverrides() (map[string]string, error) {
	rows, err := m.db.Query(`SELECT kind, layout FROM layout_prefs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	layouts := make(map[string]string)
	for rows.Next() {
		var kind, layout string
		if err := rows.Scan(&kind, &layout); err != nil {
			return nil, err
		}
		layouts[kind] = layout
	}
	return layouts, rows.Err()
}

// SaveLayout persists the layout chosen for a profile kind.
func (m *Manager) SaveLayout(kind, layout string) error {
	_, err := m.db.Exec(`
		INSERT INTO layout_prefs (kind, layout) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET layout = excluded.layout
	`, kind, layout)
	return err
}
