package state

import (
	"database/sql"

	dbutil "github.com/llehouerou/crates/internal/db"
)

// TabState is the persisted arguments and cursor of one browser tab.
type TabState struct {
	Tab       string // tab key, e.g. "albums" or "artist:Nina Simone"
	Kind      string // profile kind name
	ArgID     int64
	ArgName   string
	CursorPos int
	Active    bool
}

func getTabs(db *sql.DB) ([]TabState, error) {
	rows, err := db.Query(`
		SELECT tab, kind, arg_id, arg_name, cursor_pos, active
		FROM navigation_state ORDER BY tab
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tabs []TabState
	for rows.Next() {
		var t TabState
		var argName sql.NullString
		var active int
		if err := rows.Scan(&t.Tab, &t.Kind, &t.ArgID, &argName, &t.CursorPos, &active); err != nil {
			return nil, err
		}
		t.ArgName = dbutil.NullStringValue(argName)
		t.Active = active != 0
		tabs = append(tabs, t)
	}
	return tabs, rows.Err()
}

func saveTab(db *sql.DB, t TabState) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		if t.Active {
			if _, err := tx.Exec(`UPDATE navigation_state SET active = 0`); err != nil {
				return err
			}
		}
		_, err := tx.Exec(`
			INSERT INTO navigation_state (tab, kind, arg_id, arg_name, cursor_pos, active)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(tab) DO UPDATE SET
				kind = excluded.kind,
				arg_id = excluded.arg_id,
				arg_name = excluded.arg_name,
				cursor_pos = excluded.cursor_pos,
				active = excluded.active
		`, t.Tab, t.Kind, t.ArgID, t.ArgName, t.CursorPos, boolInt(t.Active))
		return err
	})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
