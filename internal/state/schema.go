package state

import (
	"database/sql"
)

const currentSchemaVersion = 3

// InitSchema creates all tables used by the application. It is idempotent.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS navigation_state (
			tab TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			arg_id INTEGER NOT NULL DEFAULT 0,
			arg_name TEXT,
			cursor_pos INTEGER NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS layout_prefs (
			kind TEXT PRIMARY KEY,
			layout TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS artists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS albums (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			year INTEGER,
			UNIQUE(artist_id, name)
		);

		CREATE TABLE IF NOT EXISTS genres (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS library_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			artist_id INTEGER NOT NULL REFERENCES artists(id),
			album_id INTEGER NOT NULL REFERENCES albums(id),
			genre_id INTEGER REFERENCES genres(id),
			disc_number INTEGER,
			track_number INTEGER,
			year INTEGER,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_album ON library_tracks(album_id);
		CREATE INDEX IF NOT EXISTS idx_tracks_artist ON library_tracks(artist_id);
		CREATE INDEX IF NOT EXISTS idx_tracks_genre ON library_tracks(genre_id);

		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL,
			last_used_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			library_track_id INTEGER NOT NULL REFERENCES library_tracks(id) ON DELETE CASCADE,
			UNIQUE(playlist_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist ON playlist_tracks(playlist_id, position);

		CREATE TABLE IF NOT EXISTS favorites (
			song_id INTEGER PRIMARY KEY,
			song_name TEXT NOT NULL,
			album_name TEXT NOT NULL,
			artist_name TEXT NOT NULL,
			added_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recents (
			song_id INTEGER PRIMARY KEY,
			song_name TEXT NOT NULL,
			album_name TEXT NOT NULL,
			artist_name TEXT NOT NULL,
			played_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recents_played ON recents(played_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
