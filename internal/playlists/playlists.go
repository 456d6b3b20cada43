package playlists

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/crates/internal/db"
	"github.com/llehouerou/crates/internal/library"
)

// ErrNotFound is returned when a playlist does not exist.
var ErrNotFound = errors.New("playlist not found")

// Playlists provides database operations for playlists.
type Playlists struct {
	db  *sql.DB
	lib *library.Library
}

// New creates a new Playlists instance.
func New(db *sql.DB, lib *library.Library) *Playlists {
	return &Playlists{db: db, lib: lib}
}

// Create creates a new empty playlist.
func (p *Playlists) Create(name string) (int64, error) {
	now := time.Now().Unix()
	result, err := p.db.Exec(`
		INSERT INTO playlists (name, created_at, last_used_at)
		VALUES (?, ?, ?)
	`, name, now, now)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Rename renames a playlist.
func (p *Playlists) Rename(id int64, name string) error {
	_, err := p.db.Exec(`UPDATE playlists SET name = ? WHERE id = ?`, name, id)
	return err
}

// Delete deletes a playlist and all its tracks.
func (p *Playlists) Delete(id int64) error {
	_, err := p.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	return err
}

const playlistQuery = `
	SELECT p.id, p.name, p.last_used_at, COUNT(pt.id)
	FROM playlists p
	LEFT JOIN playlist_tracks pt ON pt.playlist_id = p.id
`

func scanPlaylist(scan func(dest ...any) error) (library.Playlist, error) {
	var pl library.Playlist
	var lastUsed int64
	if err := scan(&pl.ID, &pl.Name, &lastUsed, &pl.SongCount); err != nil {
		return pl, err
	}
	pl.LastUsedAt = time.Unix(lastUsed, 0)
	return pl, nil
}

// List returns all playlists, most recently used first.
func (p *Playlists) List() ([]library.Playlist, error) {
	rows, err := p.db.Query(playlistQuery + `
		GROUP BY p.id
		ORDER BY p.last_used_at DESC, p.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []library.Playlist
	for rows.Next() {
		pl, err := scanPlaylist(rows.Scan)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	return playlists, rows.Err()
}

// Get returns a playlist by its ID, or ErrNotFound.
func (p *Playlists) Get(id int64) (*library.Playlist, error) {
	row := p.db.QueryRow(playlistQuery+` WHERE p.id = ? GROUP BY p.id`, id)
	pl, err := scanPlaylist(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

// UpdateLastUsed updates the last_used_at timestamp for a playlist.
func (p *Playlists) UpdateLastUsed(id int64) error {
	now := time.Now().Unix()
	_, err := p.db.Exec(`UPDATE playlists SET last_used_at = ? WHERE id = ?`, now, id)
	return err
}

// SongIDs returns the library ids of a playlist's songs in playlist order.
func (p *Playlists) SongIDs(playlistID int64) ([]int64, error) {
	rows, err := p.db.Query(`
		SELECT library_track_id FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	return dbutil.ScanInt64s(rows)
}

// Songs returns a playlist's songs in playlist order.
func (p *Playlists) Songs(ctx context.Context, playlistID int64) ([]library.Song, error) {
	ids, err := p.SongIDs(playlistID)
	if err != nil {
		return nil, err
	}
	return p.lib.SongsByIDs(ctx, ids)
}

// TrackCount returns the number of tracks in a playlist.
func (p *Playlists) TrackCount(playlistID int64) (int, error) {
	var count int
	err := p.db.QueryRow(`
		SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ?
	`, playlistID).Scan(&count)
	return count, err
}

// AddSongs appends songs to a playlist and marks it as used.
func (p *Playlists) AddSongs(playlistID int64, songIDs []int64) error {
	if len(songIDs) == 0 {
		return nil
	}

	return dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		var maxPos sql.NullInt64
		err := tx.QueryRow(`
			SELECT MAX(position) FROM playlist_tracks WHERE playlist_id = ?
		`, playlistID).Scan(&maxPos)
		if err != nil {
			return err
		}

		nextPos := 0
		if maxPos.Valid {
			nextPos = int(maxPos.Int64) + 1
		}

		stmt, err := tx.Prepare(`
			INSERT INTO playlist_tracks (playlist_id, position, library_track_id)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, songID := range songIDs {
			if _, err := stmt.Exec(playlistID, nextPos+i, songID); err != nil {
				return err
			}
		}

		_, err = tx.Exec(`UPDATE playlists SET last_used_at = ? WHERE id = ?`,
			time.Now().Unix(), playlistID)
		return err
	})
}

// RemoveSong removes every occurrence of a song from a playlist and closes
// the position gaps.
func (p *Playlists) RemoveSong(songID, playlistID int64) error {
	return dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		rows, err := tx.Query(`
			SELECT position FROM playlist_tracks
			WHERE playlist_id = ? AND library_track_id = ?
			ORDER BY position DESC
		`, playlistID, songID)
		if err != nil {
			return err
		}
		positions, err := dbutil.ScanInt64s(rows)
		if err != nil {
			return err
		}

		// Highest first so earlier positions stay valid while shifting.
		for _, pos := range positions {
			if _, err := tx.Exec(`
				DELETE FROM playlist_tracks WHERE playlist_id = ? AND position = ?
			`, playlistID, pos); err != nil {
				return err
			}
			if err := shiftDown(tx, playlistID, pos); err != nil {
				return err
			}
		}
		return nil
	})
}

// shiftDown moves positions after pos up by one, one row at a time in
// ascending order to respect UNIQUE(playlist_id, position).
func shiftDown(tx *sql.Tx, playlistID, pos int64) error {
	rows, err := tx.Query(`
		SELECT position FROM playlist_tracks
		WHERE playlist_id = ? AND position > ?
		ORDER BY position
	`, playlistID, pos)
	if err != nil {
		return err
	}
	after, err := dbutil.ScanInt64s(rows)
	if err != nil {
		return err
	}
	for _, p := range after {
		if _, err := tx.Exec(`
			UPDATE playlist_tracks SET position = position - 1
			WHERE playlist_id = ? AND position = ?
		`, playlistID, p); err != nil {
			return err
		}
	}
	return nil
}

// SetSongs replaces all songs in a playlist.
func (p *Playlists) SetSongs(playlistID int64, songIDs []int64) error {
	return dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, playlistID); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO playlist_tracks (playlist_id, position, library_track_id)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range songIDs {
			if _, err := stmt.Exec(playlistID, i, id); err != nil {
				return err
			}
		}
		return nil
	})
}
