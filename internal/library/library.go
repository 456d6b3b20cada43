package library

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/flock"

	dbutil "github.com/llehouerou/crates/internal/db"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("not found")

type Library struct {
	db   *sql.DB
	lock *flock.Flock
}

func New(db *sql.DB) *Library {
	return &Library{db: db}
}

const songColumns = `
	t.id, t.title, t.album_id, al.name, t.artist_id, t.artist, t.path, t.track_number, t.year
`

const songJoins = `
	FROM library_tracks t
	JOIN albums al ON al.id = t.album_id
`

func scanSongs(rows *sql.Rows) ([]Song, error) {
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var s Song
		var trackNum, year sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Title, &s.AlbumID, &s.Album, &s.ArtistID, &s.Artist, &s.Path,
			&trackNum, &year); err != nil {
			return nil, err
		}
		s.TrackNumber = int(dbutil.NullInt64Value(trackNum))
		s.Year = int(dbutil.NullInt64Value(year))
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// Songs returns every song ordered by title.
func (l *Library) Songs(ctx context.Context) ([]Song, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT `+songColumns+songJoins+`
		ORDER BY t.title COLLATE NOCASE, t.id
	`)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

// SongsForAlbum returns the songs of an album in disc/track order.
func (l *Library) SongsForAlbum(ctx context.Context, albumID int64) ([]Song, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT `+songColumns+songJoins+`
		WHERE t.album_id = ?
		ORDER BY t.disc_number, t.track_number, t.title COLLATE NOCASE
	`, albumID)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

// SongsForArtist returns the songs of an album artist, album by album.
func (l *Library) SongsForArtist(ctx context.Context, artistID int64) ([]Song, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT `+songColumns+songJoins+`
		WHERE al.artist_id = ?
		ORDER BY (al.year IS NULL OR al.year = 0), al.year, al.name COLLATE NOCASE,
		         t.disc_number, t.track_number
	`, artistID)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

// SongsForGenre returns the songs tagged with a genre.
func (l *Library) SongsForGenre(ctx context.Context, genreID int64) ([]Song, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT `+songColumns+songJoins+`
		WHERE t.genre_id = ?
		ORDER BY t.artist COLLATE NOCASE, al.name COLLATE NOCASE, t.disc_number, t.track_number
	`, genreID)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

// SongIDsForAlbum returns the song ids of an album in play order.
func (l *Library) SongIDsForAlbum(ctx context.Context, albumID int64) ([]int64, error) {
	songs, err := l.SongsForAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	return SongIDs(songs), nil
}

// SongIDsForArtist returns the song ids of an album artist in play order.
func (l *Library) SongIDsForArtist(ctx context.Context, artistID int64) ([]int64, error) {
	songs, err := l.SongsForArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	return SongIDs(songs), nil
}

// SongIDsForGenre returns the song ids of a genre in play order.
func (l *Library) SongIDsForGenre(ctx context.Context, genreID int64) ([]int64, error) {
	songs, err := l.SongsForGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}
	return SongIDs(songs), nil
}

// SongByID returns a song, or ErrNotFound.
func (l *Library) SongByID(ctx context.Context, id int64) (*Song, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT `+songColumns+songJoins+` WHERE t.id = ?`, id)
	if err != nil {
		return nil, err
	}
	songs, err := scanSongs(rows)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, ErrNotFound
	}
	return &songs[0], nil
}

// SongsByIDs returns the songs for ids, in the order of ids. Unknown ids are skipped.
func (l *Library) SongsByIDs(ctx context.Context, ids []int64) ([]Song, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := l.db.QueryContext(ctx, `SELECT `+songColumns+songJoins+`
		WHERE t.id IN (`+dbutil.Placeholders(len(ids))+`)
	`, dbutil.Int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	songs, err := scanSongs(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}
	ordered := make([]Song, 0, len(songs))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// Albums returns every album ordered by artist then year.
func (l *Library) Albums(ctx context.Context) ([]Album, error) {
	return l.queryAlbums(ctx, `
		SELECT al.id, al.name, al.artist_id, ar.name, al.year, COUNT(t.id)
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		JOIN library_tracks t ON t.album_id = al.id
		GROUP BY al.id
		ORDER BY ar.name COLLATE NOCASE, (al.year IS NULL OR al.year = 0), al.year, al.name COLLATE NOCASE
	`)
}

// AlbumsForArtist returns the albums of an album artist.
func (l *Library) AlbumsForArtist(ctx context.Context, artistID int64) ([]Album, error) {
	return l.queryAlbums(ctx, `
		SELECT al.id, al.name, al.artist_id, ar.name, al.year, COUNT(t.id)
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		JOIN library_tracks t ON t.album_id = al.id
		WHERE al.artist_id = ?
		GROUP BY al.id
		ORDER BY (al.year IS NULL OR al.year = 0), al.year, al.name COLLATE NOCASE
	`, artistID)
}

func (l *Library) queryAlbums(ctx context.Context, query string, args ...any) ([]Album, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var a Album
		var year sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Name, &a.ArtistID, &a.Artist, &year, &a.SongCount); err != nil {
			return nil, err
		}
		a.Year = int(dbutil.NullInt64Value(year))
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// Artists returns every album artist with album and song counts.
func (l *Library) Artists(ctx context.Context) ([]Artist, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT ar.id, ar.name, COUNT(DISTINCT al.id), COUNT(t.id)
		FROM artists ar
		JOIN albums al ON al.artist_id = ar.id
		JOIN library_tracks t ON t.album_id = al.id
		GROUP BY ar.id
		ORDER BY ar.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.AlbumCount, &a.SongCount); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// ArtistByName looks an album artist up by exact name, or returns ErrNotFound.
func (l *Library) ArtistByName(ctx context.Context, name string) (*Artist, error) {
	var a Artist
	err := l.db.QueryRowContext(ctx, `
		SELECT ar.id, ar.name, COUNT(DISTINCT al.id), COUNT(t.id)
		FROM artists ar
		LEFT JOIN albums al ON al.artist_id = ar.id
		LEFT JOIN library_tracks t ON t.album_id = al.id
		WHERE ar.name = ?
		GROUP BY ar.id
	`, name).Scan(&a.ID, &a.Name, &a.AlbumCount, &a.SongCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Genres returns every genre that has songs.
func (l *Library) Genres(ctx context.Context) ([]Genre, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT g.id, g.name, COUNT(t.id)
		FROM genres g
		JOIN library_tracks t ON t.genre_id = g.id
		GROUP BY g.id
		ORDER BY g.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []Genre
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.SongCount); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// CoverPath returns the path of the first track of an album, used as the
// source of embedded cover art.
func (l *Library) CoverPath(ctx context.Context, albumID int64) (string, error) {
	var path string
	err := l.db.QueryRowContext(ctx, `
		SELECT path FROM library_tracks WHERE album_id = ?
		ORDER BY disc_number, track_number LIMIT 1
	`, albumID).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return path, err
}

// ArtistCoverPath returns the cover source of an artist's most recent album.
func (l *Library) ArtistCoverPath(ctx context.Context, artistID int64) (string, error) {
	var path string
	err := l.db.QueryRowContext(ctx, `
		SELECT t.path FROM library_tracks t
		JOIN albums al ON al.id = t.album_id
		WHERE al.artist_id = ?
		ORDER BY al.year DESC, t.disc_number, t.track_number LIMIT 1
	`, artistID).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return path, err
}

// TrackCount returns the number of songs in the library.
func (l *Library) TrackCount(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM library_tracks`).Scan(&count)
	return count, err
}

// DeleteSongs removes songs from the library along with albums, artists and
// genres left without songs. Files on disk are not touched.
func (l *Library) DeleteSongs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return dbutil.WithTxContext(ctx, l.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM library_tracks WHERE id IN (`+dbutil.Placeholders(len(ids))+`)
		`, dbutil.Int64Args(ids)...); err != nil {
			return err
		}
		return pruneOrphans(ctx, tx)
	})
}

func pruneOrphans(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM albums WHERE id NOT IN (SELECT DISTINCT album_id FROM library_tracks)`,
		`DELETE FROM artists WHERE id NOT IN (SELECT DISTINCT artist_id FROM albums)
			AND id NOT IN (SELECT DISTINCT artist_id FROM library_tracks)`,
		`DELETE FROM genres WHERE id NOT IN (
			SELECT DISTINCT genre_id FROM library_tracks WHERE genre_id IS NOT NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
