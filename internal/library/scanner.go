package library

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"

	dbutil "github.com/llehouerou/crates/internal/db"
)

const numWorkers = 8

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase       string // "scanning", "processing", "cleaning", "done"
	Current     int
	Total       int
	CurrentFile string
}

// ScanStats holds statistics for a completed scan.
type ScanStats struct {
	Added   int
	Updated int
	Removed int
	Skipped int
}

// TrackInfo holds the tags of one audio file.
type TrackInfo struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Year        int
	Track       int
	Disc        int
}

type fileInfo struct {
	path  string
	mtime int64
}

type trackResult struct {
	file fileInfo
	info *TrackInfo
}

var musicExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
	".opus": true,
}

// IsMusicFile reports whether path has a supported audio extension.
func IsMusicFile(path string) bool {
	return musicExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReadTrackInfo reads the tags of an audio file.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}

	track, _ := m.Track()
	disc, _ := m.Disc()

	return &TrackInfo{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		Genre:       m.Genre(),
		Year:        m.Year(),
		Track:       track,
		Disc:        disc,
	}, nil
}

// ExtractCoverArt reads embedded cover art from an audio file.
// Returns nil data when no picture is embedded.
func ExtractCoverArt(path string) (data []byte, mimeType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", err
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}

// Scan walks sources, imports new or modified files and removes tracks whose
// files disappeared. progress may be nil.
func (l *Library) Scan(ctx context.Context, sources []string, progress chan<- ScanProgress) (*ScanStats, error) {
	release, err := l.acquireScanLock()
	if err != nil {
		return nil, err
	}
	defer release()

	report := func(p ScanProgress) {
		if progress != nil {
			progress <- p
		}
	}

	report(ScanProgress{Phase: "scanning"})
	files, discovered := discoverFiles(ctx, sources)

	existing, err := l.existingTracks(ctx, sources)
	if err != nil {
		return nil, err
	}

	stats := &ScanStats{}
	toProcess := make([]fileInfo, 0, len(files))
	for _, f := range files {
		if mtime, ok := existing[f.path]; ok && mtime == f.mtime {
			continue
		}
		toProcess = append(toProcess, f)
	}

	results := readTags(ctx, toProcess)
	for i, r := range results {
		report(ScanProgress{Phase: "processing", Current: i + 1, Total: len(results), CurrentFile: r.file.path})
		if r.info == nil || r.info.Album == "" || r.info.AlbumArtist == "" {
			stats.Skipped++
			continue
		}
		if err := l.upsertTrack(ctx, r.file, r.info); err != nil {
			return stats, err
		}
		if _, ok := existing[r.file.path]; ok {
			stats.Updated++
		} else {
			stats.Added++
		}
	}

	report(ScanProgress{Phase: "cleaning"})
	var removed []int64
	for path := range existing {
		if discovered[path] {
			continue
		}
		var id int64
		err := l.db.QueryRowContext(ctx, `SELECT id FROM library_tracks WHERE path = ?`, path).Scan(&id)
		if err == nil {
			removed = append(removed, id)
		}
	}
	if err := l.DeleteSongs(ctx, removed); err != nil {
		return stats, err
	}
	stats.Removed = len(removed)

	report(ScanProgress{Phase: "done", Current: len(files), Total: len(files)})
	return stats, nil
}

func discoverFiles(ctx context.Context, sources []string) ([]fileInfo, map[string]bool) {
	var files []fileInfo
	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if walkErr != nil {
				return nil //nolint:nilerr // keep scanning the other paths
			}
			if d.IsDir() || !IsMusicFile(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // unreadable file is skipped
			}
			files = append(files, fileInfo{path: path, mtime: info.ModTime().Unix()})
			return nil
		})
	}

	discovered := make(map[string]bool, len(files))
	for _, f := range files {
		discovered[f.path] = true
	}
	return files, discovered
}

// readTags reads tags with a fixed worker pool, preserving input order.
func readTags(ctx context.Context, files []fileInfo) []trackResult {
	results := make([]trackResult, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				info, err := ReadTrackInfo(files[i].path)
				if err != nil {
					info = nil
				}
				results[i] = trackResult{file: files[i], info: info}
			}
		}()
	}

	for i := range files {
		if ctx.Err() != nil {
			break
		}
		work <- i
	}
	close(work)
	wg.Wait()
	return results
}

func (l *Library) existingTracks(ctx context.Context, sources []string) (map[string]int64, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT path, mtime FROM library_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		for _, src := range sources {
			if strings.HasPrefix(path, src) {
				tracks[path] = mtime
				break
			}
		}
	}
	return tracks, rows.Err()
}

// AddTrack inserts or updates a single track. The scanner uses it for every
// imported file; tests use it to seed the catalogue.
func (l *Library) AddTrack(ctx context.Context, info *TrackInfo) (int64, error) {
	if err := l.upsertTrack(ctx, fileInfo{path: info.Path, mtime: time.Now().Unix()}, info); err != nil {
		return 0, err
	}
	var id int64
	err := l.db.QueryRowContext(ctx, `SELECT id FROM library_tracks WHERE path = ?`, info.Path).Scan(&id)
	return id, err
}

func (l *Library) upsertTrack(ctx context.Context, f fileInfo, info *TrackInfo) error {
	now := time.Now().Unix()
	return dbutil.WithTxContext(ctx, l.db, func(tx *sql.Tx) error {
		artistID, err := ensureRow(ctx, tx, `artists`, `name = ?`,
			`INSERT INTO artists (name) VALUES (?)`, info.AlbumArtist)
		if err != nil {
			return err
		}

		albumID, err := ensureRow(ctx, tx, `albums`, `artist_id = ? AND name = ?`,
			`INSERT INTO albums (artist_id, name) VALUES (?, ?)`, artistID, info.Album)
		if err != nil {
			return err
		}
		if info.Year > 0 {
			if _, err := tx.ExecContext(ctx, `
				UPDATE albums SET year = MAX(COALESCE(year, 0), ?) WHERE id = ?
			`, info.Year, albumID); err != nil {
				return err
			}
		}

		var genreID sql.NullInt64
		if info.Genre != "" {
			id, err := ensureRow(ctx, tx, `genres`, `name = ?`,
				`INSERT INTO genres (name) VALUES (?)`, info.Genre)
			if err != nil {
				return err
			}
			genreID = sql.NullInt64{Int64: id, Valid: true}
		}

		artist := info.Artist
		if artist == "" {
			artist = info.AlbumArtist
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO library_tracks (path, mtime, title, artist, artist_id, album_id, genre_id,
			                            disc_number, track_number, year, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				mtime = excluded.mtime,
				title = excluded.title,
				artist = excluded.artist,
				artist_id = excluded.artist_id,
				album_id = excluded.album_id,
				genre_id = excluded.genre_id,
				disc_number = excluded.disc_number,
				track_number = excluded.track_number,
				year = excluded.year,
				updated_at = excluded.updated_at
		`, f.path, f.mtime, info.Title, artist, artistID, albumID, genreID,
			info.Disc, info.Track, info.Year, now, now)
		if err != nil {
			return err
		}
		return pruneOrphans(ctx, tx)
	})
}

// ensureRow returns the id of the row matching where, inserting it first when missing.
func ensureRow(ctx context.Context, tx *sql.Tx, table, where, insert string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE `+where, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, insert, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
