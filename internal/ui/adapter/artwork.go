package adapter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder for embedded covers
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/logging"
)

const (
	artworkMaxAge = 30 * 24 * time.Hour
	halfBlock     = "▀"
)

// CoverSource resolves the audio file carrying the cover of an album or an
// artist.
type CoverSource interface {
	CoverPath(ctx context.Context, albumID int64) (string, error)
	ArtistCoverPath(ctx context.Context, artistID int64) (string, error)
}

// ArtworkCache renders embedded cover art as half-block thumbnails of
// cols x rows cells. Rendered thumbnails live in memory; resized images are
// also kept as PNG files in dir unless the disk tier is paused.
type ArtworkCache struct {
	src        CoverSource
	extract    func(path string) ([]byte, string, error)
	dir        string
	cols, rows int
	log        *logrus.Entry

	mem     map[string]string // "" records a missing cover
	pending map[string]image.Image
	paused  bool
}

// Compile-time check that ArtworkCache implements Cache.
var _ Cache = (*ArtworkCache)(nil)

// NewArtworkCache creates a cache writing to dir. An empty dir disables the
// disk tier. log may be nil.
func NewArtworkCache(src CoverSource, dir string, cols, rows int, log *logrus.Entry) *ArtworkCache {
	if log == nil {
		log = logging.Discard()
	}
	c := &ArtworkCache{
		src:     src,
		extract: library.ExtractCoverArt,
		dir:     dir,
		cols:    max(cols, 1),
		rows:    max(rows, 1),
		log:     log.WithField("component", "artwork"),
		mem:     make(map[string]string),
		pending: make(map[string]image.Image),
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.log.WithError(err).Warn("artwork disk cache disabled")
			c.dir = ""
		} else {
			go c.pruneOldEntries()
		}
	}
	return c
}

// Thumbnail returns the rendered cover of item.
func (c *ArtworkCache) Thumbnail(item library.Item) (string, bool) {
	t := c.target(item, true)
	if !t.ok {
		return "", false
	}
	s := c.mem[t.key]
	return s, s != ""
}

// coverTarget resolves the cache key of one item and, lazily, the file
// carrying its cover.
type coverTarget struct {
	src   CoverSource
	extra bool

	key    string
	lookup func(ctx context.Context) string
	ok     bool
}

func (t *coverTarget) VisitSong(s library.Song) {
	if !t.extra {
		return
	}
	t.key, t.ok = library.Album{ID: s.AlbumID}.Key(), true
	t.lookup = func(context.Context) string { return s.Path }
}

func (t *coverTarget) VisitAlbum(a library.Album) {
	t.key, t.ok = a.Key(), true
	t.lookup = func(ctx context.Context) string {
		if t.src == nil {
			return ""
		}
		p, _ := t.src.CoverPath(ctx, a.ID)
		return p
	}
}

func (t *coverTarget) VisitArtist(a library.Artist) {
	t.key, t.ok = a.Key(), true
	t.lookup = func(ctx context.Context) string {
		if t.src == nil {
			return ""
		}
		p, _ := t.src.ArtistCoverPath(ctx, a.ID)
		return p
	}
}

func (t *coverTarget) VisitGenre(library.Genre)       {}
func (t *coverTarget) VisitPlaylist(library.Playlist) {}

func (c *ArtworkCache) target(item library.Item, extra bool) *coverTarget {
	t := &coverTarget{src: c.src, extra: extra}
	item.Accept(t)
	return t
}

// Build renders the thumbnails of items that are not cached yet. Songs are
// included only when extra is set.
func (c *ArtworkCache) Build(items []library.Item, extra bool) {
	ctx := context.Background()
	for _, item := range items {
		t := c.target(item, extra)
		if !t.ok {
			continue
		}
		if _, done := c.mem[t.key]; done {
			continue
		}
		c.mem[t.key] = c.load(ctx, t)
	}
}

func (c *ArtworkCache) load(ctx context.Context, t *coverTarget) string {
	key := t.key
	if img := c.readDisk(key); img != nil {
		return renderHalfBlocks(img, c.cols, c.rows)
	}
	path := t.lookup(ctx)
	if path == "" {
		return ""
	}

	data, _, err := c.extract(path)
	if err != nil || data == nil {
		if err != nil {
			c.log.WithError(err).WithField("path", path).Debug("no cover art")
		}
		return ""
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.log.WithError(err).WithField("path", path).Debug("undecodable cover art")
		return ""
	}

	resized := resize.Resize(uint(c.cols), uint(c.rows*2), img, resize.Bilinear) //nolint:gosec // cell sizes are small
	if c.paused {
		c.pending[key] = resized
	} else {
		c.writeDisk(key, resized)
	}
	return renderHalfBlocks(resized, c.cols, c.rows)
}

// SetDiskPaused pauses or resumes the disk tier. Resuming does not flush.
func (c *ArtworkCache) SetDiskPaused(paused bool) {
	c.paused = paused
}

// Flush writes thumbnails built while the disk tier was paused.
func (c *ArtworkCache) Flush() error {
	var firstErr error
	for key, img := range c.pending {
		if err := c.put(key, img); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.pending, key)
	}
	return firstErr
}

// Pending returns the number of thumbnails waiting for Flush.
func (c *ArtworkCache) Pending() int {
	return len(c.pending)
}

// diskKey generates a file name for a key at the cache's dimensions.
func (c *ArtworkCache) diskKey(key string) string {
	data := fmt.Sprintf("%s:%d:%d", key, c.cols, c.rows)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:]) + ".png"
}

func (c *ArtworkCache) readDisk(key string) image.Image {
	if c.dir == "" || c.paused {
		return nil
	}
	path := filepath.Join(c.dir, c.diskKey(key))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	// Touch the file to update mtime (keeps frequently used entries fresh)
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort
	return img
}

func (c *ArtworkCache) writeDisk(key string, img image.Image) {
	if err := c.put(key, img); err != nil {
		c.log.WithError(err).Warn("write artwork")
	}
}

func (c *ArtworkCache) put(key string, img image.Image) error {
	if c.dir == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, c.diskKey(key)), buf.Bytes(), 0o600)
}

// pruneOldEntries removes files older than artworkMaxAge.
func (c *ArtworkCache) pruneOldEntries() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-artworkMaxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}

// renderHalfBlocks draws img as rows lines of cols cells. Each cell shows
// two pixels: the upper one as foreground, the lower one as background.
func renderHalfBlocks(img image.Image, cols, rows int) string {
	b := img.Bounds()
	lines := make([]string, rows)
	for y := range rows {
		var sb strings.Builder
		for x := range cols {
			top := pixel(img, b.Min.X+x*b.Dx()/cols, b.Min.Y+(2*y)*b.Dy()/(2*rows))
			bottom := pixel(img, b.Min.X+x*b.Dx()/cols, b.Min.Y+(2*y+1)*b.Dy()/(2*rows))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func pixel(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		c, _ = colorful.MakeColor(color.Black)
	}
	return c.Hex()
}
