package profile

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crates/internal/icons"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/loader"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

// EmptyText is shown when a load delivered no items.
const EmptyText = "No music found"

const loadingText = "Loading…"

// describer builds the two text lines of an item.
type describer struct {
	detailed bool
	title    string
	subtitle string
}

func (d *describer) VisitSong(s library.Song) {
	d.title = s.Title
	d.subtitle = s.Artist
	if s.Album != "" {
		d.subtitle += " · " + s.Album
	}
	if d.detailed && s.TrackNumber > 0 {
		d.title = strconv.Itoa(s.TrackNumber) + ". " + d.title
	}
}

func (d *describer) VisitAlbum(a library.Album) {
	d.title = a.Name
	d.subtitle = a.Artist
	if d.detailed {
		if a.Year > 0 {
			d.subtitle += " · " + strconv.Itoa(a.Year)
		}
		d.subtitle += " · " + render.Count(a.SongCount, "song")
	}
}

func (d *describer) VisitArtist(a library.Artist) {
	d.title = a.Name
	d.subtitle = render.Count(a.AlbumCount, "album")
	if d.detailed {
		d.subtitle += " · " + render.Count(a.SongCount, "song")
	}
}

func (d *describer) VisitGenre(g library.Genre) {
	d.title = g.Name
	d.subtitle = render.Count(g.SongCount, "song")
}

func (d *describer) VisitPlaylist(p library.Playlist) {
	d.title = p.Name
	d.subtitle = render.Count(p.SongCount, "song")
}

func describe(item library.Item, detailed bool) (title, subtitle string) {
	d := &describer{detailed: detailed}
	item.Accept(d)
	return d.title, d.subtitle
}

// View renders the header, the list or grid and any open popup.
func (c *Controller) View() string {
	if c.Width() == 0 || c.Height() == 0 {
		return ""
	}
	base := c.renderHeader() + "\n" + c.renderBody()
	base = padLines(base, c.Width(), c.Height())

	var view string
	switch c.popup {
	case popupMenu:
		view = c.menu.View()
	case popupConfirm:
		view = c.confirm.View()
	case popupInput:
		view = c.input.View()
	case popupNone:
		return base
	}
	box := popup.RenderBordered(view, c.Width(), c.Height(), popup.SizeMenu)
	return popup.Compose(base, box, c.Width(), c.Height())
}

func (c *Controller) renderHeader() string {
	t := styles.T()
	title := styles.Gradient(render.Truncate(c.Title(), c.Width()/2), t.Primary, t.Secondary)
	count := ""
	if c.adapter != nil && !c.empty {
		count = t.S().Muted.Render(render.Count(c.adapter.Count(), "item"))
	}
	return render.Row(title, count, c.Width()) + "\n" +
		t.S().Subtle.Render(render.Separator(c.Width()))
}

func (c *Controller) renderBody() string {
	s := styles.T().S()
	switch {
	case c.empty:
		return s.Muted.Render(render.Center(EmptyText, c.Width()))
	case c.adapter == nil || c.adapter.Count() == 0:
		if c.session.State() == loader.StateLoading {
			return s.Subtle.Render(render.Center(loadingText, c.Width()))
		}
		return ""
	case c.simple:
		return c.renderList()
	default:
		return c.renderGrid()
	}
}

func (c *Controller) renderHeaderRow() string {
	return styles.T().S().Header.Render(render.TruncateAndPad(c.Title(), c.Width()))
}

func (c *Controller) playingID() int64 {
	if c.deps.Playback == nil {
		return -1
	}
	return c.deps.Playback.CurrentAudioID()
}

func (c *Controller) renderList() string {
	s := styles.T().S()
	width := c.Width()
	playing := c.playingID()
	start, end := c.list.VisibleRange(c.adapter.Rows(), c.listHeight())

	lines := make([]string, 0, end-start)
	for row := start; row < end; row++ {
		item, ok := c.adapter.ItemAtRow(row)
		if !ok {
			lines = append(lines, c.renderHeaderRow())
			continue
		}
		title, subtitle := describe(item, c.adapter.LoadExtraData())
		left := render.Truncate(icons.Format(item.Kind(), title), width*2/3)
		right := render.Truncate(subtitle, max(width-lipgloss.Width(left)-2, 0))
		line := render.Row(" "+left, right+" ", width)

		switch {
		case row == c.list.Pos():
			line = s.Cursor.Render(line)
		case item.Kind() == library.KindSong && item.ItemID() == playing:
			line = s.Playing.Render(line)
		default:
			line = s.Base.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (c *Controller) renderGrid() string {
	s := styles.T().S()
	var out []string
	for range c.adapter.Offset() {
		out = append(out, c.renderHeaderRow())
	}

	cellW := max(c.Width()/c.cols, 1)
	items := c.adapter.Items()
	start, end := c.grid.VisibleRange(len(items), c.cols, c.gridRows())
	for rowStart := start; rowStart < end; rowStart += c.cols {
		cells := make([]string, 0, c.cols)
		for i := rowStart; i < min(rowStart+c.cols, end); i++ {
			cells = append(cells, c.renderCell(items[i], i == c.grid.Pos(), cellW))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return s.Base.Render(strings.Join(out, "\n"))
}

func (c *Controller) renderCell(item library.Item, selected bool, width int) string {
	s := styles.T().S()
	inner := max(width-2, 1)

	thumb, _ := c.adapter.Thumbnail(item)
	if thumb == "" || lipgloss.Width(thumb) > inner {
		thumb = strings.TrimSuffix(strings.Repeat(render.EmptyLine(min(thumbCols, inner))+"\n", thumbRows), "\n")
	}

	title, subtitle := describe(item, c.adapter.LoadExtraData())
	frame, titleStyle := s.Cell, s.Title
	if selected {
		frame, titleStyle = s.CellSelected, s.Cursor.Bold(true)
	}
	text := titleStyle.Render(render.TruncateAndPadEllipsis(title, inner)) + "\n" +
		s.Muted.Render(render.TruncateAndPadEllipsis(subtitle, inner))

	return frame.Width(width).Render(thumb + "\n" + text + "\n")
}

// padLines makes the view exactly height lines so popups can overlay it.
func padLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, render.EmptyLine(width))
	}
	return strings.Join(lines, "\n")
}
