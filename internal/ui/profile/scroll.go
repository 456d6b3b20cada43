package profile

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crates/internal/ui"
)

// ScrollState mirrors the motion of the view.
type ScrollState int

const (
	ScrollIdle ScrollState = iota
	ScrollTouch
	ScrollFling
)

// scrollSettleDelay is how long the view must stay still to count as idle.
const scrollSettleDelay = 150 * time.Millisecond

type scrollSettledMsg struct {
	id  int
	seq uint64
}

// ScrollStateChanged pauses the adapter's disk cache while the view moves
// and resumes it, with a redraw, once it settles.
func (c *Controller) ScrollStateChanged(state ScrollState) {
	c.scroll = state
	if c.adapter == nil {
		return
	}
	switch state {
	case ScrollFling, ScrollTouch:
		c.adapter.SetPauseDiskCache(true)
	case ScrollIdle:
		c.adapter.SetPauseDiskCache(false)
		c.adapter.NotifyChanged()
	}
}

// ScrollState returns the current scroll state.
func (c *Controller) ScrollState() ScrollState {
	return c.scroll
}

// beginScroll enters state and schedules the settle check. Only the latest
// scheduled check can settle the view.
func (c *Controller) beginScroll(state ScrollState) tea.Cmd {
	if c.scroll != state {
		c.ScrollStateChanged(state)
	}
	c.scrollSeq++
	id, seq := c.id, c.scrollSeq
	return tea.Tick(scrollSettleDelay, func(time.Time) tea.Msg {
		return scrollSettledMsg{id: id, seq: seq}
	})
}

// listHeight is the number of list rows on screen.
func (c *Controller) listHeight() int {
	return max(c.Height()-ui.HeaderHeight, 1)
}

// cellHeight is the height of one grid cell: artwork, two text lines and a
// blank line.
func (c *Controller) cellHeight() int {
	return thumbRows + 3
}

// gridRows is the number of grid rows on screen.
func (c *Controller) gridRows() int {
	header := 0
	if c.adapter != nil {
		header = c.adapter.Offset()
	}
	return max((c.Height()-ui.HeaderHeight-header)/c.cellHeight(), 1)
}

func (c *Controller) counts() (rows, items, offset int) {
	if c.adapter == nil {
		return 0, 0, 0
	}
	return c.adapter.Rows(), c.adapter.Count(), c.adapter.Offset()
}

// position returns the view position under the cursor. Grid positions count
// the adapter's offset rows like list rows do.
func (c *Controller) position() int {
	if c.simple {
		return c.list.Pos()
	}
	_, _, offset := c.counts()
	return offset + c.grid.Pos()
}

func (c *Controller) jumpTo(pos int) {
	rows, items, offset := c.counts()
	if c.simple {
		c.list.Jump(pos, rows, c.listHeight())
		return
	}
	c.grid.Jump(pos-offset, items, c.cols, c.gridRows())
}

func (c *Controller) scrollToTop() {
	c.list.JumpStart()
	c.grid.JumpStart()
}

func (c *Controller) moveCursor(key string) {
	rows, items, _ := c.counts()
	if c.simple {
		c.list.HandleKey(key, rows, c.listHeight())
		return
	}
	c.grid.HandleKey(key, items, c.cols, c.gridRows())
}

func (c *Controller) ensureVisible() {
	rows, items, _ := c.counts()
	if c.simple {
		c.list.EnsureVisible(rows, c.listHeight())
		return
	}
	c.grid.EnsureVisible(items, c.cols, c.gridRows())
}
