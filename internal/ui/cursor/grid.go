package cursor

import "github.com/llehouerou/crates/internal/keymap"

// Grid tracks a cursor over items laid out row-major in rows of cols cells.
// Scrolling is by whole rows. Like Cursor, lengths and sizes are passed in.
type Grid struct {
	pos    int // item index
	rowOff int // first visible row
	margin int // rows kept visible around the cursor row
}

// NewGrid creates a grid cursor with a scroll margin in rows.
func NewGrid(margin int) Grid {
	return Grid{margin: margin}
}

// Pos returns the item index under the cursor.
func (g Grid) Pos() int {
	return g.pos
}

// RowOffset returns the first visible row.
func (g Grid) RowOffset() int {
	return g.rowOff
}

func rowCount(listLen, cols int) int {
	if cols <= 0 {
		return 0
	}
	return (listLen + cols - 1) / cols
}

// Move moves the cursor by dRow rows and dCol cells. Horizontal moves wrap
// across rows; vertical moves keep the column and clamp to the last item.
func (g *Grid) Move(dRow, dCol, listLen, cols, visibleRows int) {
	if listLen == 0 || cols <= 0 {
		return
	}
	g.pos = clamp(g.pos+dRow*cols+dCol, listLen-1)
	g.ensureVisible(listLen, cols, visibleRows)
}

// Jump places the cursor on pos.
func (g *Grid) Jump(pos, listLen, cols, visibleRows int) {
	if listLen == 0 {
		return
	}
	g.pos = clamp(pos, listLen-1)
	g.ensureVisible(listLen, cols, visibleRows)
}

// JumpStart moves to the first item and scrolls to the top.
func (g *Grid) JumpStart() {
	g.pos = 0
	g.rowOff = 0
}

// EnsureVisible scrolls so the cursor row is visible, for instance after the
// column count changed.
func (g *Grid) EnsureVisible(listLen, cols, visibleRows int) {
	g.ensureVisible(listLen, cols, visibleRows)
}

// ensureVisible delegates the row arithmetic to Cursor.
func (g *Grid) ensureVisible(listLen, cols, visibleRows int) {
	if cols <= 0 {
		return
	}
	rows := Cursor{pos: g.pos / cols, offset: g.rowOff, margin: g.margin}
	rows.EnsureVisible(rowCount(listLen, cols), visibleRows)
	g.rowOff = rows.offset
}

// VisibleRange returns the item range [start, end) currently on screen.
func (g Grid) VisibleRange(listLen, cols, visibleRows int) (start, end int) {
	if listLen == 0 || cols <= 0 || visibleRows <= 0 {
		return 0, 0
	}
	start = min(g.rowOff*cols, listLen)
	end = min(start+visibleRows*cols, listLen)
	return start, end
}

// ClampToBounds keeps the cursor inside a list that shrank.
func (g *Grid) ClampToBounds(listLen int) {
	if listLen == 0 {
		g.pos, g.rowOff = 0, 0
		return
	}
	g.pos = clamp(g.pos, listLen-1)
}

// HandleKey resolves key through the view bindings and moves the grid
// cursor. Returns true if the key was a movement.
func (g *Grid) HandleKey(key string, listLen, cols, visibleRows int) bool {
	switch keymap.View.Resolve(key) {
	case keymap.ActionMoveLeft:
		g.Move(0, -1, listLen, cols, visibleRows)
	case keymap.ActionMoveRight:
		g.Move(0, 1, listLen, cols, visibleRows)
	case keymap.ActionMoveDown:
		if g.pos+cols < listLen {
			g.Move(1, 0, listLen, cols, visibleRows)
		}
	case keymap.ActionMoveUp:
		g.Move(-1, 0, listLen, cols, visibleRows)
	case keymap.ActionJumpStart:
		g.JumpStart()
	case keymap.ActionJumpEnd:
		g.Jump(listLen-1, listLen, cols, visibleRows)
	case keymap.ActionHalfPageDown:
		g.Move(max(visibleRows/2, 1), 0, listLen, cols, visibleRows)
	case keymap.ActionHalfPageUp:
		g.Move(-max(visibleRows/2, 1), 0, listLen, cols, visibleRows)
	case keymap.ActionPageDown:
		g.Move(max(visibleRows, 1), 0, listLen, cols, visibleRows)
	case keymap.ActionPageUp:
		g.Move(-max(visibleRows, 1), 0, listLen, cols, visibleRows)
	default:
		return false
	}
	return true
}
