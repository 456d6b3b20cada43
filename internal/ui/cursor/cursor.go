// Package cursor keeps the selection and scroll position of list and grid
// collection views.
package cursor

import "github.com/llehouerou/crates/internal/keymap"

// Cursor tracks the selected row of a list view and its scroll offset.
// Lengths and heights are passed in because results and terminal size change
// between calls.
type Cursor struct {
	pos    int // selected row
	offset int // first visible row
	margin int // rows kept visible above and below the cursor
}

// New creates a list cursor with a scroll margin in rows.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int    { return c.pos }
func (c Cursor) Offset() int { return c.offset }

// Move shifts the cursor by delta rows, stopping at either end.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump places the cursor on row pos, clamped to the list. Empty lists are
// left alone.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.EnsureVisible(listLen, height)
}

// JumpStart selects the first row, which is the header row when the view
// has one.
func (c *Cursor) JumpStart() {
	c.pos, c.offset = 0, 0
}

func (c *Cursor) JumpEnd(listLen, height int) {
	c.Jump(listLen-1, listLen, height)
}

// EnsureVisible scrolls so the cursor stays margin rows away from the edges,
// for instance after the view was resized.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	switch {
	case c.pos < c.offset+c.margin:
		c.offset = c.pos - c.margin
	case c.pos >= c.offset+height-c.margin:
		c.offset = c.pos - height + c.margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// ClampToBounds keeps the cursor inside a list that shrank, for instance
// after an optimistic removal. Returns true if the cursor moved.
func (c *Cursor) ClampToBounds(listLen int) bool {
	old := c.pos
	if listLen == 0 {
		moved := c.pos != 0 || c.offset != 0
		c.JumpStart()
		return moved
	}
	c.pos = clamp(c.pos, listLen-1)
	return c.pos != old
}

// VisibleRange returns the rows on screen as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey resolves key through the view bindings and applies the matching
// movement. It returns true if the key moved (or tried to move) the cursor.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	page := max(height, 1)
	switch keymap.View.Resolve(key) { //nolint:exhaustive // movement only
	case keymap.ActionMoveDown:
		c.Move(1, listLen, height)
	case keymap.ActionMoveUp:
		c.Move(-1, listLen, height)
	case keymap.ActionJumpStart:
		c.JumpStart()
	case keymap.ActionJumpEnd:
		c.JumpEnd(listLen, height)
	case keymap.ActionHalfPageDown:
		c.Move(height/2, listLen, height)
	case keymap.ActionHalfPageUp:
		c.Move(-height/2, listLen, height)
	case keymap.ActionPageDown:
		c.Move(page, listLen, height)
	case keymap.ActionPageUp:
		c.Move(-page, listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}
