package cursor

import "testing"

func TestGrid_MoveWrapsAcrossRows(t *testing.T) {
	g := NewGrid(0)

	g.Move(0, 1, 10, 4, 2)
	g.Move(0, 1, 10, 4, 2)
	g.Move(0, 1, 10, 4, 2)
	g.Move(0, 1, 10, 4, 2)

	if g.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4 (first cell of second row)", g.Pos())
	}
}

func TestGrid_DownStopsOnLastFullColumn(t *testing.T) {
	g := NewGrid(0)
	g.Jump(3, 6, 4, 3) // last column of first row

	g.HandleKey("j", 6, 4, 3)

	if g.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3 (no item below)", g.Pos())
	}

	g.Jump(1, 6, 4, 3)
	g.HandleKey("j", 6, 4, 3)
	if g.Pos() != 5 {
		t.Errorf("Pos() = %d, want 5", g.Pos())
	}
}

func TestGrid_ScrollsByRows(t *testing.T) {
	g := NewGrid(0)

	g.Jump(9, 12, 2, 2) // row 4 of 6, two visible rows

	if g.RowOffset() != 3 {
		t.Errorf("RowOffset() = %d, want 3", g.RowOffset())
	}
	start, end := g.VisibleRange(12, 2, 2)
	if start != 6 || end != 10 {
		t.Errorf("VisibleRange() = [%d, %d), want [6, 10)", start, end)
	}
}

func TestGrid_VisibleRangeClampsAtEnd(t *testing.T) {
	g := NewGrid(0)
	g.Jump(4, 5, 2, 2)

	start, end := g.VisibleRange(5, 2, 2)
	if start != 2 || end != 5 {
		t.Errorf("VisibleRange() = [%d, %d), want [2, 5)", start, end)
	}
}

func TestGrid_EmptyAndZeroColumns(t *testing.T) {
	g := NewGrid(1)
	g.Move(1, 1, 0, 4, 3)
	g.Move(1, 1, 5, 0, 3)
	if g.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", g.Pos())
	}
	if s, e := g.VisibleRange(5, 0, 3); s != 0 || e != 0 {
		t.Errorf("VisibleRange() = [%d, %d), want empty", s, e)
	}
}

func TestGrid_ClampToBounds(t *testing.T) {
	g := NewGrid(0)
	g.Jump(7, 8, 2, 2)
	g.ClampToBounds(3)
	if g.Pos() != 2 {
		t.Errorf("Pos() = %d, want 2", g.Pos())
	}
	g.ClampToBounds(0)
	if g.Pos() != 0 || g.RowOffset() != 0 {
		t.Error("empty list should reset the grid")
	}
}
