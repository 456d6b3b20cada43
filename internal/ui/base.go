package ui

// Base stores the size a parent gave to a view or popup. Embed it to get
// SetSize, Width and Height.
type Base struct {
	width, height int
}

// SetSize records the area assigned by the parent.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }
