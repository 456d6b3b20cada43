// Package ui holds what the view components share: sizing and layout.
package ui

const (
	// ScrollMargin is how many rows stay visible past the cursor in lists.
	ScrollMargin = 5

	// GridScrollMargin is the same margin in grid rows.
	GridScrollMargin = 1

	// HeaderHeight is the title line plus its separator above each view.
	HeaderHeight = 2
)
