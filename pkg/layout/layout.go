// Package layout turns a composition tree into concrete panel
// geometry: every leaf gets an absolute cell rectangle inside a frame,
// nested subtrees are solved recursively into their parent cell, and
// inset overlays are resolved against their host's region.
package layout

import "github.com/quiltviz/quilt/pkg/geom"

// Frame describes the output surface a composition is solved into.
type Frame struct {
	Width  float64
	Height float64
	// DPI converts absolute lengths (mm, pt, ...) in inset boxes to
	// frame units. Zero means inset.DefaultDPI.
	DPI float64
}

// Band is one row or column of the top-level grid, with the plots
// whose cells fall inside it. Plots sharing a band are the alignment
// group for axis labels: panels in one column band share their left
// edge, panels in one row band share their bottom edge.
type Band struct {
	Start, End float64
	PlotIDs    []string
}

// Layout is the solved geometry of a composition.
type Layout struct {
	Frame geom.Rect
	DPI   float64

	// NRow and NCol are the top-level grid shape.
	NRow, NCol int

	// Cells maps each leaf plot ID to its absolute cell rectangle.
	Cells map[string]geom.Rect

	// Panels maps each leaf plot ID to its absolute data rectangle,
	// after axis alignment across siblings.
	Panels map[string]geom.Rect

	// InsetIDs marks plots placed as overlays rather than tiled cells.
	InsetIDs map[string]bool

	// GuideArea is the reserved cell for collected guides, when the
	// composition contains a guide-area placeholder.
	GuideArea *geom.Rect

	// RowBands and ColBands are the top-level alignment groups.
	// RowBands run top to bottom, ColBands left to right.
	RowBands []Band
	ColBands []Band

	// spacing is the gutter between sibling cells as a fraction of the
	// parent cell's extent, resolved from the figure theme.
	spacing float64
}
