// Package geom provides the rectangle primitive shared by layout,
// inset placement, and rendering. All coordinates follow the plotting
// convention of a y-up axis: Bottom < Top.
package geom

// Rect is an axis-aligned rectangle described by its four edges.
// Units are context-dependent: normalized [0,1] fractions during layout
// solving, user units (typically pixels) after scaling to a frame.
type Rect struct {
	Left, Bottom, Right, Top float64
}

// Unit is the unit square covering the full normalized area.
var Unit = Rect{Left: 0, Bottom: 0, Right: 1, Top: 1}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return (r.Bottom + r.Top) / 2 }

// Empty reports whether the rectangle has zero or negative extent
// along either axis.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Top <= r.Bottom
}

// ScaleInto maps r, interpreted as fractions of the unit square, into
// the coordinate space of outer. A rect of {0,0,1,1} maps onto outer
// itself; {0,0,0.5,1} onto outer's left half.
func (r Rect) ScaleInto(outer Rect) Rect {
	return Rect{
		Left:   outer.Left + r.Left*outer.Width(),
		Right:  outer.Left + r.Right*outer.Width(),
		Bottom: outer.Bottom + r.Bottom*outer.Height(),
		Top:    outer.Bottom + r.Top*outer.Height(),
	}
}

// Inset returns r shrunk by the given fractional margins on each side.
// Margins are fractions of r's own width/height, so Inset(0.1, 0.1,
// 0.05, 0.05) trims 10% off the left and bottom and 5% off the right
// and top.
func (r Rect) Inset(left, bottom, right, top float64) Rect {
	return Rect{
		Left:   r.Left + left*r.Width(),
		Bottom: r.Bottom + bottom*r.Height(),
		Right:  r.Right - right*r.Width(),
		Top:    r.Top - top*r.Height(),
	}
}
