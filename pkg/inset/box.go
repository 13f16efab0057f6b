package inset

import (
	"strconv"
	"strings"

	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/geom"
)

// Reference selects which region of the host plot a box is measured
// against.
type Reference string

const (
	// RefPanel measures against the host's data-drawing rectangle.
	RefPanel Reference = "panel"
	// RefFull measures against the host's entire extent, axes and
	// titles included.
	RefFull Reference = "full"
)

// Edge is one side of an inset box: either a fraction in [0,1] of the
// reference region, or an absolute length measured inward from the
// region's own corresponding edge.
type Edge struct {
	frac *float64
	abs  *Length
}

// Frac builds a fractional edge. 0 is the region's left/bottom edge,
// 1 its right/top edge.
func Frac(f float64) Edge { return Edge{frac: &f} }

// Abs builds an absolute edge offset. For left and bottom edges the
// offset moves right/up from the region edge; for right and top edges
// it moves left/down. Abs(15, UnitMillimeter) on a top edge anchors
// 15mm below the region's top.
func Abs(value float64, unit Unit) Edge {
	l := Length{Value: value, Unit: unit}
	return Edge{abs: &l}
}

// ParseEdge parses "0.25" as a fraction and "15mm" style strings as an
// absolute length.
func ParseEdge(s string) (Edge, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Frac(f), nil
	}
	l, err := ParseLength(s)
	if err != nil {
		return Edge{}, err
	}
	return Edge{abs: &l}, nil
}

// Box positions an overlay inside a reference region by its four
// edges. The zero value is invalid; use the Frac/Abs constructors for
// every edge.
type Box struct {
	Left, Bottom, Right, Top Edge
}

// FracBox builds a box with four fractional edges.
func FracBox(left, bottom, right, top float64) Box {
	return Box{Left: Frac(left), Bottom: Frac(bottom), Right: Frac(right), Top: Frac(top)}
}

// side identifies which edge of the region an Edge resolves against.
type side int

const (
	sideLeft side = iota
	sideBottom
	sideRight
	sideTop
)

// resolve computes the absolute coordinate of one edge.
func (e Edge) resolve(region geom.Rect, s side, dpi float64) (float64, error) {
	switch {
	case e.frac != nil:
		f := *e.frac
		if s == sideLeft || s == sideRight {
			return region.Left + f*region.Width(), nil
		}
		return region.Bottom + f*region.Height(), nil
	case e.abs != nil:
		px, err := e.abs.Pixels(dpi)
		if err != nil {
			return 0, err
		}
		switch s {
		case sideLeft:
			return region.Left + px, nil
		case sideBottom:
			return region.Bottom + px, nil
		case sideRight:
			return region.Right - px, nil
		default:
			return region.Top - px, nil
		}
	default:
		return 0, qerrors.New(qerrors.ErrCodeInvalidInput, "edge has neither fraction nor length")
	}
}

// Resolve computes the absolute rectangle the box describes within
// region. It returns a DEGENERATE_BOUNDS error when the resolved box
// has zero or negative width or height.
func (b Box) Resolve(region geom.Rect, dpi float64) (geom.Rect, error) {
	left, err := b.Left.resolve(region, sideLeft, dpi)
	if err != nil {
		return geom.Rect{}, err
	}
	bottom, err := b.Bottom.resolve(region, sideBottom, dpi)
	if err != nil {
		return geom.Rect{}, err
	}
	right, err := b.Right.resolve(region, sideRight, dpi)
	if err != nil {
		return geom.Rect{}, err
	}
	top, err := b.Top.resolve(region, sideTop, dpi)
	if err != nil {
		return geom.Rect{}, err
	}

	r := geom.Rect{Left: left, Bottom: bottom, Right: right, Top: top}
	if r.Empty() {
		return geom.Rect{}, qerrors.New(qerrors.ErrCodeDegenerateBounds,
			"inset box resolves to (%.2f, %.2f)-(%.2f, %.2f)", left, bottom, right, top)
	}
	return r, nil
}
