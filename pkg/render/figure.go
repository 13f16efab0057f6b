// Package render assembles a composition into a flat, sink-ready
// figure: solved panel geometry, resolved themes, collected guides,
// and root annotations, in a form the output sinks consume without
// touching the tree again.
package render

import (
	"encoding/json"
	"sort"

	"github.com/quiltviz/quilt/pkg/comp"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/geom"
	"github.com/quiltviz/quilt/pkg/guides"
	"github.com/quiltviz/quilt/pkg/layout"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

// Options configures figure assembly.
type Options struct {
	Frame layout.Frame

	// GuideMode selects plot-level or figure-level legends.
	// Empty means guides.ModeKeep.
	GuideMode guides.Mode
}

// Panel is one placed plot, fully resolved for drawing.
type Panel struct {
	ID    string
	Label string
	Tag   string
	Role  plot.Role

	// Cell is the full rectangle assigned to the plot; PanelRect the
	// inner data rectangle after axis alignment.
	Cell      geom.Rect
	PanelRect geom.Rect

	// Inset marks panels drawn on top of another panel rather than
	// tiled beside it. Insets draw after all tiled panels.
	Inset bool

	// Theme is the plot's effective theme with every attribute set.
	Theme theme.Theme

	// Guides still attached to this plot (empty in collect mode).
	Guides []plot.Guide
}

// Figure is a solved, resolved composition ready for a sink.
type Figure struct {
	Frame geom.Rect
	DPI   float64

	Title    string
	Subtitle string
	Caption  string

	// Theme is the figure-level theme formatting titles and the
	// collected guide block.
	Theme theme.Theme

	NRow, NCol int

	// Panels are ordered depth-first with inset overlays last, which
	// is also the draw order.
	Panels []Panel

	// Guides is the figure-level set produced by collect mode.
	Guides []plot.Guide

	// GuideArea is where collected guides draw: the reserved cell if
	// the composition has one, otherwise a strip on the side named by
	// the figure theme's legend position.
	GuideArea *geom.Rect
}

// Assemble solves the composition and flattens it into a Figure.
// Guide collection in collect mode detaches guides from the plots, so
// assembling is not repeatable on the same tree with different modes.
func Assemble(tree *comp.Node, opts Options) (*Figure, error) {
	mode := opts.GuideMode
	if mode == "" {
		mode = guides.ModeKeep
	}
	collected := guides.Collect(tree, mode)

	l, err := layout.Solve(tree, opts.Frame)
	if err != nil {
		return nil, err
	}

	figTheme := theme.Default()
	if tree.Theme != nil {
		figTheme = tree.Theme.Merge(theme.Default())
	}

	f := &Figure{
		Frame:    l.Frame,
		DPI:      l.DPI,
		Title:    tree.Title,
		Subtitle: tree.Subtitle,
		Caption:  tree.Caption,
		Theme:    figTheme.Resolved(),
		NRow:     l.NRow,
		NCol:     l.NCol,
		Guides:   collected,
	}

	for _, p := range comp.Leaves(tree) {
		cell, ok := l.Cells[p.ID]
		if !ok {
			return nil, qerrors.New(qerrors.ErrCodeInternal,
				"plot %s has no solved cell", p.ID)
		}
		f.Panels = append(f.Panels, Panel{
			ID:        p.ID,
			Label:     p.Label,
			Tag:       p.Tag,
			Role:      p.Role,
			Cell:      cell,
			PanelRect: l.Panels[p.ID],
			Inset:     l.InsetIDs[p.ID],
			Theme:     p.Theme.Merge(figTheme).Resolved(),
			Guides:    append([]plot.Guide(nil), p.Guides...),
		})
	}

	// Overlays draw above their hosts.
	sort.SliceStable(f.Panels, func(i, j int) bool {
		return !f.Panels[i].Inset && f.Panels[j].Inset
	})

	if len(collected) > 0 {
		if l.GuideArea != nil {
			f.GuideArea = l.GuideArea
		} else {
			area := guideStrip(l.Frame, f.Theme.LegendPositionOr(theme.PositionRight))
			f.GuideArea = &area
		}
	}
	return f, nil
}

// Marshal serializes the figure for caching. The encoding round-trips
// through Unmarshal; solved geometry and resolved themes survive, the
// originating tree does not.
func (f *Figure) Marshal() ([]byte, error) {
	return json.Marshal(f)
}

// Unmarshal restores a figure serialized by Marshal.
func Unmarshal(data []byte) (*Figure, error) {
	var f Figure
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeInvalidFormat, err, "decode cached figure")
	}
	return &f, nil
}

// guideStripFraction is how much of the frame a side guide strip takes
// when no guide area cell is reserved.
const guideStripFraction = 0.18

func guideStrip(frame geom.Rect, pos theme.Position) geom.Rect {
	w := guideStripFraction * frame.Width()
	h := guideStripFraction * frame.Height()
	switch pos {
	case theme.PositionLeft:
		return geom.Rect{Left: frame.Left, Bottom: frame.Bottom, Right: frame.Left + w, Top: frame.Top}
	case theme.PositionTop:
		return geom.Rect{Left: frame.Left, Bottom: frame.Top - h, Right: frame.Right, Top: frame.Top}
	case theme.PositionBottom:
		return geom.Rect{Left: frame.Left, Bottom: frame.Bottom, Right: frame.Right, Top: frame.Bottom + h}
	default:
		return geom.Rect{Left: frame.Right - w, Bottom: frame.Bottom, Right: frame.Right, Top: frame.Top}
	}
}
