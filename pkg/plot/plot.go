// Package plot defines the opaque plot object the composition engine
// arranges. Quilt never draws the data inside a plot; it only consumes
// a plot's panel geometry, guide list, and theme, and writes back the
// theme and tag fields decided during composition.
package plot

import (
	"github.com/google/uuid"

	"github.com/quiltviz/quilt/pkg/geom"
	"github.com/quiltviz/quilt/pkg/theme"
)

// Role distinguishes ordinary plots from the placeholder kinds that
// only reserve space in a layout.
type Role int

const (
	// RoleChart is a regular plot with drawable content.
	RoleChart Role = iota
	// RoleSpacer reserves an empty cell.
	RoleSpacer
	// RoleGuideArea reserves a cell where collected guides render.
	RoleGuideArea
)

// Plot is a single, unassembled plot within a composition.
//
// The engine treats the plot as immutable except for Theme and Tag,
// which composition passes may overwrite. Identity is carried by ID,
// so a plot placed into several figures stays addressable.
type Plot struct {
	ID    string
	Label string
	Role  Role

	// Panel is the data-drawing rectangle as fractions of the full
	// plot area. Axes, titles, and attached legends occupy the space
	// between Panel and the full rect.
	Panel geom.Rect

	// Guides are the legends explaining this plot's encodings.
	Guides []Guide

	// Theme holds this plot's explicit visual settings. Broadcast
	// themes fill unset attributes without clobbering explicit ones.
	Theme theme.Theme

	// Tag is the short reference label (a, 1, iv, ...) assigned by
	// auto-tagging. Empty until annotation runs.
	Tag string
}

// defaultPanel leaves room for axes on the left and bottom and a title
// strip on top, mirroring the geometry of a typical rendered chart.
var defaultPanel = geom.Rect{Left: 0.12, Bottom: 0.1, Right: 0.97, Top: 0.92}

// Option configures a plot created by New.
type Option func(*Plot)

// WithID overrides the generated identifier.
func WithID(id string) Option { return func(p *Plot) { p.ID = id } }

// WithPanel overrides the fractional panel rectangle.
func WithPanel(r geom.Rect) Option { return func(p *Plot) { p.Panel = r } }

// WithGuides attaches guides to the plot.
func WithGuides(gs ...Guide) Option {
	return func(p *Plot) { p.Guides = append(p.Guides, gs...) }
}

// WithTheme sets the plot's explicit theme.
func WithTheme(t theme.Theme) Option { return func(p *Plot) { p.Theme = t } }

// New creates a chart plot with a generated UUID and the default
// panel geometry.
func New(label string, opts ...Option) *Plot {
	p := &Plot{
		ID:    uuid.NewString(),
		Label: label,
		Role:  RoleChart,
		Panel: defaultPanel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Spacer creates a placeholder plot that reserves an empty cell.
func Spacer() *Plot {
	return &Plot{
		ID:    uuid.NewString(),
		Role:  RoleSpacer,
		Panel: geom.Unit,
	}
}

// GuideArea creates a placeholder plot whose cell receives the guides
// collected from the rest of the composition.
func GuideArea() *Plot {
	return &Plot{
		ID:    uuid.NewString(),
		Role:  RoleGuideArea,
		Panel: geom.Unit,
	}
}

// IsPlaceholder reports whether the plot only reserves space.
func (p *Plot) IsPlaceholder() bool { return p.Role != RoleChart }

// PanelIn resolves the plot's fractional panel rectangle against the
// absolute cell the plot occupies.
func (p *Plot) PanelIn(cell geom.Rect) geom.Rect {
	return p.Panel.ScaleInto(cell)
}
