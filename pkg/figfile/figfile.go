// Package figfile reads figure description files: TOML documents that
// declare the plots of a figure, the layout constraints, annotations,
// and guide handling, and builds the corresponding composition tree.
// It is the declarative entry point the CLI renders from.
package figfile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/quiltviz/quilt/pkg/annotate"
	"github.com/quiltviz/quilt/pkg/comp"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/guides"
	"github.com/quiltviz/quilt/pkg/inset"
	"github.com/quiltviz/quilt/pkg/layout"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

// File is the parsed form of a figure description.
type File struct {
	Title     string   `toml:"title"`
	Subtitle  string   `toml:"subtitle"`
	Caption   string   `toml:"caption"`
	TagLevels []string `toml:"tag_levels"`

	Frame  frameSpec  `toml:"frame"`
	Guides guidesSpec `toml:"guides"`
	Layout layoutSpec `toml:"layout"`
	Theme  *themeSpec `toml:"theme"`

	Plots  []plotSpec  `toml:"plots"`
	Insets []insetSpec `toml:"insets"`
}

type frameSpec struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	DPI    float64 `toml:"dpi"`
}

type guidesSpec struct {
	Mode string `toml:"mode"` // "keep" or "collect"
}

type layoutSpec struct {
	NRow   int    `toml:"nrow"`
	NCol   int    `toml:"ncol"`
	Design string `toml:"design"`
}

type themeSpec struct {
	LegendPosition string  `toml:"legend_position"`
	FontFamily     string  `toml:"font_family"`
	FontSize       float64 `toml:"font_size"`
	Background     string  `toml:"background"`
	TextColor      string  `toml:"text_color"`
	PanelSpacing   float64 `toml:"panel_spacing"`
}

type plotSpec struct {
	Label       string      `toml:"label"`
	Role        string      `toml:"role"` // "chart" (default), "spacer", "guide_area"
	NewTagLevel bool        `toml:"new_tag_level"`
	Theme       *themeSpec  `toml:"theme"`
	Guides      []guideSpec `toml:"guides"`
}

type guideSpec struct {
	Title   string      `toml:"title"`
	Entries []entrySpec `toml:"entries"`
}

type entrySpec struct {
	Label string `toml:"label"`
	Glyph string `toml:"glyph"`
}

type insetSpec struct {
	Host    string `toml:"host"`    // label of the host plot
	Overlay string `toml:"overlay"` // label of the overlay plot
	Left    string `toml:"left"`    // fraction or length, e.g. "0.5" or "15mm"
	Bottom  string `toml:"bottom"`
	Right   string `toml:"right"`
	Top     string `toml:"top"`
	Ref     string `toml:"ref"` // "panel" (default) or "full"
}

// DefaultFrame is used when a figure file omits frame dimensions.
var DefaultFrame = layout.Frame{Width: 800, Height: 600}

// Load reads and parses a figure file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeInvalidFigure, err, "read figure file")
	}
	return Parse(data)
}

// Parse decodes a figure description from TOML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeInvalidFigure, err, "parse figure file")
	}
	if len(f.Plots) == 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidFigure, "figure file declares no plots")
	}
	if f.Guides.Mode != "" && f.Guides.Mode != string(guides.ModeKeep) && f.Guides.Mode != string(guides.ModeCollect) {
		return nil, qerrors.New(qerrors.ErrCodeInvalidFigure, "unknown guide mode %q", f.Guides.Mode)
	}
	if err := validateTheme(f.Theme); err != nil {
		return nil, err
	}
	for _, ps := range f.Plots {
		if err := validateTheme(ps.Theme); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

func validateTheme(ts *themeSpec) error {
	if ts == nil || ts.LegendPosition == "" {
		return nil
	}
	if !theme.ValidPositions[theme.Position(ts.LegendPosition)] {
		return qerrors.New(qerrors.ErrCodeInvalidFigure,
			"unknown legend position %q", ts.LegendPosition)
	}
	return nil
}

// FrameOrDefault resolves the output frame, filling missing dimensions
// from DefaultFrame.
func (f *File) FrameOrDefault() layout.Frame {
	fr := layout.Frame{Width: f.Frame.Width, Height: f.Frame.Height, DPI: f.Frame.DPI}
	if fr.Width <= 0 {
		fr.Width = DefaultFrame.Width
	}
	if fr.Height <= 0 {
		fr.Height = DefaultFrame.Height
	}
	return fr
}

// GuideMode resolves the declared guide handling mode.
func (f *File) GuideMode() guides.Mode {
	if f.Guides.Mode == "" {
		return guides.ModeKeep
	}
	return guides.Mode(f.Guides.Mode)
}

// Build constructs the composition tree the file describes: leaves in
// declaration order, inset overlays spliced onto their hosts, layout
// constraints applied, and annotations written to the root.
func (f *File) Build() (*comp.Node, error) {
	nodes := make([]*comp.Node, 0, len(f.Plots))
	byLabel := make(map[string]*comp.Node, len(f.Plots))

	for _, ps := range f.Plots {
		p, err := buildPlot(ps)
		if err != nil {
			return nil, err
		}
		leaf := comp.Leaf(p)
		if ps.NewTagLevel {
			leaf = comp.MarkNewTagLevel(leaf)
		}
		if ps.Label != "" {
			if _, dup := byLabel[ps.Label]; dup {
				return nil, qerrors.New(qerrors.ErrCodeInvalidFigure,
					"duplicate plot label %q", ps.Label)
			}
			byLabel[ps.Label] = leaf
		}
		nodes = append(nodes, leaf)
	}

	nodes, err := f.spliceInsets(nodes, byLabel)
	if err != nil {
		return nil, err
	}

	tree := nodes[0]
	for _, n := range nodes[1:] {
		tree = comp.Combine(tree, n)
	}

	if f.Layout.NRow > 0 || f.Layout.NCol > 0 || f.Layout.Design != "" {
		tree, err = comp.SetLayout(tree, comp.Constraints{
			NRow:   f.Layout.NRow,
			NCol:   f.Layout.NCol,
			Design: f.Layout.Design,
		})
		if err != nil {
			return nil, err
		}
	}

	return annotate.Apply(tree, annotate.Annotations{
		Title:     f.Title,
		Subtitle:  f.Subtitle,
		Caption:   f.Caption,
		Theme:     buildTheme(f.Theme),
		TagLevels: f.TagLevels,
	})
}

func buildPlot(ps plotSpec) (*plot.Plot, error) {
	switch ps.Role {
	case "spacer":
		return plot.Spacer(), nil
	case "guide_area":
		return plot.GuideArea(), nil
	case "", "chart":
	default:
		return nil, qerrors.New(qerrors.ErrCodeInvalidFigure, "unknown plot role %q", ps.Role)
	}

	opts := []plot.Option{}
	if th := buildTheme(ps.Theme); th != nil {
		opts = append(opts, plot.WithTheme(*th))
	}
	for _, gs := range ps.Guides {
		g := plot.Guide{Title: gs.Title}
		for _, e := range gs.Entries {
			g.Entries = append(g.Entries, plot.GuideEntry{Label: e.Label, Glyph: e.Glyph})
		}
		opts = append(opts, plot.WithGuides(g))
	}
	return plot.New(ps.Label, opts...), nil
}

func buildTheme(ts *themeSpec) *theme.Theme {
	if ts == nil {
		return nil
	}
	th := theme.Theme{}
	if ts.LegendPosition != "" {
		th.LegendPosition = theme.Pos(theme.Position(ts.LegendPosition))
	}
	if ts.FontFamily != "" {
		th.FontFamily = theme.Str(ts.FontFamily)
	}
	if ts.FontSize > 0 {
		th.FontSize = theme.Num(ts.FontSize)
	}
	if ts.Background != "" {
		th.Background = theme.Str(ts.Background)
	}
	if ts.TextColor != "" {
		th.TextColor = theme.Str(ts.TextColor)
	}
	if ts.PanelSpacing > 0 {
		th.PanelSpacing = theme.Num(ts.PanelSpacing)
	}
	return &th
}

// spliceInsets wraps each named host leaf in an inset node and removes
// the overlay from the tiled sequence.
func (f *File) spliceInsets(nodes []*comp.Node, byLabel map[string]*comp.Node) ([]*comp.Node, error) {
	for _, is := range f.Insets {
		host, ok := byLabel[is.Host]
		if !ok {
			return nil, qerrors.New(qerrors.ErrCodeInvalidFigure,
				"inset host %q is not a declared plot", is.Host)
		}
		overlay, ok := byLabel[is.Overlay]
		if !ok {
			return nil, qerrors.New(qerrors.ErrCodeInvalidFigure,
				"inset overlay %q is not a declared plot", is.Overlay)
		}

		box, err := buildBox(is)
		if err != nil {
			return nil, err
		}
		ref := inset.Reference(is.Ref)
		if is.Ref != "" && ref != inset.RefPanel && ref != inset.RefFull {
			return nil, qerrors.New(qerrors.ErrCodeInvalidFigure,
				"unknown inset reference %q", is.Ref)
		}

		wrapped := comp.Inset(host, overlay, box, ref)
		replaced := false
		out := nodes[:0:0]
		for _, n := range nodes {
			switch n {
			case overlay:
				continue
			case host:
				out = append(out, wrapped)
				replaced = true
			default:
				out = append(out, n)
			}
		}
		if !replaced {
			return nil, qerrors.New(qerrors.ErrCodeInvalidFigure,
				"inset host %q already consumed by another inset", is.Host)
		}
		byLabel[is.Host] = wrapped
		nodes = out
	}

	if len(nodes) == 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidFigure,
			"every plot is an inset overlay; nothing to tile")
	}
	return nodes, nil
}

func buildBox(is insetSpec) (inset.Box, error) {
	edges := [4]struct {
		name, val string
	}{
		{"left", is.Left}, {"bottom", is.Bottom}, {"right", is.Right}, {"top", is.Top},
	}
	var parsed [4]inset.Edge
	for i, e := range edges {
		if e.val == "" {
			return inset.Box{}, qerrors.New(qerrors.ErrCodeInvalidFigure,
				"inset %s/%s is missing edge %q", is.Host, is.Overlay, e.name)
		}
		edge, err := inset.ParseEdge(e.val)
		if err != nil {
			return inset.Box{}, qerrors.Wrap(qerrors.ErrCodeInvalidFigure, err,
				"inset %s/%s edge %q", is.Host, is.Overlay, e.name)
		}
		parsed[i] = edge
	}
	return inset.Box{Left: parsed[0], Bottom: parsed[1], Right: parsed[2], Top: parsed[3]}, nil
}
