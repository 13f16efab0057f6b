package sink

import (
	"encoding/json"

	"github.com/quiltviz/quilt/pkg/geom"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact emits single-line JSON instead of the default
// pretty-printed document.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	DPI      float64     `json:"dpi"`
	Title    string      `json:"title,omitempty"`
	Subtitle string      `json:"subtitle,omitempty"`
	Caption  string      `json:"caption,omitempty"`
	NRow     int         `json:"nrow"`
	NCol     int         `json:"ncol"`
	Panels   []jsonPanel `json:"panels"`
	Guides   []jsonGuide `json:"guides,omitempty"`
}

type jsonPanel struct {
	ID     string      `json:"id"`
	Label  string      `json:"label,omitempty"`
	Tag    string      `json:"tag,omitempty"`
	Role   string      `json:"role"`
	Cell   jsonRect    `json:"cell"`
	Panel  jsonRect    `json:"panel"`
	Inset  bool        `json:"inset,omitempty"`
	Guides []jsonGuide `json:"guides,omitempty"`
}

type jsonRect struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

type jsonGuide struct {
	Title   string          `json:"title,omitempty"`
	Entries []jsonGuideItem `json:"entries"`
}

type jsonGuideItem struct {
	Label string `json:"label"`
	Glyph string `json:"glyph,omitempty"`
}

// RenderJSON exports the figure as a JSON document: panel geometry,
// tags, and guide content. This is the data interchange format for
// downstream tools that draw the actual chart content into the solved
// panels. It does not modify the figure and is safe to call
// concurrently.
func RenderJSON(f *render.Figure, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    f.Frame.Width(),
		Height:   f.Frame.Height(),
		DPI:      f.DPI,
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Caption:  f.Caption,
		NRow:     f.NRow,
		NCol:     f.NCol,
		Panels:   buildJSONPanels(f),
		Guides:   buildJSONGuides(f.Guides),
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONPanels(f *render.Figure) []jsonPanel {
	panels := make([]jsonPanel, 0, len(f.Panels))
	for _, p := range f.Panels {
		panels = append(panels, jsonPanel{
			ID:     p.ID,
			Label:  p.Label,
			Tag:    p.Tag,
			Role:   roleName(p.Role),
			Cell:   toJSONRect(p.Cell),
			Panel:  toJSONRect(p.PanelRect),
			Inset:  p.Inset,
			Guides: buildJSONGuides(p.Guides),
		})
	}
	return panels
}

func buildJSONGuides(gs []plot.Guide) []jsonGuide {
	if len(gs) == 0 {
		return nil
	}
	out := make([]jsonGuide, len(gs))
	for i, g := range gs {
		items := make([]jsonGuideItem, len(g.Entries))
		for j, e := range g.Entries {
			items[j] = jsonGuideItem{Label: e.Label, Glyph: e.Glyph}
		}
		out[i] = jsonGuide{Title: g.Title, Entries: items}
	}
	return out
}

func toJSONRect(r geom.Rect) jsonRect {
	return jsonRect{Left: r.Left, Bottom: r.Bottom, Right: r.Right, Top: r.Top}
}

func roleName(r plot.Role) string {
	switch r {
	case plot.RoleSpacer:
		return "spacer"
	case plot.RoleGuideArea:
		return "guide_area"
	default:
		return "chart"
	}
}
