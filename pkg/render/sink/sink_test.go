package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/quiltviz/quilt/pkg/annotate"
	"github.com/quiltviz/quilt/pkg/comp"
	"github.com/quiltviz/quilt/pkg/guides"
	"github.com/quiltviz/quilt/pkg/layout"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/render"
)

func assembleFixture(t *testing.T) *render.Figure {
	t.Helper()

	a := plot.New("scatter", plot.WithID("a"), plot.WithGuides(plot.Guide{
		Title:   "species",
		Entries: []plot.GuideEntry{{Label: "setosa", Glyph: "■"}},
	}))
	b := plot.New("density", plot.WithID("b"), plot.WithGuides(plot.Guide{
		Title:   "species",
		Entries: []plot.GuideEntry{{Label: "setosa", Glyph: "■"}},
	}))
	tree := comp.Combine(comp.Leaf(a), comp.Leaf(b))

	if _, err := annotate.Apply(tree, annotate.Annotations{
		Title:     "Iris <overview>",
		Caption:   "Fig 1",
		TagLevels: []string{annotate.StyleLatinLower},
	}); err != nil {
		t.Fatalf("annotate: %v", err)
	}

	f, err := render.Assemble(tree, render.Options{
		Frame:     layout.Frame{Width: 800, Height: 600},
		GuideMode: guides.ModeCollect,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return f
}

func TestRenderSVGStructure(t *testing.T) {
	f := assembleFixture(t)
	svg := string(RenderSVG(f))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg root element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("unterminated document")
	}
	for _, want := range []string{
		"Iris &lt;overview&gt;", // escaped title
		`id="panel-a"`,
		`id="panel-b"`,
		">a<", // tag text
		"species",
		"Fig 1",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	f := assembleFixture(t)

	plainLen := len(RenderSVG(f))
	transparent := string(RenderSVG(f, WithTransparentBackground()))
	if strings.Contains(transparent, `width="100%"`) {
		t.Error("transparent output still has a background rect")
	}
	if len(transparent) >= plainLen {
		t.Error("transparent output should be smaller")
	}

	scaled := string(RenderSVG(f, WithScale(2)))
	if !strings.Contains(scaled, `width="1600"`) {
		t.Error("scale 2 should double the rendered width")
	}

	framed := string(RenderSVG(f, WithCellFrames()))
	if !strings.Contains(framed, "stroke-dasharray") {
		t.Error("cell frames should draw dashed outlines")
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	f := assembleFixture(t)

	data, err := RenderJSON(f)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Width  float64 `json:"width"`
		Title  string  `json:"title"`
		NCol   int     `json:"ncol"`
		Panels []struct {
			ID   string `json:"id"`
			Tag  string `json:"tag"`
			Role string `json:"role"`
		} `json:"panels"`
		Guides []struct {
			Title string `json:"title"`
		} `json:"guides"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if out.Width != 800 || out.NCol != 2 {
		t.Errorf("width=%v ncol=%d", out.Width, out.NCol)
	}
	if out.Title != "Iris <overview>" {
		t.Errorf("title = %q", out.Title)
	}
	if len(out.Panels) != 2 || out.Panels[0].Tag != "a" || out.Panels[0].Role != "chart" {
		t.Errorf("panels = %+v", out.Panels)
	}
	if len(out.Guides) != 1 || out.Guides[0].Title != "species" {
		t.Errorf("guides = %+v", out.Guides)
	}
}

func TestRenderJSONCompact(t *testing.T) {
	f := assembleFixture(t)
	data, err := RenderJSON(f, WithJSONCompact())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if strings.Contains(string(data), "\n") {
		t.Error("compact output contains newlines")
	}
}

func TestRenderTextPreview(t *testing.T) {
	f := assembleFixture(t)
	out := RenderText(f, WithTextPlain(), WithTextSize(100, 30))

	for _, want := range []string{"Iris <overview>", "a) scatter", "b) density", "setosa", "┌", "└"} {
		if !strings.Contains(out, want) {
			t.Errorf("text preview missing %q", want)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + 30 canvas rows + caption
	if len(lines) != 32 {
		t.Errorf("preview has %d lines, want 32", len(lines))
	}
}
