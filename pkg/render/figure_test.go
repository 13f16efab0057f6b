package render

import (
	"testing"

	"github.com/quiltviz/quilt/pkg/comp"
	"github.com/quiltviz/quilt/pkg/guides"
	"github.com/quiltviz/quilt/pkg/inset"
	"github.com/quiltviz/quilt/pkg/layout"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

func insetBox() inset.Box { return inset.FracBox(0.6, 0.6, 0.95, 0.95) }

var testFrame = layout.Frame{Width: 800, Height: 600}

func testGuide(title string) plot.Guide {
	return plot.Guide{
		Title:   title,
		Entries: []plot.GuideEntry{{Label: "x", Glyph: "■"}},
	}
}

func TestAssembleFlattensPanels(t *testing.T) {
	a := plot.New("a", plot.WithID("a"))
	b := plot.New("b", plot.WithID("b"))
	tree := comp.Combine(comp.Leaf(a), comp.Leaf(b))
	tree.Title = "Two panels"

	f, err := Assemble(tree, Options{Frame: testFrame})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(f.Panels) != 2 {
		t.Fatalf("panels = %d, want 2", len(f.Panels))
	}
	if f.Title != "Two panels" {
		t.Errorf("title = %q", f.Title)
	}
	if f.Panels[0].ID != "a" || f.Panels[1].ID != "b" {
		t.Errorf("panel order = %s, %s", f.Panels[0].ID, f.Panels[1].ID)
	}
	for _, p := range f.Panels {
		if p.Theme.FontSize == nil || p.Theme.Background == nil {
			t.Errorf("panel %s theme not fully resolved", p.ID)
		}
	}
}

func TestAssembleCollectModeHomesGuides(t *testing.T) {
	a := plot.New("a", plot.WithGuides(testGuide("species")))
	b := plot.New("b", plot.WithGuides(testGuide("species")))
	tree := comp.Combine(comp.Leaf(a), comp.Leaf(b))

	f, err := Assemble(tree, Options{Frame: testFrame, GuideMode: guides.ModeCollect})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(f.Guides) != 1 {
		t.Fatalf("collected guides = %d, want 1", len(f.Guides))
	}
	if f.GuideArea == nil {
		t.Fatal("collect mode should place a guide area")
	}
	for _, p := range f.Panels {
		if len(p.Guides) != 0 {
			t.Errorf("panel %s kept %d guides in collect mode", p.Label, len(p.Guides))
		}
	}

	// Default legend position is right: the strip hugs the right edge.
	if f.GuideArea.Right != f.Frame.Right {
		t.Errorf("guide strip = %+v, want flush right", *f.GuideArea)
	}
}

func TestAssembleKeepModeLeavesGuides(t *testing.T) {
	a := plot.New("a", plot.WithGuides(testGuide("species")))
	tree := comp.Combine(comp.Leaf(a), comp.Leaf(plot.New("b")))

	f, err := Assemble(tree, Options{Frame: testFrame})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(f.Guides) != 0 || f.GuideArea != nil {
		t.Error("keep mode should not produce figure-level guides")
	}
	if len(f.Panels[0].Guides) != 1 {
		t.Errorf("panel guides = %d, want 1", len(f.Panels[0].Guides))
	}
}

func TestAssembleGuideAreaCellWins(t *testing.T) {
	a := plot.New("a", plot.WithGuides(testGuide("species")))
	tree := comp.Combine(comp.Leaf(a), comp.Leaf(plot.GuideArea()))

	f, err := Assemble(tree, Options{Frame: testFrame, GuideMode: guides.ModeCollect})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if f.GuideArea == nil {
		t.Fatal("no guide area")
	}
	// The reserved cell sits inside the grid, not flush to the frame edge.
	if f.GuideArea.Right == f.Frame.Right && f.GuideArea.Top == f.Frame.Top && f.GuideArea.Bottom == f.Frame.Bottom {
		t.Errorf("guide area %+v looks like the fallback strip, want the reserved cell", *f.GuideArea)
	}
}

func TestAssembleRootThemeFormatsFigure(t *testing.T) {
	tree := comp.Leaf(plot.New("a"))
	tree.Theme = &theme.Theme{FontSize: theme.Num(18)}

	f, err := Assemble(tree, Options{Frame: testFrame})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if *f.Theme.FontSize != 18 {
		t.Errorf("figure font size = %v, want 18", *f.Theme.FontSize)
	}
	if f.Theme.Background == nil {
		t.Error("unset attributes should resolve from defaults")
	}
}

func TestAssembleInsetPanelsDrawLast(t *testing.T) {
	host := comp.Leaf(plot.New("host", plot.WithID("host")))
	mini := comp.Leaf(plot.New("mini", plot.WithID("mini")))
	tree := comp.Inset(host, mini, insetBox(), "")

	f, err := Assemble(tree, Options{Frame: testFrame})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	last := f.Panels[len(f.Panels)-1]
	if last.ID != "mini" || !last.Inset {
		t.Errorf("last panel = %s (inset=%v), want the overlay", last.ID, last.Inset)
	}
}
