package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/quiltviz/quilt/pkg/cache"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
)

const testFigure = `
title = "Test figure"
tag_levels = ["a"]

[guides]
mode = "collect"

[[plots]]
label = "scatter"

  [[plots.guides]]
  title = "species"
  entries = [{ label = "setosa", glyph = "■" }]

[[plots]]
label = "density"
`

func TestExecuteRendersRequestedFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source:  []byte(testFigure),
		Formats: []string{FormatSVG, FormatJSON, FormatText, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.PanelCount != 2 {
		t.Errorf("panels = %d, want 2", result.Stats.PanelCount)
	}
	if result.Figure == nil || result.Figure.Title != "Test figure" {
		t.Fatal("figure not assembled")
	}
	if len(result.Artifacts) != 4 {
		t.Fatalf("artifacts = %d, want 4", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact malformed")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact malformed")
	}
	if result.CacheInfo.AssembleHit || result.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestExecuteUsesCacheOnSecondRun(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Source: []byte(testFigure), Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.AssembleHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Execute(context.Background(), Options{
		Source: []byte(testFigure), Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.AssembleHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from computed one")
	}

	// Refresh bypasses the cache.
	third, err := r.Execute(context.Background(), Options{
		Source: []byte(testFigure), Formats: []string{FormatSVG, FormatJSON}, Refresh: true,
	})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.AssembleHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteFrameChangeBypassesArtifactCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	small, err := r.Execute(context.Background(), Options{
		Source: []byte(testFigure), Width: 400, Height: 300, Formats: []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("small Execute: %v", err)
	}

	large, err := r.Execute(context.Background(), Options{
		Source: []byte(testFigure), Width: 800, Height: 600, Formats: []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("large Execute: %v", err)
	}

	if large.CacheInfo.AssembleHit || large.CacheInfo.RenderHit {
		t.Errorf("resized run should not hit the cache: %+v", large.CacheInfo)
	}
	if large.Figure.Frame.Width() != 800 || large.Figure.Frame.Height() != 600 {
		t.Errorf("frame = %+v, want 800x600", large.Figure.Frame)
	}
	if string(large.Artifacts[FormatSVG]) == string(small.Artifacts[FormatSVG]) {
		t.Error("resized run returned the smaller frame's artifact")
	}
	if !strings.Contains(string(large.Artifacts[FormatSVG]), `width="800`) {
		t.Errorf("svg does not reflect the requested frame:\n%.120s", large.Artifacts[FormatSVG])
	}
}

func TestExecuteFrameOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{
		Source: []byte(testFigure), Width: 1200, Height: 900,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Figure.Frame.Width() != 1200 || result.Figure.Frame.Height() != 900 {
		t.Errorf("frame = %+v", result.Figure.Frame)
	}
}

func TestOptionsValidation(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("missing source should fail")
	}

	_, err := r.Execute(context.Background(), Options{
		Source: []byte(testFigure), Formats: []string{"gif"},
	})
	if !qerrors.Is(err, qerrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Source: []byte(testFigure)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v", opts.Formats)
	}
	if opts.Scale != 1 {
		t.Errorf("default scale = %v", opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("logger should default")
	}
	// Idempotent.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}
