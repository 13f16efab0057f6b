// Package pipeline runs the complete load → assemble → render flow for
// figure files. Centralizing it here keeps the CLI commands thin and
// gives every entry point the same caching behavior.
//
// The pipeline consists of three stages:
//
//  1. Load: parse the TOML figure description and build the
//     composition tree (operators, annotations, tagging).
//  2. Assemble: collect guides, solve the layout, and flatten the tree
//     into a renderable figure.
//  3. Render: produce output documents in the requested formats.
//
// Assembled figures and rendered artifacts are cached by the content
// hash of the figure source, so re-rendering an unchanged file is a
// cache read.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quiltviz/quilt/pkg/cache"
	"github.com/quiltviz/quilt/pkg/comp"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/figfile"
	"github.com/quiltviz/quilt/pkg/layout"
	"github.com/quiltviz/quilt/pkg/render"
)

// Default frame dimensions when neither the options nor the figure
// file specify them.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Source selects the figure description: raw TOML bytes, or a
	// path to read them from. Source wins when both are set.
	Source     []byte `json:"-"`
	FigurePath string `json:"figure_path,omitempty"`

	// Frame options. Zero values defer to the figure file, then to
	// the package defaults.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	DPI    float64 `json:"dpi,omitempty"`

	// Render options.
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`        // PNG/SVG scale factor
	CellFrames  bool     `json:"cell_frames,omitempty"`  // debug cell outlines in SVG
	Transparent bool     `json:"transparent,omitempty"`  // omit SVG background
	TreeDetail  bool     `json:"tree_detail,omitempty"`  // detailed DOT labels
	Refresh     bool     `json:"refresh,omitempty"`      // bypass the cache

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// File is the parsed figure description.
	File *figfile.File

	// Tree is the composition built from the file, after annotation.
	Tree *comp.Node

	// FigHash is the content hash of the figure source.
	FigHash string

	// Figure is the assembled, solved figure.
	Figure *render.Figure

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount   int
	LoadTime     time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits per pipeline stage.
type CacheInfo struct {
	AssembleHit bool // solved figure came from cache
	RenderHit   bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return qerrors.New(qerrors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, png, json, txt, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Source) == 0 && o.FigurePath == "" {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "figure source or path is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FrameFor resolves the output frame from the options and the figure
// file, options winning.
func (o *Options) FrameFor(f *figfile.File) layout.Frame {
	fr := f.FrameOrDefault()
	if o.Width > 0 {
		fr.Width = o.Width
	}
	if o.Height > 0 {
		fr.Height = o.Height
	}
	if o.DPI > 0 {
		fr.DPI = o.DPI
	}
	return fr
}

// LayoutKeyOpts returns cache key options for figure assembly.
func (o *Options) LayoutKeyOpts(fr layout.Frame, guideMode string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  fr.Width,
		Height: fr.Height,
		DPI:    fr.DPI,
		Guides: guideMode,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// The resolved frame is part of the key: the same figure rendered at a
// different size is a different artifact.
func (o *Options) ArtifactKeyOpts(fr layout.Frame, format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Width:       fr.Width,
		Height:      fr.Height,
		DPI:         fr.DPI,
		Scale:       o.Scale,
		CellFrames:  o.CellFrames,
		Transparent: o.Transparent,
	}
}
