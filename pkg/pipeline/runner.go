package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quiltviz/quilt/pkg/cache"
	"github.com/quiltviz/quilt/pkg/comp"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/figfile"
	"github.com/quiltviz/quilt/pkg/observability"
	"github.com/quiltviz/quilt/pkg/render"
	"github.com/quiltviz/quilt/pkg/render/sink"
	"github.com/quiltviz/quilt/pkg/render/treeviz"
)

// Runner executes the pipeline with caching. It is stateless apart
// from the cache and logger, so one Runner serves concurrent runs with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil
// keyer selects the default keyer, and a nil logger the default
// logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → assemble → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.FigurePath)
	err := r.load(result, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.FigurePath,
		comp.LeafCount(result.Tree), time.Since(loadStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PanelCount = comp.LeafCount(result.Tree)

	r.Logger.Info("loaded figure",
		"panels", result.Stats.PanelCount,
		"duration", result.Stats.LoadTime)

	assembleStart := time.Now()
	observability.Pipeline().OnAssembleStart(ctx, result.Stats.PanelCount)
	err = r.assemble(ctx, result, opts)
	observability.Pipeline().OnAssembleComplete(ctx, result.Stats.PanelCount,
		time.Since(assembleStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.AssembleTime = time.Since(assembleStart)

	r.Logger.Info("assembled figure",
		"grid", result.Figure.NRow*result.Figure.NCol,
		"cached", result.CacheInfo.AssembleHit,
		"duration", result.Stats.AssembleTime)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	err = r.renderAll(ctx, result, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats,
		time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// load reads and parses the figure source and builds the composition.
func (r *Runner) load(result *Result, opts Options) error {
	source := opts.Source
	if len(source) == 0 {
		data, err := os.ReadFile(opts.FigurePath)
		if err != nil {
			return qerrors.Wrap(qerrors.ErrCodeInvalidFigure, err, "read figure file")
		}
		source = data
	}

	f, err := figfile.Parse(source)
	if err != nil {
		return err
	}
	tree, err := f.Build()
	if err != nil {
		return err
	}

	result.File = f
	result.Tree = tree
	result.FigHash = cache.Hash(source)
	return nil
}

// assemble solves the composition into a figure, consulting the cache.
func (r *Runner) assemble(ctx context.Context, result *Result, opts Options) error {
	frame := opts.FrameFor(result.File)
	mode := result.File.GuideMode()
	key := r.Keyer.LayoutKey(result.FigHash, opts.LayoutKeyOpts(frame, string(mode)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if f, err := render.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Figure = f
				result.CacheInfo.AssembleHit = true
				return nil
			}
			// Corrupt entry: fall through and recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	f, err := render.Assemble(result.Tree, render.Options{Frame: frame, GuideMode: mode})
	if err != nil {
		return err
	}
	result.Figure = f

	if data, err := f.Marshal(); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return nil
}

// renderAll produces every requested format, consulting the cache per
// format.
func (r *Runner) renderAll(ctx context.Context, result *Result, opts Options) error {
	allCached := true
	frame := opts.FrameFor(result.File)

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.FigHash, opts.ArtifactKeyOpts(frame, format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := r.renderFormat(result, format, opts)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	result.CacheInfo.RenderHit = allCached && len(opts.Formats) > 0
	return nil
}

func (r *Runner) renderFormat(result *Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(result.Figure, r.svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(result.Figure,
			sink.WithPNGScale(pngScale(opts.Scale)),
			sink.WithPNGSVGOptions(r.svgOptions(opts)...))
	case FormatJSON:
		return sink.RenderJSON(result.Figure)
	case FormatText:
		return []byte(sink.RenderText(result.Figure, sink.WithTextPlain())), nil
	case FormatDOT:
		return []byte(treeviz.ToDOT(result.Tree, treeviz.Options{Detailed: opts.TreeDetail})), nil
	}
	return nil, qerrors.New(qerrors.ErrCodeInvalidFormat, "invalid format %q", format)
}

func (r *Runner) svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.CellFrames {
		svgOpts = append(svgOpts, sink.WithCellFrames())
	}
	if opts.Transparent {
		svgOpts = append(svgOpts, sink.WithTransparentBackground())
	}
	if opts.Scale != 1 {
		svgOpts = append(svgOpts, sink.WithScale(opts.Scale))
	}
	return svgOpts
}

// pngScale keeps the 2x default when the caller leaves scale at 1.
func pngScale(scale float64) float64 {
	if scale == 1 {
		return 2.0
	}
	return scale
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
