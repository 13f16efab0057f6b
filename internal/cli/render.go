package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quiltviz/quilt/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple formats)
	formats     []string // output formats: svg, png, json, txt, dot
	width       float64  // frame width in pixels (0 defers to the figure file)
	height      float64  // frame height in pixels (0 defers to the figure file)
	dpi         float64  // resolution for absolute inset units (0 defers)
	scale       float64  // SVG/PNG scale factor
	transparent bool     // omit the SVG background rectangle
	cellFrames  bool     // draw debug outlines around layout cells
	detailed    bool     // detailed node labels in DOT output
	noCache     bool     // disable the render cache
	refresh     bool     // recompute even when cached
}

// renderCommand creates the render command for generating figure documents.
// It reads a TOML figure file, runs the full pipeline, and writes one
// output file per requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a figure file to SVG, PNG, JSON, text, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, txt, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (overrides the figure file)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (overrides the figure file)")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "resolution for absolute inset units (overrides the figure file)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "scale factor for SVG and PNG output")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "omit the background in SVG output")
	cmd.Flags().BoolVar(&opts.cellFrames, "cell-frames", false, "draw layout cell outlines (debug)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show detailed node labels in DOT output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

// runRender executes the pipeline for the figure file and writes every
// requested format next to the input (or under --output).
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s", input))
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		FigurePath:  input,
		Width:       opts.width,
		Height:      opts.height,
		DPI:         opts.dpi,
		Formats:     opts.formats,
		Scale:       opts.scale,
		CellFrames:  opts.cellFrames,
		Transparent: opts.transparent,
		TreeDetail:  opts.detailed,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result, input, opts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.PanelCount, result.Figure.NRow, result.Figure.NCol,
		result.CacheInfo.AssembleHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if len(paths) == 1 && strings.HasSuffix(paths[0], ".svg") {
		printNextStep("Preview in the terminal", fmt.Sprintf("quilt preview %s", input))
	}
	return nil
}

// writeArtifacts writes each rendered format to its own file and
// returns the paths written, in format order.
func writeArtifacts(result *pipeline.Result, input string, opts *renderOpts) ([]string, error) {
	single := len(opts.formats) == 1

	var paths []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, single)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the output file path for one format.
// With a single format, --output is used verbatim when set; otherwise
// the extension is derived from the format and the base from --output
// or the input file name.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input; if
// output carries a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
