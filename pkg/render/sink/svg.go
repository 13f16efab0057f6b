// Package sink turns an assembled figure into output documents. Each
// sink consumes a [render.Figure] and never touches the composition
// tree, so sinks are safe to run repeatedly and concurrently over the
// same figure.
package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/quiltviz/quilt/pkg/geom"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/render"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellFrames  bool
	transparent bool
	scale       float64
}

// WithCellFrames outlines every cell rectangle, including gaps and
// spacer cells. Useful when debugging a textual design.
func WithCellFrames() SVGOption { return func(r *svgRenderer) { r.cellFrames = true } }

// WithTransparentBackground omits the background rect so the figure
// composites over whatever sits behind it.
func WithTransparentBackground() SVGOption { return func(r *svgRenderer) { r.transparent = true } }

// WithScale multiplies the rendered width and height attributes while
// keeping the viewBox, producing a higher-resolution rasterization.
func WithScale(k float64) SVGOption { return func(r *svgRenderer) { r.scale = k } }

// RenderSVG draws the figure as a standalone SVG document. Figure
// titles render in a band above the frame and the caption in a band
// below it, so the solved panel geometry is never squeezed.
func RenderSVG(f *render.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	fontSize := *f.Theme.FontSize
	headBand := headerHeight(f, fontSize)
	footBand := footerHeight(f, fontSize)
	width := f.Frame.Width()
	height := f.Frame.Height() + headBand + footBand

	// Figure coordinates grow upward; SVG grows downward.
	sy := func(y float64) float64 { return headBand + (f.Frame.Top - y) }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family=%q>`+"\n",
		width, height, width*r.scale, height*r.scale, *f.Theme.FontFamily)

	if !r.transparent {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", *f.Theme.Background)
	}

	renderHeader(&buf, f, fontSize, width)

	for _, p := range f.Panels {
		renderPanel(&buf, &r, f, p, sy, fontSize)
	}

	if f.GuideArea != nil && len(f.Guides) > 0 {
		renderGuideBlock(&buf, f, *f.GuideArea, f.Guides, sy, fontSize)
	}

	if f.Caption != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill=%q font-style="italic">%s</text>`+"\n",
			f.Frame.Left+4, headBand+f.Frame.Height()+fontSize+4, fontSize, *f.Theme.TextColor, escape(f.Caption))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func headerHeight(f *render.Figure, fontSize float64) float64 {
	h := 0.0
	if f.Title != "" {
		h += 2*fontSize + 8
	}
	if f.Subtitle != "" {
		h += 1.3*fontSize + 4
	}
	return h
}

func footerHeight(f *render.Figure, fontSize float64) float64 {
	if f.Caption == "" {
		return 0
	}
	return 1.3*fontSize + 8
}

func renderHeader(buf *bytes.Buffer, f *render.Figure, fontSize, width float64) {
	y := 0.0
	if f.Title != "" {
		y += 1.6 * fontSize
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-weight="bold" fill=%q text-anchor="middle">%s</text>`+"\n",
			width/2, y, 1.5*fontSize, *f.Theme.TextColor, escape(f.Title))
		y += 8
	}
	if f.Subtitle != "" {
		y += 1.1 * fontSize
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill=%q text-anchor="middle">%s</text>`+"\n",
			width/2, y, 1.1*fontSize, *f.Theme.TextColor, escape(f.Subtitle))
	}
}

func renderPanel(buf *bytes.Buffer, r *svgRenderer, f *render.Figure, p render.Panel, sy func(float64) float64, fontSize float64) {
	if r.cellFrames {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#bbbbbb" stroke-dasharray="4 3"/>`+"\n",
			p.Cell.Left, sy(p.Cell.Top), p.Cell.Width(), p.Cell.Height())
	}
	if p.Role != plot.RoleChart {
		return
	}

	fmt.Fprintf(buf, `  <g id="panel-%s">`+"\n", escape(p.ID))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q stroke="#d0d0d0"/>`+"\n",
		p.Cell.Left, sy(p.Cell.Top), p.Cell.Width(), p.Cell.Height(), *p.Theme.Background)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f2f2f2"/>`+"\n",
		p.PanelRect.Left, sy(p.PanelRect.Top), p.PanelRect.Width(), p.PanelRect.Height())

	if p.Label != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" fill=%q text-anchor="middle">%s</text>`+"\n",
			p.PanelRect.CenterX(), sy(p.PanelRect.CenterY())+fontSize*0.35, *p.Theme.FontSize, *p.Theme.TextColor, escape(p.Label))
	}
	if p.Tag != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" font-weight="bold" fill=%q>%s</text>`+"\n",
			p.Cell.Left+4, sy(p.Cell.Top)+1.2*fontSize, 1.2*fontSize, *p.Theme.TextColor, escape(p.Tag))
	}

	// Plot-level guides render beside the panel in keep mode.
	if len(p.Guides) > 0 {
		area := geom.Rect{Left: p.PanelRect.Right + 4, Bottom: p.PanelRect.Bottom, Right: p.Cell.Right, Top: p.PanelRect.Top}
		renderGuideBlock(buf, f, area, p.Guides, sy, 0.8*fontSize)
	}
	buf.WriteString("  </g>\n")
}

func renderGuideBlock(buf *bytes.Buffer, f *render.Figure, area geom.Rect, gs []plot.Guide, sy func(float64) float64, fontSize float64) {
	y := sy(area.Top) + 1.3*fontSize
	for _, g := range gs {
		if g.Title != "" {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-weight="bold" fill=%q>%s</text>`+"\n",
				area.Left+4, y, fontSize, *f.Theme.TextColor, escape(g.Title))
			y += 1.4 * fontSize
		}
		for _, e := range g.Entries {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill=%q>%s %s</text>`+"\n",
				area.Left+8, y, fontSize, *f.Theme.TextColor, escape(e.Glyph), escape(e.Label))
			y += 1.3 * fontSize
		}
		y += 0.6 * fontSize
	}
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }
