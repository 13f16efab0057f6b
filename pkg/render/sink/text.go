package sink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quiltviz/quilt/pkg/geom"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/render"
)

// TextOption configures terminal rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	width  int
	height int
	plain  bool
}

// WithTextSize sets the canvas size in terminal cells. The default is
// 72x24, preserving nothing of the frame's aspect ratio beyond what
// those proportions give.
func WithTextSize(width, height int) TextOption {
	return func(r *textRenderer) { r.width = width; r.height = height }
}

// WithTextPlain disables color styling, for piping into files.
func WithTextPlain() TextOption { return func(r *textRenderer) { r.plain = true } }

var (
	styleFigTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleCaption  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240"))
)

// RenderText draws the figure as a box-drawing preview for the
// terminal: one bordered box per panel with its tag and label, plus
// the figure titles and the collected legend block.
func RenderText(f *render.Figure, opts ...TextOption) string {
	r := textRenderer{width: 72, height: 24}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := newCanvas(r.width, r.height)
	for _, p := range f.Panels {
		if p.Role == plot.RoleSpacer {
			continue
		}
		canvas.drawBox(canvas.scale(f.Frame, p.Cell), boxContent(p))
	}
	if f.GuideArea != nil && len(f.Guides) > 0 {
		canvas.drawBox(canvas.scale(f.Frame, *f.GuideArea), guideLines(f.Guides))
	}

	var b strings.Builder
	if f.Title != "" {
		b.WriteString(styled(r.plain, styleFigTitle, f.Title) + "\n")
	}
	if f.Subtitle != "" {
		b.WriteString(styled(r.plain, styleSubtitle, f.Subtitle) + "\n")
	}
	b.WriteString(canvas.String())
	if f.Caption != "" {
		b.WriteString(styled(r.plain, styleCaption, f.Caption) + "\n")
	}
	return b.String()
}

func styled(plain bool, st lipgloss.Style, s string) string {
	if plain {
		return s
	}
	return st.Render(s)
}

func boxContent(p render.Panel) []string {
	if p.Role == plot.RoleGuideArea {
		return nil
	}
	var lines []string
	head := p.Label
	if p.Tag != "" {
		head = p.Tag + ") " + head
	}
	if head != "" {
		lines = append(lines, head)
	}
	for _, g := range p.Guides {
		lines = append(lines, guideLines([]plot.Guide{g})...)
	}
	return lines
}

func guideLines(gs []plot.Guide) []string {
	var lines []string
	for _, g := range gs {
		if g.Title != "" {
			lines = append(lines, g.Title)
		}
		for _, e := range g.Entries {
			lines = append(lines, fmt.Sprintf(" %s %s", e.Glyph, e.Label))
		}
	}
	return lines
}

// canvas is a rune grid with row 0 at the top.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
		for j := range c.cells[i] {
			c.cells[i][j] = ' '
		}
	}
	return c
}

// cellBox is a canvas-space rectangle, inclusive on all sides.
type cellBox struct{ x0, y0, x1, y1 int }

// scale maps a frame rectangle onto the canvas, flipping the y axis.
func (c *canvas) scale(frame, r geom.Rect) cellBox {
	fx := func(x float64) int {
		return clamp(int((x-frame.Left)/frame.Width()*float64(c.w)), 0, c.w-1)
	}
	fy := func(y float64) int {
		return clamp(int((frame.Top-y)/frame.Height()*float64(c.h)), 0, c.h-1)
	}
	return cellBox{x0: fx(r.Left), y0: fy(r.Top), x1: fx(r.Right), y1: fy(r.Bottom)}
}

func (c *canvas) drawBox(b cellBox, content []string) {
	if b.x1 <= b.x0 || b.y1 <= b.y0 {
		return
	}
	for x := b.x0; x <= b.x1; x++ {
		c.cells[b.y0][x] = '─'
		c.cells[b.y1][x] = '─'
	}
	for y := b.y0; y <= b.y1; y++ {
		c.cells[y][b.x0] = '│'
		c.cells[y][b.x1] = '│'
	}
	c.cells[b.y0][b.x0] = '┌'
	c.cells[b.y0][b.x1] = '┐'
	c.cells[b.y1][b.x0] = '└'
	c.cells[b.y1][b.x1] = '┘'

	for i, line := range content {
		y := b.y0 + 1 + i
		if y >= b.y1 {
			break
		}
		for j, ch := range []rune(line) {
			x := b.x0 + 2 + j
			if x >= b.x1 {
				break
			}
			c.cells[y][x] = ch
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
