package layout

import (
	"github.com/quiltviz/quilt/pkg/comp"
	"github.com/quiltviz/quilt/pkg/design"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/geom"
	"github.com/quiltviz/quilt/pkg/inset"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

// panelSpacing resolves the gutter between sibling cells from the
// figure theme at the root, falling back to the ambient default.
func panelSpacing(tree *comp.Node) float64 {
	if tree.Theme != nil && tree.Theme.PanelSpacing != nil {
		return *tree.Theme.PanelSpacing
	}
	return *theme.Default().PanelSpacing
}

// Solve computes absolute geometry for every leaf of the composition
// within the given frame. Nested subtrees are solved independently and
// occupy a single cell of their parent's grid; inset overlays are
// resolved against their host's panel or full region.
func Solve(tree *comp.Node, f Frame) (*Layout, error) {
	if tree == nil {
		return nil, qerrors.New(qerrors.ErrCodeInvalidInput, "nil composition")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidInput,
			"frame must have positive extent, got %gx%g", f.Width, f.Height)
	}
	dpi := f.DPI
	if dpi == 0 {
		dpi = inset.DefaultDPI
	}

	l := &Layout{
		Frame:    geom.Rect{Left: 0, Bottom: 0, Right: f.Width, Top: f.Height},
		DPI:      dpi,
		NRow:     1,
		NCol:     1,
		Cells:    make(map[string]geom.Rect),
		Panels:   make(map[string]geom.Rect),
		InsetIDs: make(map[string]bool),
		spacing:  panelSpacing(tree),
	}

	if err := l.solveInto(tree, l.Frame, true); err != nil {
		return nil, err
	}
	l.alignPanels()
	return l, nil
}

func (l *Layout) solveInto(n *comp.Node, rect geom.Rect, root bool) error {
	switch n.Kind {
	case comp.KindLeaf:
		return l.placeLeaf(n, rect, root)
	case comp.KindInset:
		return l.placeInset(n, rect, root)
	default:
		return l.placeGrid(n, rect, root)
	}
}

func (l *Layout) placeLeaf(n *comp.Node, rect geom.Rect, root bool) error {
	p := n.Plot
	l.Cells[p.ID] = rect

	if p.IsPlaceholder() {
		l.Panels[p.ID] = rect
	} else {
		l.Panels[p.ID] = p.PanelIn(rect)
	}
	if p.Role == plot.RoleGuideArea {
		cell := rect
		l.GuideArea = &cell
	}

	if root {
		l.RowBands = []Band{{Start: rect.Top, End: rect.Bottom, PlotIDs: []string{p.ID}}}
		l.ColBands = []Band{{Start: rect.Left, End: rect.Right, PlotIDs: []string{p.ID}}}
	}
	return nil
}

func (l *Layout) placeInset(n *comp.Node, rect geom.Rect, root bool) error {
	host := n.Host()
	if err := l.solveInto(host, rect, root); err != nil {
		return err
	}

	// The reference panel is the host's own panel for a leaf host; an
	// assembled host has no single panel, so its full cell stands in.
	hostPanel := rect
	if host.Kind == comp.KindLeaf {
		hostPanel = l.Panels[host.Plot.ID]
	}

	resolved, err := inset.Place(rect, hostPanel, n.Box, n.AlignTo, l.DPI)
	if err != nil {
		return err
	}

	if err := l.solveInto(n.Overlay, resolved, false); err != nil {
		return err
	}
	for _, p := range comp.Leaves(n.Overlay) {
		l.InsetIDs[p.ID] = true
	}
	return nil
}

func (l *Layout) placeGrid(n *comp.Node, rect geom.Rect, root bool) error {
	children := n.Children
	if len(children) == 0 {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "container node has no children")
	}

	if d := n.GridDesign(); d != nil {
		return l.placeDesigned(children, *d, rect, root)
	}

	nrow, ncol, err := l.gridShape(n)
	if err != nil {
		return err
	}

	gx := l.spacing * rect.Width()
	gy := l.spacing * rect.Height()
	cellW := (rect.Width() - float64(ncol-1)*gx) / float64(ncol)
	cellH := (rect.Height() - float64(nrow-1)*gy) / float64(nrow)

	if root {
		l.NRow, l.NCol = nrow, ncol
		l.initBands(rect, nrow, ncol, cellW, cellH, gx, gy)
	}

	for i, child := range children {
		row, col := i/ncol, i%ncol
		cell := geom.Rect{
			Left:   rect.Left + float64(col)*(cellW+gx),
			Top:    rect.Top - float64(row)*(cellH+gy),
			Right:  rect.Left + float64(col)*(cellW+gx) + cellW,
			Bottom: rect.Top - float64(row)*(cellH+gy) - cellH,
		}
		if err := l.solveInto(child, cell, false); err != nil {
			return err
		}
		if root && child.Kind == comp.KindLeaf {
			l.RowBands[row].PlotIDs = append(l.RowBands[row].PlotIDs, child.Plot.ID)
			l.ColBands[col].PlotIDs = append(l.ColBands[col].PlotIDs, child.Plot.ID)
		}
	}
	return nil
}

func (l *Layout) placeDesigned(children []*comp.Node, d design.Design, rect geom.Rect, root bool) error {
	gx := l.spacing * rect.Width()
	gy := l.spacing * rect.Height()
	cellW := (rect.Width() - float64(d.NCol-1)*gx) / float64(d.NCol)
	cellH := (rect.Height() - float64(d.NRow-1)*gy) / float64(d.NRow)

	if root {
		l.NRow, l.NCol = d.NRow, d.NCol
		l.initBands(rect, d.NRow, d.NCol, cellW, cellH, gx, gy)
	}

	for i, child := range children {
		a := d.Areas[i]
		left := rect.Left + float64(a.Left)*(cellW+gx)
		top := rect.Top - float64(a.Top)*(cellH+gy)
		cell := geom.Rect{
			Left:   left,
			Top:    top,
			Right:  left + float64(a.ColSpan())*cellW + float64(a.ColSpan()-1)*gx,
			Bottom: top - float64(a.RowSpan())*cellH - float64(a.RowSpan()-1)*gy,
		}
		if err := l.solveInto(child, cell, false); err != nil {
			return err
		}
		if root && child.Kind == comp.KindLeaf {
			l.RowBands[a.Bottom].PlotIDs = append(l.RowBands[a.Bottom].PlotIDs, child.Plot.ID)
			l.ColBands[a.Left].PlotIDs = append(l.ColBands[a.Left].PlotIDs, child.Plot.ID)
		}
	}
	return nil
}

// gridShape resolves the row/column counts for a container node.
// Row and Column nodes force a single row or column regardless of any
// stored constraints; Combine nodes honor explicit counts and fall
// back to the auto heuristic.
func (l *Layout) gridShape(n *comp.Node) (int, int, error) {
	count := len(n.Children)
	switch n.Kind {
	case comp.KindRow:
		return 1, count, nil
	case comp.KindColumn:
		return count, 1, nil
	default:
		return Dims(count, n.Constraints.NRow, n.Constraints.NCol)
	}
}

func (l *Layout) initBands(rect geom.Rect, nrow, ncol int, cellW, cellH, gx, gy float64) {
	l.RowBands = make([]Band, nrow)
	for r := 0; r < nrow; r++ {
		top := rect.Top - float64(r)*(cellH+gy)
		l.RowBands[r] = Band{Start: top, End: top - cellH}
	}
	l.ColBands = make([]Band, ncol)
	for c := 0; c < ncol; c++ {
		left := rect.Left + float64(c)*(cellW+gx)
		l.ColBands[c] = Band{Start: left, End: left + cellW}
	}
}

// alignPanels unifies axis edges across top-level siblings: panels in
// one column band share the left edge of the widest axis region, and
// panels in one row band share the bottom edge of the tallest one.
func (l *Layout) alignPanels() {
	for _, band := range l.ColBands {
		maxLeft := 0.0
		found := false
		for _, id := range band.PlotIDs {
			if p, ok := l.Panels[id]; ok && (!found || p.Left > maxLeft) {
				maxLeft = p.Left
				found = true
			}
		}
		if !found {
			continue
		}
		for _, id := range band.PlotIDs {
			p := l.Panels[id]
			p.Left = maxLeft
			l.Panels[id] = p
		}
	}

	for _, band := range l.RowBands {
		maxBottom := 0.0
		found := false
		for _, id := range band.PlotIDs {
			if p, ok := l.Panels[id]; ok && (!found || p.Bottom > maxBottom) {
				maxBottom = p.Bottom
				found = true
			}
		}
		if !found {
			continue
		}
		for _, id := range band.PlotIDs {
			p := l.Panels[id]
			p.Bottom = maxBottom
			l.Panels[id] = p
		}
	}
}
