// Package treeviz draws the structure of a composition tree as a
// node-link diagram: containers as boxes, leaves as labeled panels,
// inset overlays as dashed edges. It answers "what did my operators
// actually build" when a layout comes out unexpected.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/quiltviz/quilt/pkg/comp"
	"github.com/quiltviz/quilt/pkg/plot"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes tags, roles, and layout constraints in node
	// labels. When false, only kinds and plot labels are shown.
	Detailed bool
}

// ToDOT converts a composition tree to Graphviz DOT format. The
// resulting string renders with [RenderSVG] or [RenderPNG].
//
// Inset overlays hang off their host node with a dashed edge labeled
// "inset"; placeholder leaves (spacers, guide areas) draw with grey
// fill.
func ToDOT(tree *comp.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph composition {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make(map[*comp.Node]string)
	next := 0
	comp.Walk(tree, func(n *comp.Node) {
		ids[n] = fmt.Sprintf("n%d", next)
		next++
	})

	comp.Walk(tree, func(n *comp.Node) {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", ids[n], strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	comp.Walk(tree, func(n *comp.Node) {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", ids[n], ids[c])
		}
		if n.Overlay != nil {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=\"inset\"];\n", ids[n], ids[n.Overlay])
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *comp.Node, detailed bool) string {
	head := kindName(n.Kind)
	if n.Kind == comp.KindLeaf {
		switch {
		case n.Plot.Role == plot.RoleSpacer:
			head = "spacer"
		case n.Plot.Role == plot.RoleGuideArea:
			head = "guide area"
		case n.Plot.Label != "":
			head = n.Plot.Label
		}
	}
	if !detailed {
		return head
	}

	var parts []string
	if n.Kind == comp.KindLeaf && n.Plot.Tag != "" {
		parts = append(parts, "tag: "+n.Plot.Tag)
	}
	if c := n.Constraints; c.NRow > 0 || c.NCol > 0 {
		parts = append(parts, fmt.Sprintf("grid: %dx%d", c.NRow, c.NCol))
	}
	if n.Constraints.Design != "" {
		parts = append(parts, "design: "+strings.ReplaceAll(n.Constraints.Design, "\n", "/"))
	}
	if n.NewTagLevel {
		parts = append(parts, "new tag level")
	}
	if len(parts) == 0 {
		return head
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *comp.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Kind == comp.KindLeaf && n.Plot.IsPlaceholder() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	} else if n.Kind != comp.KindLeaf {
		attrs = append(attrs, "fillcolor=\"#eef4fb\"")
	}
	return attrs
}

func kindName(k comp.Kind) string {
	switch k {
	case comp.KindLeaf:
		return "leaf"
	case comp.KindCombine:
		return "combine"
	case comp.KindRow:
		return "row"
	case comp.KindColumn:
		return "column"
	case comp.KindGrid:
		return "grid"
	case comp.KindInset:
		return "inset"
	}
	return "node"
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT diagram to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
