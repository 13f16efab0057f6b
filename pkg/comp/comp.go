// Package comp implements the composition tree: the recursive
// structure describing how independently created plots assemble into
// one figure.
//
// A node is either a leaf holding a single plot or a container
// arranging its children side by side, stacked, or on an explicit
// grid. An assembled subtree is indistinguishable from a leaf in the
// API, so compositions nest freely. Operators return new nodes but
// share the underlying plots, keeping already-composed plots
// addressable for indexed replacement.
//
// The tree is not safe for concurrent use; each composition is owned
// and transformed by a single builder.
package comp

import (
	"github.com/quiltviz/quilt/pkg/design"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/inset"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

// Kind discriminates the node variants of the composition tree.
type Kind int

const (
	// KindLeaf wraps a single plot.
	KindLeaf Kind = iota
	// KindCombine arranges children on an automatically chosen grid.
	KindCombine
	// KindRow forces children into a single row.
	KindRow
	// KindColumn forces children into a single column.
	KindColumn
	// KindGrid arranges children by an explicit textual design.
	KindGrid
	// KindInset overlays one subtree on top of a host subtree.
	KindInset
)

// Constraints carries explicit layout requests for a container node.
// Zero values mean "decide automatically".
type Constraints struct {
	NRow   int
	NCol   int
	Design string
}

// Node is one vertex of the composition tree. Exactly one of Plot
// (leaves) or Children (containers) is populated; Inset nodes
// additionally carry an Overlay.
type Node struct {
	Kind        Kind
	Plot        *plot.Plot
	Children    []*Node
	Constraints Constraints

	// Inset geometry, set on KindInset nodes only.
	Overlay *Node
	Box     inset.Box
	AlignTo inset.Reference

	// Root render metadata, written by annotation.
	Title    string
	Subtitle string
	Caption  string
	Theme    *theme.Theme

	// Tag sequencing state. TagLevels is meaningful on the root;
	// NewTagLevel marks a subtree that restarts at the next level.
	TagLevels   []string
	NewTagLevel bool

	grid *design.Design // parsed form of Constraints.Design
}

// Leaf wraps a plot as a composition node.
func Leaf(p *plot.Plot) *Node {
	return &Node{Kind: KindLeaf, Plot: p}
}

// GridDesign returns the parsed textual design, or nil when the node
// has none.
func (n *Node) GridDesign() *design.Design { return n.grid }

// shallow returns a copy of n with its own children slice, so
// operators never mutate an input node's child list.
func (n *Node) shallow() *Node {
	c := *n
	c.Children = append([]*Node(nil), n.Children...)
	return &c
}

// Combine joins two compositions. When a is already a Combine node its
// child list is extended, preserving left-to-right order; otherwise a
// new Combine node wraps both operands. Order is significant for both
// layout and indexing.
func Combine(a, b *Node) *Node {
	if a.Kind == KindCombine {
		c := a.shallow()
		c.Children = append(c.Children, b)
		return c
	}
	return &Node{Kind: KindCombine, Children: []*Node{a, b}}
}

// StackRow places b beside a in a single forced row.
func StackRow(a, b *Node) *Node {
	if a.Kind == KindRow {
		c := a.shallow()
		c.Children = append(c.Children, b)
		return c
	}
	return &Node{Kind: KindRow, Children: []*Node{a, b}}
}

// StackCol places b below a in a single forced column.
func StackCol(a, b *Node) *Node {
	if a.Kind == KindColumn {
		c := a.shallow()
		c.Children = append(c.Children, b)
		return c
	}
	return &Node{Kind: KindColumn, Children: []*Node{a, b}}
}

// NewGrid arranges children by a textual design. The design is parsed
// and validated immediately: malformed grids and area/child count
// mismatches surface as CONSTRUCTION_ERROR at build time, never at
// render time.
func NewGrid(designText string, children ...*Node) (*Node, error) {
	d, err := design.Parse(designText)
	if err != nil {
		return nil, err
	}
	if len(d.Areas) != len(children) {
		return nil, qerrors.New(qerrors.ErrCodeConstruction,
			"design names %d areas for %d panels", len(d.Areas), len(children))
	}
	return &Node{
		Kind:        KindGrid,
		Children:    append([]*Node(nil), children...),
		Constraints: Constraints{Design: designText, NRow: d.NRow, NCol: d.NCol},
		grid:        &d,
	}, nil
}

// Inset overlays a subtree on top of host at the position described by
// box, measured against host's panel or full region per ref.
func Inset(host, overlay *Node, box inset.Box, ref inset.Reference) *Node {
	if ref == "" {
		ref = inset.RefPanel
	}
	return &Node{
		Kind:     KindInset,
		Children: []*Node{host},
		Overlay:  overlay,
		Box:      box,
		AlignTo:  ref,
	}
}

// Host returns the subtree an inset node overlays, or nil for other
// kinds.
func (n *Node) Host() *Node {
	if n.Kind != KindInset || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// SetLayout records explicit grid constraints on a composition and
// returns the updated node. A textual design is parsed and validated
// immediately. Applying a layout to a plain Combine promotes it to a
// Grid when a design is given; row and column nodes keep their forced
// shape and only record the constraints.
func SetLayout(n *Node, c Constraints) (*Node, error) {
	out := n.shallow()
	out.Constraints = c
	out.grid = nil

	if c.Design != "" {
		d, err := design.Parse(c.Design)
		if err != nil {
			return nil, err
		}
		if len(d.Areas) != len(out.Children) {
			return nil, qerrors.New(qerrors.ErrCodeConstruction,
				"design names %d areas for %d panels", len(d.Areas), len(out.Children))
		}
		out.grid = &d
		out.Constraints.NRow = d.NRow
		out.Constraints.NCol = d.NCol
		if out.Kind == KindCombine {
			out.Kind = KindGrid
		}
	}
	return out, nil
}

// MarkNewTagLevel flags a subtree to restart auto-tagging at the next
// configured tag level. The flag is consumed by annotation.
func MarkNewTagLevel(n *Node) *Node {
	out := n.shallow()
	out.NewTagLevel = true
	return out
}
