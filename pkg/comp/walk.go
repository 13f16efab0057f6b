package comp

import (
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

// Walk visits every node depth-first, parents before children. Inset
// hosts are visited before their overlays.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
	Walk(n.Overlay, visit)
}

// Leaves returns the plots of all leaves in depth-first order,
// including those inside inset overlays.
func Leaves(n *Node) []*plot.Plot {
	var plots []*plot.Plot
	Walk(n, func(m *Node) {
		if m.Kind == KindLeaf {
			plots = append(plots, m.Plot)
		}
	})
	return plots
}

// LeafCount returns the number of leaves in the composition.
func LeafCount(n *Node) int { return len(Leaves(n)) }

// ApplyToAll broadcasts a theme onto every leaf, inset overlays
// included. Attributes a plot set explicitly are kept; only unset
// attributes are filled from the broadcast. Plots are updated in
// place so their identity is preserved, and the tree is returned for
// chaining.
func ApplyToAll(n *Node, th theme.Theme) *Node {
	for _, p := range Leaves(n) {
		p.Theme = p.Theme.Merge(th)
	}
	return n
}
