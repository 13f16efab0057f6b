// Package guides implements legend collection across a composition.
// Plots arrive with their own guide lists; in collect mode the figure
// gathers them into one shared set, dropping guides that would render
// identically, so a color scale used by five panels appears once.
package guides

import (
	"github.com/quiltviz/quilt/pkg/comp"
	"github.com/quiltviz/quilt/pkg/plot"
)

// Mode controls what happens to plot-level guides during assembly.
type Mode string

const (
	// ModeKeep leaves every guide attached to its own plot.
	ModeKeep Mode = "keep"
	// ModeCollect detaches guides from plots and merges them into a
	// single figure-level set.
	ModeCollect Mode = "collect"
)

// Collect gathers guides from every leaf of the composition in
// depth-first order. In collect mode the guides are detached from their
// plots and the deduplicated set is returned; in keep mode plots are
// untouched and the result is empty. Placeholder plots never carry
// guides and are skipped.
func Collect(tree *comp.Node, mode Mode) []plot.Guide {
	if mode != ModeCollect {
		return nil
	}

	var all []plot.Guide
	for _, p := range comp.Leaves(tree) {
		if p.IsPlaceholder() || len(p.Guides) == 0 {
			continue
		}
		all = append(all, p.Guides...)
		p.Guides = nil
	}
	return Dedupe(all)
}

// Dedupe drops guides whose rendered appearance duplicates an earlier
// guide, preserving first-seen order. Two guides with the same title
// but different entries are distinct; two guides that would draw
// identically collapse to one regardless of which plots contributed
// them. Dedupe is idempotent.
func Dedupe(gs []plot.Guide) []plot.Guide {
	if len(gs) < 2 {
		return gs
	}
	seen := make(map[string]bool, len(gs))
	out := gs[:0:0]
	for _, g := range gs {
		key := g.AppearanceKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, g)
	}
	return out
}
