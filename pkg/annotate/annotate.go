// Package annotate decorates a composition with figure-level text and
// auto-generated panel tags. Titles attach to the root's render
// metadata; tags are written onto the leaf plots in depth-first order,
// with subtrees marked for a new tag level sequencing independently.
package annotate

import (
	"github.com/quiltviz/quilt/pkg/comp"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

// Annotations carries everything Apply writes onto a composition.
// Empty strings leave the corresponding root field untouched, so
// repeated annotation calls accumulate.
type Annotations struct {
	Title    string
	Subtitle string
	Caption  string

	// Theme formats the figure-level text. Nil means the ambient theme.
	Theme *theme.Theme

	// TagLevels configures auto-tagging, one style token per nesting
	// level: "a"/"A" latin, "1" arabic, "i"/"I" roman. Empty disables
	// tagging.
	TagLevels []string
}

// Apply writes the annotations onto the composition and runs tag
// assignment when tag levels are configured. The tree is decorated in
// place and returned for chaining; leaf plots keep their identity so
// tags survive later indexed replacement of siblings.
func Apply(tree *comp.Node, a Annotations) (*comp.Node, error) {
	if tree == nil {
		return nil, qerrors.New(qerrors.ErrCodeInvalidInput, "nil composition")
	}

	if a.Title != "" {
		tree.Title = a.Title
	}
	if a.Subtitle != "" {
		tree.Subtitle = a.Subtitle
	}
	if a.Caption != "" {
		tree.Caption = a.Caption
	}
	if a.Theme != nil {
		th := *a.Theme
		tree.Theme = &th
	}

	if len(a.TagLevels) > 0 {
		for _, style := range a.TagLevels {
			if !validStyle(style) {
				return nil, qerrors.New(qerrors.ErrCodeInvalidTag,
					"unknown tag style %q", style)
			}
		}
		tree.TagLevels = append([]string(nil), a.TagLevels...)
		counter := 0
		if err := assignTags(tree, tree.TagLevels, 0, &counter); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// assignTags walks the subtree depth-first, handing each chart leaf the
// next tag of the current level. A child marked as a new tag level
// sequences its own subtree at the next configured level with a fresh
// counter and does not advance the parent's counter; the mark is
// ignored when no deeper level is configured.
func assignTags(n *comp.Node, levels []string, level int, counter *int) error {
	if n == nil {
		return nil
	}

	if n.Kind == comp.KindLeaf {
		p := n.Plot
		if p.Role != plot.RoleChart {
			return nil
		}
		tag, err := formatTag(levels[level], *counter)
		if err != nil {
			return err
		}
		p.Tag = tag
		*counter++
		return nil
	}

	for _, child := range n.Children {
		if child.NewTagLevel && level+1 < len(levels) {
			sub := 0
			if err := assignTags(child, levels, level+1, &sub); err != nil {
				return err
			}
			continue
		}
		if err := assignTags(child, levels, level, counter); err != nil {
			return err
		}
	}

	// Inset overlays tag as ordinary descendants of their host node.
	if n.Overlay != nil {
		if n.Overlay.NewTagLevel && level+1 < len(levels) {
			sub := 0
			return assignTags(n.Overlay, levels, level+1, &sub)
		}
		return assignTags(n.Overlay, levels, level, counter)
	}
	return nil
}
