package comp

import qerrors "github.com/quiltviz/quilt/pkg/errors"

// Slots returns the addressable units of a composition in flattened
// left-to-right order: each direct child counts as one slot, whether
// it is a leaf or an assembled subtree. A bare leaf exposes itself as
// slot 0, and an inset exposes its host then its overlay.
//
// Flattening into a stable sequence avoids aliasing hazards when the
// same subtree is referenced from several composition sites.
func Slots(n *Node) []*Node {
	switch n.Kind {
	case KindLeaf:
		return []*Node{n}
	case KindInset:
		return []*Node{n.Children[0], n.Overlay}
	default:
		return n.Children
	}
}

// IndexGet returns the i-th slot of the composition. Out-of-range
// indices report INDEX_OUT_OF_RANGE.
func IndexGet(n *Node, i int) (*Node, error) {
	slots := Slots(n)
	if i < 0 || i >= len(slots) {
		return nil, qerrors.New(qerrors.ErrCodeIndexOutOfRange,
			"index %d out of range [0, %d)", i, len(slots))
	}
	return slots[i], nil
}

// IndexSet replaces the i-th slot with repl and returns the updated
// composition. Untouched siblings keep their identity. On an
// out-of-range index the error is reported immediately and the input
// tree is left unmodified.
func IndexSet(n *Node, i int, repl *Node) (*Node, error) {
	switch n.Kind {
	case KindLeaf:
		if i != 0 {
			return nil, qerrors.New(qerrors.ErrCodeIndexOutOfRange,
				"index %d out of range [0, 1)", i)
		}
		return repl, nil
	case KindInset:
		if i < 0 || i > 1 {
			return nil, qerrors.New(qerrors.ErrCodeIndexOutOfRange,
				"index %d out of range [0, 2)", i)
		}
		out := n.shallow()
		if i == 0 {
			out.Children[0] = repl
		} else {
			out.Overlay = repl
		}
		return out, nil
	default:
		if i < 0 || i >= len(n.Children) {
			return nil, qerrors.New(qerrors.ErrCodeIndexOutOfRange,
				"index %d out of range [0, %d)", i, len(n.Children))
		}
		out := n.shallow()
		out.Children[i] = repl
		return out, nil
	}
}
