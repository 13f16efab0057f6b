// Package design parses the textual grid grammar used to place panels
// in a composition: one character per cell, rows separated by line
// breaks, '#' for an intentional gap, and equal characters forming a
// merged cell. A label's cells must form a contiguous rectangle;
// anything else is rejected when the tree is built, not at render time.
//
// Example, two wide panels over a footer spanning the full width:
//
//	aab
//	aab
//	ccc
package design

import (
	"strings"

	qerrors "github.com/quiltviz/quilt/pkg/errors"
)

// Gap is the cell marker for an intentionally empty cell.
const Gap = '#'

// Area is the rectangular span one label occupies, in cell
// coordinates. Rows count from the top, columns from the left; both
// ends are inclusive.
type Area struct {
	Label         rune
	Top, Left     int
	Bottom, Right int
}

// RowSpan returns the number of rows the area covers.
func (a Area) RowSpan() int { return a.Bottom - a.Top + 1 }

// ColSpan returns the number of columns the area covers.
func (a Area) ColSpan() int { return a.Right - a.Left + 1 }

// Design is a parsed grid specification.
type Design struct {
	NRow, NCol int
	// Areas lists the labeled regions in reading order (first
	// appearance, left-to-right then top-to-bottom). Children of a
	// grid are matched to areas by this order.
	Areas []Area
}

// Parse validates and parses a textual design. It returns a
// CONSTRUCTION_ERROR when rows have unequal widths, when the design is
// empty, or when a label's cells do not form a contiguous rectangle.
func Parse(s string) (Design, error) {
	lines := splitLines(s)
	if len(lines) == 0 {
		return Design{}, qerrors.New(qerrors.ErrCodeConstruction, "empty design")
	}

	grid := make([][]rune, len(lines))
	ncol := len([]rune(lines[0]))
	for i, line := range lines {
		row := []rune(line)
		if len(row) != ncol {
			return Design{}, qerrors.New(qerrors.ErrCodeConstruction,
				"design row %d has %d cells, want %d", i+1, len(row), ncol)
		}
		grid[i] = row
	}
	if ncol == 0 {
		return Design{}, qerrors.New(qerrors.ErrCodeConstruction, "empty design")
	}

	d := Design{NRow: len(grid), NCol: ncol}

	// Bounding box per label, in reading order.
	bounds := map[rune]*Area{}
	var order []rune
	for r, row := range grid {
		for c, label := range row {
			if label == Gap {
				continue
			}
			a, seen := bounds[label]
			if !seen {
				bounds[label] = &Area{Label: label, Top: r, Left: c, Bottom: r, Right: c}
				order = append(order, label)
				continue
			}
			if r > a.Bottom {
				a.Bottom = r
			}
			if c < a.Left {
				a.Left = c
			}
			if c > a.Right {
				a.Right = c
			}
		}
	}

	// A label is rectangular iff every cell inside its bounding box
	// carries the label.
	for _, label := range order {
		a := bounds[label]
		for r := a.Top; r <= a.Bottom; r++ {
			for c := a.Left; c <= a.Right; c++ {
				if grid[r][c] != label {
					return Design{}, qerrors.New(qerrors.ErrCodeConstruction,
						"label %q does not form a rectangle", string(label))
				}
			}
		}
		d.Areas = append(d.Areas, *a)
	}

	return d, nil
}

// splitLines trims the design string and drops blank surrounding lines
// so multi-line raw literals can be written naturally.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
