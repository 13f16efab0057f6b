// Package theme holds the visual settings a plot or a whole figure can
// carry: legend placement, typography, colors, and panel spacing.
//
// Every attribute is a pointer so the engine can distinguish a value a
// plot set explicitly from one it merely inherited. Broadcasting a
// theme across a composition fills the gaps without clobbering what a
// plot already chose.
package theme

// Position names a side of the plot where collected guides render.
type Position string

// Legend positions.
const (
	PositionRight  Position = "right"
	PositionLeft   Position = "left"
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// ValidPositions is the set of supported legend positions.
var ValidPositions = map[Position]bool{
	PositionRight:  true,
	PositionLeft:   true,
	PositionTop:    true,
	PositionBottom: true,
}

// Theme is a set of visual attributes. A nil field means "unset": the
// attribute falls through to whatever a broadcast or the ambient
// defaults provide. Non-nil fields are explicit and survive merges.
type Theme struct {
	LegendPosition *Position
	FontFamily     *string
	FontSize       *float64
	Background     *string
	TextColor      *string
	PanelSpacing   *float64
}

// Default is the ambient theme used when neither a plot nor a
// broadcast sets an attribute.
func Default() Theme {
	return Theme{
		LegendPosition: Pos(PositionRight),
		FontFamily:     Str("Helvetica, Arial, sans-serif"),
		FontSize:       Num(12),
		Background:     Str("#ffffff"),
		TextColor:      Str("#1a1a1a"),
		PanelSpacing:   Num(0.02),
	}
}

// Pos returns a pointer to p, for building Theme literals.
func Pos(p Position) *Position { return &p }

// Str returns a pointer to s, for building Theme literals.
func Str(s string) *string { return &s }

// Num returns a pointer to f, for building Theme literals.
func Num(f float64) *float64 { return &f }

// Merge layers t over fallback: explicit settings in t win, unset
// attributes are filled from fallback. Neither input is modified.
func (t Theme) Merge(fallback Theme) Theme {
	out := t
	if out.LegendPosition == nil {
		out.LegendPosition = fallback.LegendPosition
	}
	if out.FontFamily == nil {
		out.FontFamily = fallback.FontFamily
	}
	if out.FontSize == nil {
		out.FontSize = fallback.FontSize
	}
	if out.Background == nil {
		out.Background = fallback.Background
	}
	if out.TextColor == nil {
		out.TextColor = fallback.TextColor
	}
	if out.PanelSpacing == nil {
		out.PanelSpacing = fallback.PanelSpacing
	}
	return out
}

// Resolved returns t with every unset attribute filled from Default.
func (t Theme) Resolved() Theme {
	return t.Merge(Default())
}

// LegendPositionOr returns the explicit legend position or def when unset.
func (t Theme) LegendPositionOr(def Position) Position {
	if t.LegendPosition != nil {
		return *t.LegendPosition
	}
	return def
}
