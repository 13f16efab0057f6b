package plot

import "strings"

// Guide is a legend explaining one visual encoding: a title plus the
// labeled key glyphs shown to the reader.
type Guide struct {
	Title   string
	Entries []GuideEntry
}

// GuideEntry is a single key row inside a guide.
type GuideEntry struct {
	Label string // value text, e.g. "setosa"
	Glyph string // rendered key, e.g. "■ #1b9e77" or "● size=3"
}

// AppearanceKey serializes the guide's rendered appearance. Two guides
// are considered duplicates exactly when their keys are equal, even if
// they originate from different data or scales. The key covers the
// title and every entry's label and glyph, nothing else.
func (g Guide) AppearanceKey() string {
	var b strings.Builder
	b.WriteString(g.Title)
	for _, e := range g.Entries {
		b.WriteString("\x1f")
		b.WriteString(e.Label)
		b.WriteString("\x1e")
		b.WriteString(e.Glyph)
	}
	return b.String()
}
