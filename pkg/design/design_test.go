package design

import (
	"testing"

	qerrors "github.com/quiltviz/quilt/pkg/errors"
)

func TestParseSimpleGrid(t *testing.T) {
	d, err := Parse("ab\ncd")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.NRow != 2 || d.NCol != 2 {
		t.Errorf("dims = (%d, %d), want (2, 2)", d.NRow, d.NCol)
	}
	if len(d.Areas) != 4 {
		t.Fatalf("area count = %d, want 4", len(d.Areas))
	}
	if got := string(d.Areas[0].Label); got != "a" {
		t.Errorf("first area label = %q, want \"a\" (reading order)", got)
	}
}

func TestParseMergedSpans(t *testing.T) {
	d, err := Parse(`
		aab
		aab
		ccc
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(d.Areas) != 3 {
		t.Fatalf("area count = %d, want 3", len(d.Areas))
	}

	a := d.Areas[0]
	if a.RowSpan() != 2 || a.ColSpan() != 2 {
		t.Errorf("area 'a' spans (%d, %d), want (2, 2)", a.RowSpan(), a.ColSpan())
	}

	c := d.Areas[2]
	if c.Top != 2 || c.Left != 0 || c.Right != 2 {
		t.Errorf("area 'c' = %+v, want full third row", c)
	}
}

func TestParseGapCells(t *testing.T) {
	d, err := Parse("a#\n#b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Areas) != 2 {
		t.Errorf("area count = %d, want 2 (gaps are not areas)", len(d.Areas))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		design string
	}{
		{"empty", ""},
		{"only whitespace", "  \n  "},
		{"ragged rows", "ab\nabc"},
		{"L-shaped label", "aa\nab"},
		{"diagonal label", "ab\nba"},
		{"split label", "aba"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.design)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.design)
			}
			if !qerrors.Is(err, qerrors.ErrCodeConstruction) {
				t.Errorf("Parse(%q) error code = %v, want CONSTRUCTION_ERROR",
					tt.design, qerrors.GetCode(err))
			}
		})
	}
}

func TestParseSingleCell(t *testing.T) {
	d, err := Parse("a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.NRow != 1 || d.NCol != 1 || len(d.Areas) != 1 {
		t.Errorf("single cell design = %+v", d)
	}
}
