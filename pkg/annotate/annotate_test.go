package annotate

import (
	"testing"

	"github.com/quiltviz/quilt/pkg/comp"
	qerrors "github.com/quiltviz/quilt/pkg/errors"
	"github.com/quiltviz/quilt/pkg/plot"
	"github.com/quiltviz/quilt/pkg/theme"
)

func TestApplyAttachesRootText(t *testing.T) {
	tree := comp.Leaf(plot.New("a"))

	_, err := Apply(tree, Annotations{Title: "Results", Caption: "Fig 1"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tree.Title != "Results" || tree.Caption != "Fig 1" {
		t.Errorf("root text = %q / %q", tree.Title, tree.Caption)
	}

	// A second call with only a subtitle keeps the earlier fields.
	if _, err := Apply(tree, Annotations{Subtitle: "n=42"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tree.Title != "Results" || tree.Subtitle != "n=42" {
		t.Errorf("annotations should accumulate, got %q / %q", tree.Title, tree.Subtitle)
	}
}

func TestApplyTagsDepthFirst(t *testing.T) {
	a := plot.New("a")
	b := plot.New("b")
	c := plot.New("c")
	tree := comp.Combine(comp.Combine(comp.Leaf(a), comp.Leaf(b)), comp.Leaf(c))

	if _, err := Apply(tree, Annotations{TagLevels: []string{StyleLatinLower}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := map[*plot.Plot]string{a: "a", b: "b", c: "c"}
	for p, tag := range want {
		if p.Tag != tag {
			t.Errorf("plot %s tag = %q, want %q", p.Label, p.Tag, tag)
		}
	}
}

func TestApplyNewTagLevelSequencesIndependently(t *testing.T) {
	first := plot.New("first")
	x := plot.New("x")
	y := plot.New("y")
	last := plot.New("last")

	inner := comp.MarkNewTagLevel(comp.Combine(comp.Leaf(x), comp.Leaf(y)))
	tree := comp.Combine(comp.Combine(comp.Leaf(first), inner), comp.Leaf(last))

	_, err := Apply(tree, Annotations{TagLevels: []string{StyleRomanUpper, StyleLatinLower}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// The marked subtree sequences at the second level and does not
	// advance the root counter.
	if first.Tag != "I" || last.Tag != "II" {
		t.Errorf("root tags = %q, %q; want I, II", first.Tag, last.Tag)
	}
	if x.Tag != "a" || y.Tag != "b" {
		t.Errorf("subtree tags = %q, %q; want a, b", x.Tag, y.Tag)
	}
}

func TestApplyTagStyles(t *testing.T) {
	tests := []struct {
		style string
		want  [3]string
	}{
		{StyleLatinUpper, [3]string{"A", "B", "C"}},
		{StyleArabic, [3]string{"1", "2", "3"}},
		{StyleRomanLower, [3]string{"i", "ii", "iii"}},
		{StyleRomanUpper, [3]string{"I", "II", "III"}},
	}

	for _, tt := range tests {
		ps := [3]*plot.Plot{plot.New("a"), plot.New("b"), plot.New("c")}
		tree := comp.Combine(comp.Combine(comp.Leaf(ps[0]), comp.Leaf(ps[1])), comp.Leaf(ps[2]))
		if _, err := Apply(tree, Annotations{TagLevels: []string{tt.style}}); err != nil {
			t.Fatalf("Apply(%q): %v", tt.style, err)
		}
		for i, p := range ps {
			if p.Tag != tt.want[i] {
				t.Errorf("style %q tag[%d] = %q, want %q", tt.style, i, p.Tag, tt.want[i])
			}
		}
	}
}

func TestApplySkipsPlaceholders(t *testing.T) {
	a := plot.New("a")
	b := plot.New("b")
	tree := comp.Combine(comp.Combine(comp.Leaf(a), comp.Leaf(plot.Spacer())), comp.Leaf(b))

	if _, err := Apply(tree, Annotations{TagLevels: []string{StyleArabic}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.Tag != "1" || b.Tag != "2" {
		t.Errorf("tags = %q, %q; spacer should not consume a tag", a.Tag, b.Tag)
	}
}

func TestApplyRejectsUnknownStyle(t *testing.T) {
	tree := comp.Leaf(plot.New("a"))
	_, err := Apply(tree, Annotations{TagLevels: []string{"alpha"}})
	if !qerrors.Is(err, qerrors.ErrCodeInvalidTag) {
		t.Errorf("error = %v, want INVALID_TAG", err)
	}
}

func TestBroadcastAfterTaggingKeepsTags(t *testing.T) {
	a := plot.New("a")
	b := plot.New("b")
	tree := comp.Combine(comp.Leaf(a), comp.Leaf(b))

	if _, err := Apply(tree, Annotations{TagLevels: []string{StyleLatinLower}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	comp.ApplyToAll(tree, theme.Default())

	if a.Tag != "a" || b.Tag != "b" {
		t.Errorf("tags after broadcast = %q, %q", a.Tag, b.Tag)
	}
}

func TestLatinContinuesPastZ(t *testing.T) {
	if got := latin(25); got != "z" {
		t.Errorf("latin(25) = %q, want z", got)
	}
	if got := latin(26); got != "aa" {
		t.Errorf("latin(26) = %q, want aa", got)
	}
	if got := latin(27); got != "ab" {
		t.Errorf("latin(27) = %q, want ab", got)
	}
}

func TestRomanSubtractiveForms(t *testing.T) {
	tests := map[int]string{1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1987: "MCMLXXXVII"}
	for n, want := range tests {
		if got := roman(n); got != want {
			t.Errorf("roman(%d) = %q, want %q", n, got, want)
		}
	}
}
