package theme

import "testing"

func TestMergeKeepsExplicit(t *testing.T) {
	explicit := Theme{FontSize: Num(18), LegendPosition: Pos(PositionBottom)}
	broadcast := Theme{FontSize: Num(10), Background: Str("#eeeeee")}

	merged := explicit.Merge(broadcast)

	if got, want := *merged.FontSize, 18.0; got != want {
		t.Errorf("FontSize = %v, want %v (explicit must win)", got, want)
	}
	if got, want := *merged.LegendPosition, PositionBottom; got != want {
		t.Errorf("LegendPosition = %v, want %v", got, want)
	}
	if merged.Background == nil || *merged.Background != "#eeeeee" {
		t.Error("unset Background should be filled from broadcast")
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	explicit := Theme{FontSize: Num(18)}
	broadcast := Theme{FontSize: Num(10), TextColor: Str("#000000")}

	_ = explicit.Merge(broadcast)

	if explicit.TextColor != nil {
		t.Error("Merge must not mutate the receiver")
	}
	if *broadcast.FontSize != 10 {
		t.Error("Merge must not mutate the fallback")
	}
}

func TestResolvedFillsEverything(t *testing.T) {
	resolved := Theme{}.Resolved()

	if resolved.LegendPosition == nil || resolved.FontFamily == nil ||
		resolved.FontSize == nil || resolved.Background == nil ||
		resolved.TextColor == nil || resolved.PanelSpacing == nil {
		t.Error("Resolved should leave no attribute unset")
	}
	if got, want := *resolved.LegendPosition, PositionRight; got != want {
		t.Errorf("default legend position = %v, want %v", got, want)
	}
}

func TestLegendPositionOr(t *testing.T) {
	unset := Theme{}
	if got := unset.LegendPositionOr(PositionLeft); got != PositionLeft {
		t.Errorf("LegendPositionOr on unset theme = %v, want left", got)
	}

	set := Theme{LegendPosition: Pos(PositionTop)}
	if got := set.LegendPositionOr(PositionLeft); got != PositionTop {
		t.Errorf("LegendPositionOr on set theme = %v, want top", got)
	}
}
