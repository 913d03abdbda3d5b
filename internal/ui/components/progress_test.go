package components

import (
	"strings"
	"testing"
)

func TestFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{4, 4, 1},
		{5, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		if got := Fraction(tt.done, tt.total); got != tt.want {
			t.Errorf("Fraction(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	view := NewProgressBar("Mastered", 0.5, true, 40).View()

	if !strings.Contains(view, "Mastered") {
		t.Errorf("view missing label: %q", view)
	}
	if !strings.Contains(view, "50%") {
		t.Errorf("view missing percent: %q", view)
	}
	if !strings.Contains(view, "█") || !strings.Contains(view, "░") {
		t.Errorf("view missing bar glyphs: %q", view)
	}
}

func TestTextInputSubmitAndReset(t *testing.T) {
	ti := NewTextInput("type the command", 0)
	ti.Model.SetValue("git status")

	ti.Submit(true)
	if !ti.Submitted() {
		t.Fatal("expected submitted")
	}
	if !strings.Contains(ti.View(), "✓") {
		t.Errorf("submitted view missing check mark: %q", ti.View())
	}

	ti.Reset()
	if ti.Submitted() || ti.Value() != "" {
		t.Errorf("after reset: submitted=%v value=%q", ti.Submitted(), ti.Value())
	}
}
