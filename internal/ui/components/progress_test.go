package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestMasteryBar_FitsWidth(t *testing.T) {
	for _, score := range []int{-5, 0, 45, 70, 100, 130} {
		got := MasteryBar("Alleles", score, 70, 40).View()
		if w := lipgloss.Width(got); w > 40 {
			t.Errorf("score %d: width %d > 40", score, w)
		}
	}
}

func TestMasteryBar_ClampsPercent(t *testing.T) {
	if got := MasteryBar("", 130, 70, 30).View(); !strings.Contains(got, "100%") {
		t.Errorf("expected clamp to 100%%, got %q", got)
	}
	if got := MasteryBar("", -5, 70, 30).View(); !strings.Contains(got, "0%") {
		t.Errorf("expected clamp to 0%%, got %q", got)
	}
}
