package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentorly/internal/ui/theme"
)

// Bar is a horizontal 0..100 score bar. Scores at or above Mastered are
// drawn in the success color.
type Bar struct {
	Label    string
	Score    int
	Mastered int
	Width    int
}

// MasteryBar creates a bar for a topic mastery score.
func MasteryBar(label string, score, mastered, width int) Bar {
	return Bar{Label: label, Score: score, Mastered: mastered, Width: width}
}

// View renders the bar within Width columns, label and percentage included.
func (b Bar) View() string {
	var sb strings.Builder
	if b.Label != "" {
		sb.WriteString(theme.Body.Render(b.Label))
		sb.WriteString("  ")
	}
	pct := fmt.Sprintf(" %3d%%", min(max(b.Score, 0), 100))

	cells := max(b.Width-lipgloss.Width(sb.String())-len(pct), 4)
	filled := cells * min(max(b.Score, 0), 100) / 100

	fill := theme.ProgressFilled
	if b.Mastered > 0 && b.Score >= b.Mastered {
		fill = fill.Background(theme.Success)
	}
	sb.WriteString(fill.Render(strings.Repeat(" ", filled)))
	sb.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)))
	sb.WriteString(theme.Hint.Render(pct))
	return sb.String()
}
