package chat

import (
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentorly/internal/ui/layout"
	"github.com/abhisek/mentorly/internal/ui/theme"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.status(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)

	body := m.visibleLines(m.transcriptRows(header, footer))
	body = append(body, m.promptLine())

	return layout.RenderFrame(header, strings.Join(body, "\n"), footer, m.width, m.height)
}

func (m Model) status() layout.Status {
	s := layout.Status{Phase: "Sign in"}
	if m.stage == stageChat || m.stage == stageDone {
		s.Phase = m.tutor.Phase().Label()
		s.Subject = m.tutor.Subject()
		if p := m.tutor.Profile(); p != nil {
			s.Level = p.CurrentLevel.DisplayName()
		}
	}
	return s
}

func (m Model) hints() []layout.KeyHint {
	if m.stage == stageDone {
		return []layout.KeyHint{{Key: "any key", Description: "Exit"}}
	}
	hints := []layout.KeyHint{
		{Key: "enter", Description: "Send"},
		{Key: "pgup/pgdn", Description: "Scroll"},
	}
	if !layout.IsCompactWidth(m.width) {
		hints = append(hints, layout.KeyHint{Key: "help", Description: "Commands"})
	}
	return append(hints, layout.KeyHint{Key: "quit", Description: "Save & exit"})
}

func (m Model) promptLine() string {
	switch {
	case m.stage == stageDone:
		return ""
	case m.busy:
		return m.spinner.View() + theme.Hint.Render(" thinking...")
	default:
		return m.input.View()
	}
}

// visibleLines returns the transcript window of the given height, offset by
// the scroll position.
func (m Model) visibleLines(height int) []string {
	lines := m.renderTranscript(max(m.width-2, 20))
	end := len(lines) - min(m.scroll, max(len(lines)-height, 0))
	start := max(end-height, 0)
	return lines[start:end]
}

func (m Model) renderTranscript(width int) []string {
	var lines []string
	for i, e := range m.transcript {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(renderEntry(e, width), "\n")...)
	}
	return lines
}

func renderEntry(e entry, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	switch e.who {
	case speakerLearner:
		return wrap.Render(theme.Learner.Render("You: ") + theme.Body.Render(e.text))
	case speakerSystem:
		return wrap.Render(theme.System.Render(e.text))
	case speakerError:
		return wrap.Render(theme.Failure.Render("Error: ") + theme.Body.Render(e.text))
	default:
		return theme.Tutor.Render("Tutor:") + "\n" + wrap.Render(emphasize(e.text))
	}
}

// emphasize renders **bold** spans in the tutor's markdown.
func emphasize(text string) string {
	return boldPattern.ReplaceAllStringFunc(text, func(s string) string {
		return theme.Strong.Render(s[2 : len(s)-2])
	})
}

// transcriptRows is the height left for the transcript once the header,
// footer and prompt line are drawn.
func (m Model) transcriptRows(header, footer string) int {
	return max(layout.ContentHeight(header, footer, m.height)-1, 0)
}

// maxScroll is the offset that puts the first transcript line at the top.
func (m Model) maxScroll() int {
	if layout.IsTooSmall(m.width, m.height) {
		return 0
	}
	rows := m.transcriptRows(
		layout.RenderHeader(m.status(), m.width),
		layout.RenderFooter(m.hints(), m.width),
	)
	return max(len(m.renderTranscript(max(m.width-2, 20)))-rows, 0)
}

func (m Model) pageSize() int {
	return max(m.height/2, 1)
}
