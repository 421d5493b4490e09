// Package summary shows the celebration screen for a completed category.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/tracker"
	"github.com/wordsprout/wordsprout/internal/ui/components"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
	"github.com/wordsprout/wordsprout/internal/words"
)

// SummaryScreen displays the completion stats of a category.
type SummaryScreen struct {
	category words.Category
	stats    tracker.CompletionStats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(category words.Category, stats tracker.CompletionStats) *SummaryScreen {
	return &SummaryScreen{category: category, stats: stats}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Category Complete" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "H", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.stats
	cw := layout.ContentWidth(width)
	line := func(style lipgloss.Style, text string) string {
		return style.Width(cw).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(line(theme.Title, "🌸 You finished "+s.category.Label()+"! 🌸"))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", st.Accuracy, true, cw).View())
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Foreground(theme.Text)
	b.WriteString(line(body, fmt.Sprintf("Words reviewed: %d of %d", st.WordsReviewed, st.TotalWords)))
	b.WriteString("\n")
	if st.WordsReviewed > 0 {
		b.WriteString(line(body, fmt.Sprintf("Remembered well: %d", st.SuccessfulWords)))
		b.WriteString("\n")
	}
	b.WriteString(line(body, "Time: "+Minutes(st.TimeSpent)))
	b.WriteString("\n\n")
	if st.CompletionCount > 0 {
		b.WriteString(line(theme.Locked, fmt.Sprintf("This is your %s time finishing this category!",
			humanize.Ordinal(st.CompletionCount))))
	}
	return layout.Center(b.String(), width, height)
}

// Minutes formats a whole-minute duration for young readers.
func Minutes(n int) string {
	switch {
	case n < 1:
		return "less than a minute"
	case n == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", n)
	}
}
