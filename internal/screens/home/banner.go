package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/screens/welcome"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

// renderTitle returns the banner centered in the content width.
func renderTitle(cw int, compact bool) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(cw, compact))
}

// renderStatsBar renders the dashboard numbers in a bordered box.
func renderStatsBar(s Stats, cw int, compact bool) string {
	dueStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	bloomStyle := lipgloss.NewStyle().Foreground(theme.Bloom).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	due := dim.Render("💧 nothing due")
	if s.Due > 0 {
		due = dueStyle.Render(fmt.Sprintf("💧 %d due", s.Due))
	}
	stats := fmt.Sprintf("%s  %s  %s",
		due,
		bloomStyle.Render(fmt.Sprintf("🌼 %d blooming", s.Blooming)),
		doneStyle.Render(fmt.Sprintf("🏁 %d finished", s.Completions)),
	)
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			dueStyle.Render(fmt.Sprintf("💧%d", s.Due)),
			bloomStyle.Render(fmt.Sprintf("🌼%d", s.Blooming)),
			doneStyle.Render(fmt.Sprintf("🏁%d", s.Completions)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderCurrent names the category in progress, if any.
func renderCurrent(s Stats, cw int) string {
	if s.Current == "" {
		return ""
	}
	text := "Practicing " + s.Current
	if s.Locked {
		text = fmt.Sprintf("🔒 %s is %.0f%% done", s.Current, s.Progress)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderGrowBanner explains why growing words is unavailable.
func renderGrowBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key to grow new words (see wordsprout --help)")
}

// renderGardenFrame draws the rounded frame around the home content.
func renderGardenFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
