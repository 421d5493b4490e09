package review

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize/english"
	"github.com/mitchellh/go-wordwrap"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/ui/components"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

func (r *ReviewScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var sections []string

	sections = append(sections, components.NewProgressBar("Category", r.progress, true, cw).View())

	if r.batch.Ahead {
		sections = append(sections, theme.Hint.Render("Nothing is due right now, so you are practicing ahead."))
	}
	if r.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg))
	}

	switch {
	case r.busy && r.word.ID == 0:
		sections = append(sections, theme.Hint.Render("Finding your next words..."))
	case r.word.ID == 0:
		sections = append(sections, theme.Title.Render("🌱 All caught up! Come back later for more."))
	default:
		sections = append(sections, r.renderCard(cw))
	}

	if r.last != nil {
		sections = append(sections, renderLast(r.last, r.now()))
	}
	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (r *ReviewScreen) renderCard(cw int) string {
	inner := cw - 6
	lines := []string{}
	if r.word.Emoji != "" {
		lines = append(lines, r.word.Emoji)
	}
	lines = append(lines, theme.Word.Render(r.word.Text))

	if !r.revealed {
		lines = append(lines, "", theme.Hint.Render("Do you know this word? Press space to check."))
	} else {
		if r.word.Definition != "" {
			lines = append(lines, "", theme.Body.Render(wordwrap.WrapString(r.word.Definition, uint(inner))))
		}
		if r.word.Example != "" {
			lines = append(lines, "", theme.Hint.Render(wordwrap.WrapString("“"+r.word.Example+"”", uint(inner))))
		}
		lines = append(lines, "", renderRatingKeys())
	}

	return theme.Card.Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func renderRatingKeys() string {
	labels := map[spacedrep.Rating]string{
		spacedrep.RatingEasy:   "[E] I knew it!",
		spacedrep.RatingMedium: "[M] Almost",
		spacedrep.RatingHard:   "[H] Not yet",
	}
	parts := make([]string, 0, 3)
	for _, r := range spacedrep.AllRatings() {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.RatingColor(r)).Bold(true).Render(labels[r]))
	}
	return strings.Join(parts, "   ")
}

func renderLast(res *practice.RateResult, now time.Time) string {
	after := res.Progress.MasteryLevel
	style := lipgloss.NewStyle().Foreground(theme.BandColor(spacedrep.MasteryBand(after)))
	back := "back today"
	if days := res.Progress.DaysUntilReview(now); days > 0 {
		back = "back in " + english.Plural(days, "day", "days")
	}
	return theme.Hint.Render(fmt.Sprintf("%s: ", res.Word.Text)) +
		style.Render(fmt.Sprintf("%d → %d (%s)", res.MasteryBefore, after, spacedrep.MasteryBand(after))) +
		theme.Hint.Render(" · "+back)
}
