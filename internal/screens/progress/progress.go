// Package progress shows how well each category is known.
package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/ui/components"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

type overviewMsg struct {
	rows []practice.CategoryOverview
	err  error
}

// ProgressScreen is a read-only garden of category mastery.
type ProgressScreen struct {
	svc    *practice.Service
	rows   []practice.CategoryOverview
	offset int
	loaded bool
	errMsg string
	now    func() time.Time
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(svc *practice.Service) *ProgressScreen {
	return &ProgressScreen{svc: svc, now: time.Now}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rows, err := p.svc.Overview(context.Background())
		return overviewMsg{rows: rows, err: err}
	}
}

func (p *ProgressScreen) Title() string { return "My Garden" }

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		p.loaded = true
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.rows = msg.rows
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			p.offset = max(p.offset-1, 0)
		case "down", "j":
			p.offset = min(p.offset+1, max(len(p.rows)-1, 0))
		case "esc", "q":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	if !p.loaded {
		return layout.Center(theme.Hint.Render("Loading..."), width, height)
	}
	if p.errMsg != "" {
		return layout.Center(lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg), width, height)
	}

	cw := layout.ContentWidth(width)
	now := p.now()
	var blocks []string
	for _, row := range p.rows[p.offset:] {
		blocks = append(blocks, renderRow(row, cw, now))
	}
	return layout.Center(strings.Join(blocks, "\n\n"), width, height)
}

func renderRow(row practice.CategoryOverview, cw int, now time.Time) string {
	band := spacedrep.MasteryBand(int(row.MeanMastery))
	bar := components.NewProgressBar(row.Category.Label(), row.MeanMastery, false, cw)
	bar.Color = theme.BandColor(band)

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	details := []string{
		fmt.Sprintf("%d words", row.Words),
		fmt.Sprintf("%d new", row.New),
		fmt.Sprintf("%d blooming", row.Mastered),
	}
	if row.Completions > 0 {
		details = append(details, fmt.Sprintf("finished %s", english.Plural(row.Completions, "time", "times")))
	}
	return bar.View() + "\n" + dim.Render("  "+strings.Join(details, " · ")) + "\n" + dim.Render("  "+NextReview(row, now))
}

// NextReview describes when a category next needs attention.
func NextReview(row practice.CategoryOverview, now time.Time) string {
	switch {
	case row.Words == 0:
		return "no words yet"
	case row.Due > 0:
		return fmt.Sprintf("%d ready to practice now", row.Due)
	case row.NextDue != nil:
		return "next review " + humanize.RelTime(*row.NextDue, now, "ago", "from now")
	}
	return "all caught up"
}
