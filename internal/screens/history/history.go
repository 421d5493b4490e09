// Package history lists past category sessions, newest first.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

// MaxEntries caps how many events are listed.
const MaxEntries = 50

type historyLoadedMsg struct {
	events []store.CategoryEvent
	err    error
}

// HistoryScreen displays category session events.
type HistoryScreen struct {
	svc      *practice.Service
	entries  []store.CategoryEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	now      func() time.Time
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen.
func New(svc *practice.Service) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
		now:      time.Now,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		evs, err := svc.History(context.Background(), MaxEntries)
		return historyLoadedMsg{events: evs, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.entries = msg.events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Pick a category and start practicing!")
	}

	now := s.now()
	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(actionColor(ev.Action))
		if i == s.selected {
			prefix = "> "
			style = style.Bold(true)
		}
		line := fmt.Sprintf("%s%s %-20s %-14s %s",
			prefix, actionIcon(ev.Action), s.categoryName(ev.CategoryID), actionLabel(ev.Action),
			humanize.RelTime(ev.Timestamp, now, "ago", "from now"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d of %d words reviewed  ·  %s  ·  %s",
				ev.WordsReviewed, ev.TotalWords,
				time.Duration(ev.DurationSecs)*time.Second,
				ev.Timestamp.Local().Format("Jan 02, 15:04"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) categoryName(id string) string {
	if cat, err := s.svc.Catalog().Category(id); err == nil {
		return cat.Name
	}
	return id
}

func actionIcon(action string) string {
	switch action {
	case store.ActionStart:
		return "🌱"
	case store.ActionComplete:
		return "🏁"
	case store.ActionAbandon:
		return "🍂"
	case store.ActionUnlock:
		return "🔓"
	}
	return "·"
}

func actionLabel(action string) string {
	switch action {
	case store.ActionStart:
		return "started"
	case store.ActionComplete:
		return "finished"
	case store.ActionAbandon:
		return "left"
	case store.ActionUnlock:
		return "switched away"
	}
	return action
}

func actionColor(action string) color.Color {
	switch action {
	case store.ActionComplete:
		return theme.Success
	case store.ActionAbandon, store.ActionUnlock:
		return theme.Accent
	}
	return theme.Text
}
