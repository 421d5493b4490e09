// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/screens/categories"
	"github.com/wordsprout/wordsprout/internal/screens/grow"
	"github.com/wordsprout/wordsprout/internal/screens/history"
	"github.com/wordsprout/wordsprout/internal/screens/progress"
	"github.com/wordsprout/wordsprout/internal/ui/components"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

const labelPractice = "PRACTICE"

// Stats are the numbers shown on the home dashboard.
type Stats struct {
	Due         int
	Blooming    int
	Completions int

	// Current is the label of the selected category, if any.
	Current  string
	Locked   bool
	Progress float64
}

type statsMsg struct {
	stats Stats
	err   error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	svc     *practice.Service
	menu    components.Menu
	stats   Stats
	canGrow bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a HomeScreen. A nil growFn disables the grow menu item.
func New(svc *practice.Service, growFn grow.Func) *HomeScreen {
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	items := []components.MenuItem{
		{Label: labelPractice, Action: push(func() screen.Screen { return categories.New(svc) })},
		{Label: "MY GARDEN", Action: push(func() screen.Screen { return progress.New(svc) })},
		{Label: "GROW WORDS", Action: push(func() screen.Screen { return grow.New(growFn) }), Disabled: growFn == nil},
		{Label: "HISTORY", Action: push(func() screen.Screen { return history.New(svc) })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		svc:     svc,
		menu:    components.NewMenu(items),
		canGrow: growFn != nil,
	}
}

func (h *HomeScreen) Init() tea.Cmd { return h.load() }

// Refresh reloads the dashboard when the learner comes back to the menu.
func (h *HomeScreen) Refresh() tea.Cmd { return h.load() }

func (h *HomeScreen) load() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		rows, err := svc.Overview(context.Background())
		if err != nil {
			return statsMsg{err: err}
		}
		return statsMsg{stats: statsFrom(rows)}
	}
}

func statsFrom(rows []practice.CategoryOverview) Stats {
	var s Stats
	for _, r := range rows {
		s.Due += r.Due
		s.Blooming += r.Mastered
		s.Completions += r.Completions
		if r.Current {
			s.Current = r.Category.Label()
			s.Locked = r.Locked
			s.Progress = r.Progress
		}
	}
	return s
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsMsg); ok {
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.stats
		badge := ""
		if h.stats.Due > 0 {
			badge = fmt.Sprintf("💧%d", h.stats.Due)
		}
		h.menu.SetBadge(labelPractice, badge)
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer.
	compact := layout.IsCompact(width, height+8)
	cw := layout.ContentWidth(width - 4)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(h.stats))))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if cur := renderCurrent(h.stats, cw); cur != "" {
		sections = append(sections, cur)
	}
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(h.errMsg))
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View(22)))
	if !h.canGrow && !compact {
		sections = append(sections, renderGrowBanner(cw))
	}

	return renderGardenFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
