// Package welcome is the splash screen: a seed grows into a flower, then the
// home screen takes over.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	stageLength  = 500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// growth is the plant at each stage, seed first. All frames have the same
// height so the layout does not jump.
var growth = []string{
	"\n\n\n\n   .\n ~~~~~",
	"\n\n\n   ,\n   |\n ~~~~~",
	"\n\n  \\ /\n   |\n   |\n ~~~~~",
	"\n  \\ /\n \\\\|//\n  \\|/\n   |\n ~~~~~",
	" \\ * /\n ( @ )\n \\\\|//\n  \\|/\n   |\n ~~~~~",
}

var stageColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(theme.Seedling),
	lipgloss.NewStyle().Foreground(theme.Sprout),
	lipgloss.NewStyle().Foreground(theme.Sprout),
	lipgloss.NewStyle().Foreground(theme.Primary),
	lipgloss.NewStyle().Foreground(theme.Bloom),
}

type tickMsg time.Time

// WelcomeScreen plays the growing animation, then waits for a key.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen homeFactory builds.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stage is the index of the growth frame to show.
func (w *WelcomeScreen) stage() int {
	return min(int(w.elapsed/stageLength), len(growth)-1)
}

func (w *WelcomeScreen) done() bool {
	return w.elapsed >= totalDur
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done() {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		// Any key before the flower blooms skips ahead to it.
		if !w.done() {
			w.elapsed = totalDur
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	s := w.stage()
	sections := []string{stageColors[s].Render(growth[s])}

	if w.done() {
		sections = append(sections,
			"",
			RenderBanner(width, false),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Let's grow some words!"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
