// Package grow asks the LLM for a new category of words on a theme the
// learner picks.
package grow

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/ui/components"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
	"github.com/wordsprout/wordsprout/internal/words"
)

// DefaultCount is the number of words asked for when the count is left empty.
const DefaultCount = 8

// Func generates count words on theme, saves them and returns what was added.
type Func func(ctx context.Context, theme string, count int) ([]words.Word, error)

type phase int

const (
	phaseEditing phase = iota
	phaseGrowing
	phaseDone
)

type grownMsg struct {
	words []words.Word
	err   error
}

// GrowScreen collects a theme and a count, then runs the generator.
type GrowScreen struct {
	grow    Func
	theme   components.TextInput
	count   components.TextInput
	spinner spinner.Model
	phase   phase
	grown   []words.Word
	errMsg  string
	cancel  context.CancelFunc
}

var _ screen.Screen = (*GrowScreen)(nil)
var _ screen.KeyHintProvider = (*GrowScreen)(nil)

// New creates a GrowScreen.
func New(grow Func) *GrowScreen {
	count := components.NewTextInput("How many words?", fmt.Sprint(DefaultCount), 2)
	count.DigitsOnly = true
	return &GrowScreen{
		grow:    grow,
		theme:   components.NewTextInput("What should the new words be about?", "under the sea", 40),
		count:   count,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (g *GrowScreen) Init() tea.Cmd {
	return g.theme.Focus()
}

func (g *GrowScreen) Title() string { return "Grow New Words" }

func (g *GrowScreen) KeyHints() []layout.KeyHint {
	switch g.phase {
	case phaseGrowing:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseDone:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Grow"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GrowScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case grownMsg:
		g.cancel = nil
		if msg.err != nil {
			g.phase = phaseEditing
			g.errMsg = msg.err.Error()
			return g, g.theme.Focus()
		}
		g.phase = phaseDone
		g.grown = msg.words
		return g, nil

	case spinner.TickMsg:
		if g.phase != phaseGrowing {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	return g.updateFocused(msg)
}

func (g *GrowScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch g.phase {
	case phaseGrowing:
		if key == "esc" && g.cancel != nil {
			g.cancel()
		}
		return g, nil
	case phaseDone:
		if key == "enter" || key == "esc" {
			return g, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return g, nil
	}

	switch key {
	case "esc":
		return g, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "shift+tab", "up", "down":
		return g, g.toggleFocus()
	case "enter":
		return g, g.submit()
	}
	return g.updateFocused(msg)
}

func (g *GrowScreen) updateFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if g.count.Focused() {
		g.count, cmd = g.count.Update(msg)
	} else {
		g.theme, cmd = g.theme.Update(msg)
	}
	return g, cmd
}

func (g *GrowScreen) toggleFocus() tea.Cmd {
	if g.theme.Focused() {
		g.theme.Blur()
		return g.count.Focus()
	}
	g.count.Blur()
	return g.theme.Focus()
}

func (g *GrowScreen) submit() tea.Cmd {
	topic := strings.TrimSpace(g.theme.Value())
	if topic == "" {
		g.errMsg = "Type a theme first."
		return nil
	}
	count := DefaultCount
	if g.count.Value() != "" {
		n, err := g.count.IntValue()
		if err != nil || n < 1 {
			g.errMsg = "The number of words must be at least 1."
			return nil
		}
		count = n
	}

	g.errMsg = ""
	g.phase = phaseGrowing
	g.theme.Blur()
	g.count.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	grow := g.grow
	return tea.Batch(g.spinner.Tick, func() tea.Msg {
		defer cancel()
		ws, err := grow(ctx, topic, count)
		return grownMsg{words: ws, err: err}
	})
}

func (g *GrowScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	switch g.phase {
	case phaseGrowing:
		b.WriteString(g.spinner.View() + " Growing words about " + theme.Word.Render(strings.TrimSpace(g.theme.Value())) + "...")
	case phaseDone:
		b.WriteString(g.doneView())
	default:
		b.WriteString(g.theme.View())
		b.WriteString("\n\n")
		b.WriteString(g.count.View())
		if g.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(g.errMsg))
		}
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func (g *GrowScreen) doneView() string {
	if len(g.grown) == 0 {
		return theme.Hint.Render("No new words this time. Every suggestion was already in your garden.")
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("🌱 %d new words planted!", len(g.grown))))
	b.WriteString("\n\n")
	for _, w := range g.grown {
		b.WriteString("  " + theme.Word.Render(w.Text))
		if w.Definition != "" {
			b.WriteString(theme.Hint.Render("  " + w.Definition))
		}
		b.WriteString("\n")
	}
	return b.String()
}
