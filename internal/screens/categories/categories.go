// Package categories lists the word categories and starts practice in one,
// asking before a category in progress is abandoned.
package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/screens/review"
	"github.com/wordsprout/wordsprout/internal/screens/summary"
	"github.com/wordsprout/wordsprout/internal/ui/components"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

type overviewMsg struct {
	rows []practice.CategoryOverview
	err  error
}

type selectedMsg struct {
	sel *practice.Selection
	err error
}

// CategoriesScreen is the category picker.
type CategoriesScreen struct {
	svc    *practice.Service
	rows   []practice.CategoryOverview
	cursor int
	loaded bool
	errMsg string

	// confirm is set while the lock dialog is open for the category pending.
	confirm *components.Confirm
	pending string
}

var _ screen.Screen = (*CategoriesScreen)(nil)
var _ screen.KeyHintProvider = (*CategoriesScreen)(nil)
var _ screen.Refresher = (*CategoriesScreen)(nil)

// New creates a CategoriesScreen.
func New(svc *practice.Service) *CategoriesScreen {
	return &CategoriesScreen{svc: svc}
}

func (c *CategoriesScreen) Init() tea.Cmd { return c.load() }

// Refresh reloads the overview after a review screen is closed.
func (c *CategoriesScreen) Refresh() tea.Cmd { return c.load() }

func (c *CategoriesScreen) Title() string { return "Categories" }

func (c *CategoriesScreen) KeyHints() []layout.KeyHint {
	if c.confirm != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave anyway"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CategoriesScreen) load() tea.Cmd {
	return func() tea.Msg {
		rows, err := c.svc.Overview(context.Background())
		return overviewMsg{rows: rows, err: err}
	}
}

func (c *CategoriesScreen) selectCategory(id string, force bool) tea.Cmd {
	return func() tea.Msg {
		sel, err := c.svc.SelectCategory(context.Background(), id, force)
		return selectedMsg{sel: sel, err: err}
	}
}

func (c *CategoriesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		c.loaded = true
		if msg.err != nil {
			c.errMsg = msg.err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.rows = msg.rows
		c.cursor = min(c.cursor, max(len(c.rows)-1, 0))
		return c, nil

	case selectedMsg:
		return c.handleSelected(msg)

	case tea.KeyMsg:
		if c.confirm != nil {
			return c.handleConfirm(msg)
		}
		return c.handleKey(msg)
	}
	return c, nil
}

func (c *CategoriesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.rows)-1 {
			c.cursor++
		}
	case "enter":
		if c.cursor < len(c.rows) {
			return c, c.selectCategory(c.rows[c.cursor].Category.ID, false)
		}
	case "esc":
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return c, nil
}

func (c *CategoriesScreen) handleConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	updated, res := c.confirm.Update(msg)
	c.confirm = &updated
	if res == nil {
		return c, nil
	}
	id := c.pending
	c.confirm, c.pending = nil, ""
	if res.Yes {
		return c, c.selectCategory(id, true)
	}
	return c, nil
}

func (c *CategoriesScreen) handleSelected(msg selectedMsg) (screen.Screen, tea.Cmd) {
	var locked *practice.LockedError
	switch {
	case errors.As(msg.err, &locked):
		d := components.NewConfirm(lockMessage(c.svc, locked), "Leave anyway", "Keep going")
		c.confirm, c.pending = &d, locked.Requested
		return c, nil
	case msg.err != nil:
		c.errMsg = msg.err.Error()
		return c, nil
	}

	c.errMsg = ""
	sel := msg.sel
	if sel.Completed != nil {
		next := summary.New(sel.Category, *sel.Completed)
		return c, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	next := review.New(c.svc, sel)
	return c, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// lockMessage explains the lock in words a child can follow.
func lockMessage(svc *practice.Service, e *practice.LockedError) string {
	name := func(id string) string {
		if cat, err := svc.Catalog().Category(id); err == nil {
			return cat.Label()
		}
		return id
	}
	return fmt.Sprintf("You are %.0f%% of the way through %s.\n\nIf you start %s now, %s will start over next time.",
		e.Progress, name(e.Locked), name(e.Requested), name(e.Locked))
}

func (c *CategoriesScreen) View(width, height int) string {
	if c.confirm != nil {
		return layout.Center(c.confirm.View(layout.ContentWidth(width)), width, height)
	}
	if !c.loaded {
		return layout.Center(theme.Hint.Render("Loading categories..."), width, height)
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	if c.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(c.errMsg))
		b.WriteString("\n\n")
	}
	if len(c.rows) == 0 {
		b.WriteString(theme.Hint.Render("No categories yet."))
	}
	for i, row := range c.rows {
		b.WriteString(renderRow(row, i == c.cursor, cw))
		b.WriteString("\n")
	}
	return layout.Center(b.String(), width, height)
}

func renderRow(row practice.CategoryOverview, selected bool, cw int) string {
	label := row.Category.Label()
	style := theme.Unselected
	prefix := "  "
	if selected {
		style = theme.Selected
		prefix = "▸ "
	}

	var badges []string
	if row.Locked {
		badges = append(badges, theme.Locked.Render("🔒 in progress"))
	}
	if row.Due > 0 {
		badges = append(badges, lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("%d due", row.Due)))
	}
	if row.Completions > 0 {
		badges = append(badges, lipgloss.NewStyle().Foreground(theme.Bloom).Render(fmt.Sprintf("✓×%d", row.Completions)))
	}
	if row.Words == 0 {
		badges = append(badges, theme.Hint.Render("empty"))
	}

	line := style.Render(prefix+label) + "  " + strings.Join(badges, "  ")
	if !row.Current {
		return line
	}
	bar := components.NewProgressBar("", row.Progress, true, cw-4)
	return line + "\n    " + bar.View()
}
