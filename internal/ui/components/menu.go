package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

// MenuItem is one button of a Menu. Badge is a short note drawn after the
// label, such as a due count.
type MenuItem struct {
	Label    string
	Badge    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Disabled items are skipped by the
// cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// step returns the next enabled index in direction dir, or the current one.
func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the menu as fixed-width buttons.
func (m Menu) View(width int) string {
	selected := theme.ButtonActive.Width(width).Align(lipgloss.Center)
	normal := theme.ButtonInactive.Width(width).Align(lipgloss.Center)
	disabled := normal.Foreground(theme.TextDim)

	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Badge != "" && !item.Disabled {
			label += "  " + item.Badge
		}
		switch {
		case item.Disabled:
			buttons[i] = disabled.Render(label)
		case i == m.Selected:
			buttons[i] = selected.Render("▸ " + label)
		default:
			buttons[i] = normal.Render(label)
		}
	}
	return strings.Join(buttons, "\n")
}

// SetBadge sets the badge of the item labelled label.
func (m *Menu) SetBadge(label, badge string) {
	for i := range m.Items {
		if m.Items[i].Label == label {
			m.Items[i].Badge = badge
			return
		}
	}
}
