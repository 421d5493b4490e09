package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

// Confirm is a yes/no dialog. The "no" choice is selected initially so a
// stray Enter never takes the destructive path.
type Confirm struct {
	Message string
	Yes     string
	No      string

	yes bool
}

// ConfirmResult reports the learner's choice. Cancelled is set for Esc.
type ConfirmResult struct {
	Yes       bool
	Cancelled bool
}

// NewConfirm creates a dialog with the given button labels.
func NewConfirm(message, yes, no string) Confirm {
	return Confirm{Message: message, Yes: yes, No: no}
}

// Update handles keys. It returns a non-nil result once the dialog is answered.
func (c Confirm) Update(msg tea.Msg) (Confirm, *ConfirmResult) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		c.yes = !c.yes
	case "y", "Y":
		return c, &ConfirmResult{Yes: true}
	case "n", "N":
		return c, &ConfirmResult{}
	case "esc":
		return c, &ConfirmResult{Cancelled: true}
	case "enter":
		return c, &ConfirmResult{Yes: c.yes}
	}
	return c, nil
}

// View renders the dialog box.
func (c Confirm) View(width int) string {
	yes, no := theme.ButtonInactive, theme.ButtonActive
	if c.yes {
		yes, no = theme.ButtonActive, theme.ButtonInactive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yes.Render("[y] "+c.Yes), "  ", no.Render("[n] "+c.No))

	body := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Text).Width(min(width, 56)).Align(lipgloss.Center).Render(c.Message),
		"",
		buttons,
	}, "\n")
	return theme.Dialog.Render(body)
}
