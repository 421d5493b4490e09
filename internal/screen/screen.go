// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/wordsprout/wordsprout/internal/ui/layout"
)

// Screen is one page of the app. View renders only the area between the
// header and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title names the screen in the header.
	Title() string
}

// KeyHintProvider screens list their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher screens reload when they are uncovered by a pop.
type Refresher interface {
	Refresh() tea.Cmd
}
