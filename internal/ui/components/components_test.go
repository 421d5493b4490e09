package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg string

func pick(s string) func() tea.Cmd {
	return func() tea.Cmd { return func() tea.Msg { return pickedMsg(s) } }
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "GROW", Disabled: true, Action: pick("grow")},
		{Label: "PRACTICE", Action: pick("practice")},
		{Label: "LOCKED", Disabled: true},
		{Label: "QUIT", Action: pick("quit")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("practice"), cmd())
}

func TestMenu_Badge(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "PRACTICE"}, {Label: "GROW", Disabled: true}})
	m.SetBadge("PRACTICE", "💧3")
	m.SetBadge("GROW", "new")
	m.SetBadge("MISSING", "x")

	view := m.View(24)
	assert.Contains(t, view, "PRACTICE  💧3")
	assert.NotContains(t, view, "new")
}

func TestProgressBar_Cells(t *testing.T) {
	tests := []struct {
		pct         float64
		grown, rest int
	}{
		{0, 0, 10},
		{45, 4, 6},
		{100, 10, 0},
		{150, 10, 0},
	}
	for _, tt := range tests {
		grown, rest := NewProgressBar("", tt.pct, false, 10).Cells(10)
		assert.Equal(t, tt.grown, grown, "pct %v", tt.pct)
		assert.Equal(t, tt.rest, rest, "pct %v", tt.pct)
	}
}

func TestProgressBar_View(t *testing.T) {
	view := NewProgressBar("Animals", 50, true, 40).View()
	assert.Contains(t, view, "Animals")
	assert.Contains(t, view, " 50%")
	assert.Contains(t, view, vineBud)

	assert.NotContains(t, NewProgressBar("", 100, false, 20).View(), vineBud)
}
