package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

const (
	vineFilled = "━"
	vineEmpty  = "─"
	vineBud    = "●"
)

// ProgressBar draws a vine that grows from left to right with Percent.
type ProgressBar struct {
	Label       string
	Percent     float64 // clamped to 0..100
	ShowPercent bool
	Width       int         // total width including label and percent
	Color       color.Color // theme.Secondary when nil
}

// NewProgressBar creates a progress bar. Set Color afterwards to override
// the vine color.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     min(max(percent, 0), 100),
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Cells splits a bar of width cells into grown and remaining cells.
func (p ProgressBar) Cells(width int) (grown, rest int) {
	pct := min(max(p.Percent, 0), 100)
	grown = int(float64(width) * pct / 100)
	return grown, width - grown
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3.0f%%", min(max(p.Percent, 0), 100))
	}
	width := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)

	vine := p.Color
	if vine == nil {
		vine = theme.Secondary
	}
	grown, rest := p.Cells(width)
	// The bud marks the growing tip until the vine is complete.
	tip := ""
	if grown > 0 && rest > 0 {
		grown--
		tip = vineBud
	}
	b.WriteString(lipgloss.NewStyle().Foreground(vine).Render(strings.Repeat(vineFilled, grown) + tip))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(vineEmpty, rest)))

	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
