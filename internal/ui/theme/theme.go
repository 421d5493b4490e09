package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
)

// Color palette: garden colors, soft on a dark terminal.
var (
	Primary   = lipgloss.Color("#22C55E") // Leaf green
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Sun
	Success   = lipgloss.Color("#4ADE80") // Mint
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Night
	BgCard    = lipgloss.Color("#1E293B") // Dark slate
	Border    = lipgloss.Color("#334155") // Slate

	Seedling = lipgloss.Color("#A16207") // Soil brown
	Sprout   = lipgloss.Color("#84CC16") // Lime
	Bloom    = lipgloss.Color("#FACC15") // Gold
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Word is the big word on a review card.
	Word = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent).
		Padding(1, 3)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// BandColor returns the color of a mastery band.
func BandColor(b spacedrep.Band) color.Color {
	switch b {
	case spacedrep.BandSprout:
		return Sprout
	case spacedrep.BandBloom:
		return Bloom
	default:
		return Seedling
	}
}

// RatingColor returns the key color for a rating.
func RatingColor(r spacedrep.Rating) color.Color {
	switch r {
	case spacedrep.RatingEasy:
		return Success
	case spacedrep.RatingMedium:
		return Accent
	default:
		return Error
	}
}
