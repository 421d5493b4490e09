package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

const bannerArt = `╦ ╦┌─┐┬─┐┌┬┐╔═╗┌─┐┬─┐┌─┐┬ ┬┌┬┐
║║║│ │├┬┘ ││╚═╗├─┘├┬┘│ ││ │ │
╚╩╝└─┘┴└──┴┘╚═╝┴  ┴└─└─┘└─┘ ┴ `

const bannerCompact = "🌱 W O R D S P R O U T"

// BannerMinWidth is the narrowest terminal that fits the block banner.
const BannerMinWidth = 36

// RenderBanner returns the WordSprout banner in the primary color, or a
// one-line fallback when compact is set or width is too narrow.
func RenderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact || width < BannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
