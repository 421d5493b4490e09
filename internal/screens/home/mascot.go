package home

import (
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/ui/theme"
)

// MascotVariant selects which sprout art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Green sprout
	MascotBlooming                      // Gold flower, everything practiced
	MascotThirsty                       // Drooping, words are waiting
)

const mascotIdle = `  \ /
 ( • )
 \\|//
  \|/
 ~~~~~`

const mascotBlooming = ` \ * /
 (^ ^)
 \\|//
  \|/
 ~~~~~`

const mascotThirsty = `  _ ,  !
 (• •)
  \|
   |
 ~~~~~`

// RenderMascot returns the sprout art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotBlooming:
		art = mascotBlooming
		fg = theme.Bloom
	case MascotThirsty:
		art = mascotThirsty
		fg = theme.Accent
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

// mascotFor picks the variant for the home stats.
func mascotFor(s Stats) MascotVariant {
	switch {
	case s.Due >= 3:
		return MascotThirsty
	case s.Due == 0 && s.Completions > 0:
		return MascotBlooming
	}
	return MascotIdle
}
