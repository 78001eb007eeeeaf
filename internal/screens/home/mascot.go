package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Default purple
	MascotCurious                       // Question mark, no diagnosis yet
	MascotJackpot                       // Gold, a reward draw is affordable
)

const mascotIdle = `╭─────╮
│ ◕ ◕ │
│  ◡  │
╰┬───┬╯`

const mascotCurious = `╭─────╮ ?
│ ◔ ◔ │
│  ○  │
╰┬───┬╯`

const mascotJackpot = `╭─────╮
│ ★ ★ │
│  ▽  │
╰┬───┬╯
 ◆ ◆ ◆`

// mascotFor picks the mascot that matches the user's progress.
func mascotFor(ud *profile.UserData) MascotVariant {
	switch {
	case ud == nil || len(ud.CompletedDiagnoses) == 0:
		return MascotCurious
	case profile.CanSpin(ud):
		return MascotJackpot
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCurious:
		art = mascotCurious
		fg = theme.ArcadeCyan
	case MascotJackpot:
		art = mascotJackpot
		fg = theme.ArcadeYellow
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
