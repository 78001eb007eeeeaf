package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/ui/theme"
)

const titleFull = `███████╗██╗  ██╗██╗███╗   ██╗██████╗  █████╗ ███╗   ██╗
██╔════╝██║  ██║██║████╗  ██║██╔══██╗██╔══██╗████╗  ██║
███████╗███████║██║██╔██╗ ██║██║  ██║███████║██╔██╗ ██║
╚════██║██╔══██║██║██║╚██╗██║██║  ██║██╔══██║██║╚██╗██║
███████║██║  ██║██║██║ ╚████║██████╔╝██║  ██║██║ ╚████║
╚══════╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝`

const titleCompact = "S · H · I · N · D · A · N"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact || cw < lipgloss.Width(titleFull) {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(art)
}

// renderStatsBar renders the user's counters in a bordered box matching the
// content width.
func renderStatsBar(ud *profile.UserData, cw int) string {
	pointStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	diagStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	rewardStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var points, diagnoses, rewards int
	if ud != nil {
		points = ud.Points
		diagnoses = len(ud.CompletedDiagnoses)
		rewards = len(ud.UnlockedRewards)
	}

	stats := fmt.Sprintf("%s  %s  %s",
		pointStyle.Render(fmt.Sprintf("● %d PTS", points)),
		diagStyle.Render(fmt.Sprintf("✎ %d DONE", diagnoses)),
		rewardStyle.Render(fmt.Sprintf("✦ %d REWARDS", rewards)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLatest describes the newest diagnosis in one line.
func renderLatest(ud *profile.UserData, cw int) string {
	style := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	latest, ok := latestDiagnosis(ud)
	if !ok {
		return style.Foreground(theme.TextDim).Italic(true).
			Render("Take your first diagnosis to discover your type")
	}
	return style.Foreground(theme.CategoryColor(latest.Result.Type)).
		Render(fmt.Sprintf("Latest: %s  (%s)", latest.Result.Title, latest.CompletedAt.Local().Format("Jan 02")))
}

func latestDiagnosis(ud *profile.UserData) (profile.Diagnosis, bool) {
	if ud == nil || len(ud.CompletedDiagnoses) == 0 {
		return profile.Diagnosis{}, false
	}
	latest := ud.CompletedDiagnoses[0]
	for _, d := range ud.CompletedDiagnoses[1:] {
		if d.CompletedAt.After(latest.CompletedAt) {
			latest = d
		}
	}
	return latest, true
}

// renderMascotBox renders the mascot centered at the content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
