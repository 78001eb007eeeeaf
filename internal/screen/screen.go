package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/ui/layout"
)

// Services are the application components screens act on.
type Services struct {
	Profiles *profile.Manager
	Gacha    *gacha.Service
}

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatsMsg carries the counters shown in the header.
type StatsMsg struct {
	Points  int
	Rewards int
}

// RefreshStatsMsg asks the app to reload the header counters after a
// screen changed the user's record.
type RefreshStatsMsg struct{}

// RefreshStats is a tea.Cmd emitting RefreshStatsMsg.
func RefreshStats() tea.Msg { return RefreshStatsMsg{} }
