package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/diagnose"
	"github.com/abhisek/shindan/internal/screens/draw"
	"github.com/abhisek/shindan/internal/screens/history"
	"github.com/abhisek/shindan/internal/screens/rewards"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

type homeLoadedMsg struct {
	data *profile.UserData
	err  error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    screen.Services
	menu   components.Menu
	data   *profile.UserData
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	drawHint := ""
	if h.data != nil && !profile.CanSpin(h.data) {
		drawHint = fmt.Sprintf("A draw needs a finished diagnosis and %d pts", profile.SpinCost)
	}

	return []components.MenuItem{
		{Label: "START DIAGNOSIS", Action: push(func() screen.Screen { return diagnose.New(h.svc) })},
		{Label: "HISTORY", Action: push(func() screen.Screen { return history.New(h.svc) })},
		{Label: "REWARD DRAW", Hint: drawHint, Action: push(func() screen.Screen { return draw.New(h.svc) })},
		{Label: "MY REWARDS", Action: push(func() screen.Screen { return rewards.New(h.svc) })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) load() tea.Msg {
	ud, err := h.svc.Profiles.Read(context.Background())
	return homeLoadedMsg{data: ud, err: err}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.data = msg.data
		h.menu = h.menu.SetItems(h.menuItems())
		return h, nil

	case screen.StatsMsg:
		// The record changed underneath us, e.g. after returning from a draw.
		return h, h.load
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(height)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.data), cw))
	}
	sections = append(sections, renderStatsBar(h.data, cw))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Storage unavailable: "+h.errMsg))
	} else {
		sections = append(sections, renderLatest(h.data, cw))
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h.menu.View(buttonWidth)))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
