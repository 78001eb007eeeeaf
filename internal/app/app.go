package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/home"
	"github.com/abhisek/shindan/internal/ui/layout"
)

// Options holds dependencies for the application.
type Options struct {
	Profiles *profile.Manager
	Gacha    *gacha.Service
	Logger   *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	svc     screen.Services
	log     *zap.Logger
	width   int
	height  int
	points  int
	rewards int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	svc := screen.Services{Profiles: opts.Profiles, Gacha: opts.Gacha}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return AppModel{
		router: router.New(home.New(svc)),
		svc:    svc,
		log:    log,
	}
}

// Init loads the home screen before the header counters so a first launch
// creates the record once.
func (m AppModel) Init() tea.Cmd {
	return tea.Sequence(m.router.Active().Init(), m.loadStats)
}

// loadStats reads the header counters.
func (m AppModel) loadStats() tea.Msg {
	ud, err := m.svc.Profiles.Read(context.Background())
	if err != nil {
		m.log.Warn("load header stats", zap.Error(err))
		return nil
	}
	return screen.StatsMsg{Points: ud.Points, Rewards: len(ud.UnlockedRewards)}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case screen.RefreshStatsMsg:
		return m, m.loadStats

	case screen.StatsMsg:
		m.points = msg.Points
		m.rewards = msg.Rewards

	case router.PopScreenMsg, router.PopToRootMsg:
		// The screen underneath may be showing stale data.
		return m, tea.Batch(m.router.Update(msg), m.loadStats)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.points, m.rewards, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
