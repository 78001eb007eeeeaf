package draw

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/rewards"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

const (
	tickInterval = 80 * time.Millisecond

	// minFrames is how many reel ticks play before the result is revealed.
	minFrames = 10
)

type drawLoadedMsg struct {
	data *profile.UserData
	err  error
}

type spinDoneMsg struct {
	result *gacha.SpinResult
	err    error
}

type spinTickMsg struct{}

// DrawScreen is the reward draw machine.
type DrawScreen struct {
	svc  screen.Services
	data *profile.UserData

	spinning bool
	frame    int
	pending  *spinDoneMsg

	result *gacha.SpinResult
	errMsg string
}

var _ screen.Screen = (*DrawScreen)(nil)
var _ screen.KeyHintProvider = (*DrawScreen)(nil)

// New creates a new DrawScreen.
func New(svc screen.Services) *DrawScreen {
	return &DrawScreen{svc: svc}
}

func (s *DrawScreen) Init() tea.Cmd {
	return s.load
}

func (s *DrawScreen) load() tea.Msg {
	ud, err := s.svc.Profiles.Read(context.Background())
	return drawLoadedMsg{data: ud, err: err}
}

func (s *DrawScreen) Title() string {
	return "Reward Draw"
}

func (s *DrawScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: fmt.Sprintf("Spin (%d pts)", profile.SpinCost)},
		{Key: "r", Description: "My rewards"},
		{Key: "Esc", Description: "Back"},
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return spinTickMsg{} })
}

func (s *DrawScreen) spin() tea.Msg {
	res, err := s.svc.Gacha.Spin(context.Background())
	return spinDoneMsg{result: res, err: err}
}

func (s *DrawScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case drawLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.data = msg.data
		return s, nil

	case spinDoneMsg:
		s.pending = &msg
		return s, nil

	case spinTickMsg:
		if !s.spinning {
			return s, nil
		}
		s.frame++
		if s.pending == nil || s.frame < minFrames {
			return s, tick()
		}
		return s, s.reveal()

	case tea.KeyMsg:
		if s.spinning {
			return s, nil
		}
		switch msg.String() {
		case "enter", "space", " ":
			return s, s.start()
		case "r":
			next := rewards.New(s.svc)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *DrawScreen) start() tea.Cmd {
	if s.data == nil {
		return nil
	}
	if !profile.CanSpin(s.data) {
		s.errMsg = cannotSpinReason(s.data)
		return nil
	}
	s.errMsg = ""
	s.result = nil
	s.pending = nil
	s.spinning = true
	s.frame = 0
	return tea.Batch(s.spin, tick())
}

// reveal stops the reel and shows the pending outcome.
func (s *DrawScreen) reveal() tea.Cmd {
	done := s.pending
	s.spinning = false
	s.pending = nil

	if done.err != nil {
		if errors.Is(done.err, gacha.ErrCannotSpin) {
			s.errMsg = cannotSpinReason(s.data)
		} else {
			s.errMsg = done.err.Error()
		}
		// A failed draw may already have charged points.
		return tea.Batch(s.load, screen.RefreshStats)
	}

	s.result = done.result
	s.data.Points = done.result.Points
	s.data.UnlockedRewards = append(s.data.UnlockedRewards, done.result.Reward)
	return screen.RefreshStats
}

func cannotSpinReason(ud *profile.UserData) string {
	if len(ud.CompletedDiagnoses) == 0 {
		return "Finish a diagnosis to unlock the reward draw"
	}
	return fmt.Sprintf("Not enough points: a draw costs %d, you have %d", profile.SpinCost, ud.Points)
}

func (s *DrawScreen) View(width, height int) string {
	if s.data == nil {
		if s.errMsg != "" {
			return components.Frame(theme.ErrorText.Render("Error: "+s.errMsg), width, height)
		}
		return components.Frame(theme.Hint.Render("Loading..."), width, height)
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render("★  REWARD DRAW  ★"))
	sections = append(sections, theme.Subtitle.Render(
		fmt.Sprintf("Balance: %d pts  ·  Cost: %d pts", s.data.Points, profile.SpinCost)))

	switch {
	case s.spinning:
		sections = append(sections, s.renderReel(cw))
	case s.result != nil:
		sections = append(sections, renderResult(s.result, cw))
	default:
		sections = append(sections, components.Panel(
			theme.Hint.Render("Press Enter to spin"), cw, theme.Border))
	}

	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}
	if !layout.IsCompact(height) {
		sections = append(sections, renderOdds(cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *DrawScreen) renderReel(cw int) string {
	defs := s.svc.Gacha.Catalog()
	if len(defs) == 0 {
		return ""
	}
	def := defs[s.frame%len(defs)]
	return components.Panel(lipgloss.NewStyle().
		Foreground(theme.RarityColor(string(def.Rarity))).
		Bold(true).
		Render("» "+def.Title+" «"), cw, theme.ArcadeCyan)
}

func renderResult(r *gacha.SpinResult, cw int) string {
	c := theme.RarityColor(string(r.Definition.Rarity))
	lines := []string{
		lipgloss.NewStyle().Foreground(c).Bold(true).Render(strings.ToUpper(r.Definition.Rarity.DisplayName())),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Reward.Title),
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 8).Align(lipgloss.Center).Render(r.Reward.Description),
	}
	if r.Definition.Points > 0 {
		lines = append(lines, theme.Warning.Render(fmt.Sprintf("+%d pts", r.Definition.Points)))
	}
	return components.Panel(strings.Join(lines, "\n"), cw, c)
}

func renderOdds(cw int) string {
	var parts []string
	for _, r := range gacha.AllRarities() {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.RarityColor(string(r))).
			Render(fmt.Sprintf("%s %d%%", r.DisplayName(), r.Weight()*100/gacha.TotalWeight())))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(parts, "   "))
}
