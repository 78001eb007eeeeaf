package rewards

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

type rewardsLoadedMsg struct {
	rewards []profile.Reward
	err     error
}

// tab is a reward type filter; the zero value shows every type.
type tab profile.RewardType

func tabs() []tab {
	out := []tab{""}
	for _, t := range profile.AllRewardTypes() {
		out = append(out, tab(t))
	}
	return out
}

func (t tab) label() string {
	if t == "" {
		return "All"
	}
	return profile.RewardType(t).DisplayName()
}

// RewardsScreen lists the user's unlocked rewards, newest first.
type RewardsScreen struct {
	svc          screen.Services
	all          []profile.Reward
	selectedTab  int
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*RewardsScreen)(nil)
var _ screen.KeyHintProvider = (*RewardsScreen)(nil)

// New creates a new RewardsScreen.
func New(svc screen.Services) *RewardsScreen {
	return &RewardsScreen{svc: svc}
}

func (s *RewardsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ud, err := s.svc.Profiles.Read(context.Background())
		if err != nil {
			return rewardsLoadedMsg{err: err}
		}
		list := slices.Clone(ud.UnlockedRewards)
		slices.SortStableFunc(list, func(a, b profile.Reward) int {
			return b.UnlockedAt.Compare(a.UnlockedAt)
		})
		return rewardsLoadedMsg{rewards: list}
	}
}

func (s *RewardsScreen) Title() string {
	return "My Rewards"
}

func (s *RewardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RewardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rewardsLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.all = msg.rewards
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		n := len(tabs())
		switch msg.String() {
		case "tab", "right", "l":
			s.selectedTab = (s.selectedTab + 1) % n
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.selectedTab = (s.selectedTab - 1 + n) % n
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *RewardsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading rewards...")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nTotal: %d rewards\n", len(s.all))))
	b.WriteString("\n")

	var labels []string
	for i, t := range tabs() {
		label := fmt.Sprintf("%s (%d)", t.label(), s.countByTab(t))
		if i == s.selectedTab {
			labels = append(labels, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			labels = append(labels, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(labels, "   ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 64)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		msg := "No rewards of this type yet"
		if len(s.all) == 0 {
			msg = "No rewards yet. Spin the reward draw to unlock some!"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(msg))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	defs := s.catalog()
	for _, r := range filtered[start:end] {
		rarity := rarityOf(r, defs)
		line := fmt.Sprintf("  %-10s %-9s %-28s %s",
			rarity.DisplayName(),
			r.Type.DisplayName(),
			r.Title,
			r.UnlockedAt.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.RarityColor(string(rarity))).Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *RewardsScreen) catalog() []gacha.Definition {
	if s.svc.Gacha == nil {
		return gacha.Catalog()
	}
	return s.svc.Gacha.Catalog()
}

// rarityOf finds the definition a stored reward was drawn from. Stored IDs
// are the definition ID plus a unique suffix.
func rarityOf(r profile.Reward, defs []gacha.Definition) gacha.Rarity {
	// Longest matching ID wins.
	var best gacha.Definition
	for _, d := range defs {
		if strings.HasPrefix(r.ID, d.ID+"_") && len(d.ID) > len(best.ID) {
			best = d
		}
	}
	if best.ID == "" {
		return gacha.RarityCommon
	}
	return best.Rarity
}

func (s *RewardsScreen) filtered() []profile.Reward {
	t := tabs()[s.selectedTab]
	if t == "" {
		return s.all
	}
	var out []profile.Reward
	for _, r := range s.all {
		if r.Type == profile.RewardType(t) {
			out = append(out, r)
		}
	}
	return out
}

func (s *RewardsScreen) countByTab(t tab) int {
	if t == "" {
		return len(s.all)
	}
	n := 0
	for _, r := range s.all {
		if r.Type == profile.RewardType(t) {
			n++
		}
	}
	return n
}
