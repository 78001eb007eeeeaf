package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/compare"
	"github.com/abhisek/shindan/internal/screens/result"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

type historyLoadedMsg struct {
	data *profile.UserData
	err  error
}

type historyDeletedMsg struct {
	count int
	err   error
}

// HistoryScreen lists completed diagnoses with search, sort, multi-select
// for comparison, and deletion.
type HistoryScreen struct {
	svc    screen.Services
	data   *profile.UserData
	rows   []profile.Diagnosis
	search components.TextInput
	sortBy profile.SortKey

	selected int
	marked   []string

	confirmDelete bool
	loaded        bool
	notice        string
	errMsg        string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc screen.Services) *HistoryScreen {
	return &HistoryScreen{
		svc:    svc,
		search: components.NewTextInput("Search", "title or type", 40),
		sortBy: profile.SortByDate,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	ud, err := s.svc.Profiles.Read(context.Background())
	return historyLoadedMsg{data: ud, err: err}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "Space", Description: "Mark"},
		{Key: "c", Description: "Compare"},
		{Key: "/", Description: "Search"},
		{Key: "s", Description: "Sort"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) refilter() {
	if s.data == nil {
		s.rows = nil
		return
	}
	s.rows = profile.SearchDiagnoses(s.data.CompletedDiagnoses, s.search.Value(), s.sortBy)
	s.selected = max(0, min(s.selected, len(s.rows)-1))
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.data = msg.data
		// Drop marks on diagnoses that no longer exist.
		s.marked = slices.DeleteFunc(s.marked, func(id string) bool {
			_, ok := s.data.Diagnosis(id)
			return !ok
		})
		s.refilter()
		return s, nil

	case historyDeletedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.marked = nil
		s.notice = fmt.Sprintf("Deleted %d diagnosis(es)", msg.count)
		return s, tea.Batch(s.load, screen.RefreshStats)

	case tea.KeyMsg:
		if s.search.Focused() {
			if msg.String() == "enter" {
				s.search.Blur()
				return s, nil
			}
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			s.refilter()
			return s, cmd
		}
		if s.confirmDelete {
			s.confirmDelete = false
			if msg.String() == "y" {
				return s, s.deleteCmd(s.deleteTargets())
			}
			s.notice = "Delete cancelled"
			return s, nil
		}
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	s.notice = ""
	switch key {
	case "/":
		return s.search.Focus()
	case "s":
		if s.sortBy == profile.SortByDate {
			s.sortBy = profile.SortByTitle
		} else {
			s.sortBy = profile.SortByDate
		}
		s.refilter()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.rows)-1 {
			s.selected++
		}
	case "space", " ":
		s.toggleMark()
	case "c":
		if len(s.marked) < 2 {
			s.notice = "Mark 2 or 3 diagnoses with Space to compare"
			return nil
		}
		list := profile.FindDiagnoses(s.data, s.marked)
		next := compare.New(list)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "enter":
		if d, ok := s.current(); ok {
			next := result.NewDetail(d)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "d":
		if len(s.deleteTargets()) > 0 {
			s.confirmDelete = true
		}
	}
	return nil
}

func (s *HistoryScreen) current() (profile.Diagnosis, bool) {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return profile.Diagnosis{}, false
	}
	return s.rows[s.selected], true
}

func (s *HistoryScreen) toggleMark() {
	d, ok := s.current()
	if !ok {
		return
	}
	if i := slices.Index(s.marked, d.ID); i >= 0 {
		s.marked = slices.Delete(s.marked, i, i+1)
		return
	}
	if len(s.marked) >= profile.MaxCompare {
		s.notice = fmt.Sprintf("You can compare at most %d diagnoses", profile.MaxCompare)
		return
	}
	s.marked = append(s.marked, d.ID)
}

// deleteTargets is the marked set, or the row under the cursor when nothing
// is marked.
func (s *HistoryScreen) deleteTargets() []string {
	if len(s.marked) > 0 {
		return slices.Clone(s.marked)
	}
	if d, ok := s.current(); ok {
		return []string{d.ID}
	}
	return nil
}

func (s *HistoryScreen) deleteCmd(ids []string) tea.Cmd {
	return func() tea.Msg {
		n, err := s.svc.Profiles.RemoveDiagnoses(context.Background(), ids)
		return historyDeletedMsg{count: n, err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.data.CompletedDiagnoses) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No diagnoses yet. Take your first one from the home screen!")
	}

	cw := components.ContentWidth(width)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")
	sortLabel := "newest first"
	if s.sortBy == profile.SortByTitle {
		sortLabel = "by title"
	}
	b.WriteString(center(lipgloss.NewStyle().Width(cw).Render(
		s.search.View() + lipgloss.NewStyle().Foreground(theme.TextDim).Render("   sort: "+sortLabel))))
	b.WriteString("\n\n")

	if len(s.rows) == 0 {
		b.WriteString(center(theme.Hint.Render("No diagnoses match your search")))
		b.WriteString("\n")
	}

	maxVisible := max(height-10, 3)
	start := 0
	if s.selected >= maxVisible {
		start = s.selected - maxVisible + 1
	}
	end := min(start+maxVisible, len(s.rows))

	for i := start; i < end; i++ {
		d := s.rows[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mark := "[ ]"
		if slices.Contains(s.marked, d.ID) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %-24s %-12s %s",
			prefix, mark, d.Result.Title, d.Result.Type, d.CompletedAt.Local().Format("Jan 02, 2006 15:04"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case slices.Contains(s.marked, d.ID):
			style = theme.Marked
		}
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.confirmDelete:
		b.WriteString(center(theme.Warning.Render(
			fmt.Sprintf("Delete %d diagnosis(es)? Points are not refunded. [y/N]", len(s.deleteTargets())))))
	case s.notice != "":
		b.WriteString(center(theme.Hint.Render(s.notice)))
	case len(s.marked) > 0:
		b.WriteString(center(theme.Marked.Render(
			fmt.Sprintf("%d/%d marked", len(s.marked), profile.MaxCompare))))
	}

	return b.String()
}
