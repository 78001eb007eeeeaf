package compare

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

const (
	labelWidth  = 21
	columnWidth = 18
)

// CompareScreen shows category scores of up to three diagnoses side by side.
// Each column after the first carries its change from the previous one.
type CompareScreen struct {
	diagnoses []profile.Diagnosis
}

var _ screen.Screen = (*CompareScreen)(nil)
var _ screen.KeyHintProvider = (*CompareScreen)(nil)

// New creates a CompareScreen over list in the given order.
func New(list []profile.Diagnosis) *CompareScreen {
	return &CompareScreen{diagnoses: list}
}

func (s *CompareScreen) Init() tea.Cmd {
	return nil
}

func (s *CompareScreen) Title() string {
	return "Compare"
}

func (s *CompareScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CompareScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *CompareScreen) View(width, height int) string {
	if len(s.diagnoses) < 2 {
		return components.Frame(theme.Hint.Render("Pick at least two diagnoses to compare"), width, height)
	}

	var rows []string
	rows = append(rows, s.headerRow())
	rows = append(rows, lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", labelWidth+columnWidth*len(s.diagnoses))))

	for _, c := range aptitude.Categories() {
		rows = append(rows, s.categoryRow(c))
	}

	table := strings.Join(rows, "\n")
	return components.Frame(table, width, height)
}

func (s *CompareScreen) headerRow() string {
	cells := []string{cell("", labelWidth, lipgloss.NewStyle())}
	for _, d := range s.diagnoses {
		title := lipgloss.NewStyle().Foreground(theme.CategoryColor(d.Result.Type)).Bold(true)
		cells = append(cells, lipgloss.JoinVertical(lipgloss.Left,
			cell(d.Result.Title, columnWidth, title),
			cell(d.CompletedAt.Local().Format("Jan 02 15:04"), columnWidth, lipgloss.NewStyle().Foreground(theme.TextDim)),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (s *CompareScreen) categoryRow(c aptitude.Category) string {
	cells := []string{cell(c.Label(), labelWidth, lipgloss.NewStyle().Foreground(theme.CategoryColor(string(c))))}
	for i, d := range s.diagnoses {
		score := d.Result.Scores[c]
		text := fmt.Sprintf("%3d", score)
		if i > 0 {
			text += " " + trendMark(s.deltaAt(i, c))
		}
		cells = append(cells, cell(text, columnWidth, lipgloss.NewStyle().Foreground(theme.Text)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// deltaAt returns the change in c from the first diagnosis to diagnosis i.
func (s *CompareScreen) deltaAt(i int, c aptitude.Category) aptitude.ScoreDelta {
	for _, d := range aptitude.Compare(s.diagnoses[0].Result.Scores, s.diagnoses[i].Result.Scores) {
		if d.Category == c {
			return d
		}
	}
	return aptitude.ScoreDelta{Category: c, Trend: aptitude.TrendEqual}
}

func trendMark(d aptitude.ScoreDelta) string {
	switch d.Trend {
	case aptitude.TrendUp:
		return theme.TrendUp.Render(fmt.Sprintf("▲%d", d.Diff))
	case aptitude.TrendDown:
		return theme.TrendDown.Render(fmt.Sprintf("▼%d", d.Diff))
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("=")
	}
}

func cell(text string, width int, style lipgloss.Style) string {
	return style.Width(width).MaxWidth(width).Render(text)
}
