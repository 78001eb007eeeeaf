package result

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/draw"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

// ResultScreen shows one scored diagnosis. It is either the end of a quiz
// or a detail view opened from the history list.
type ResultScreen struct {
	svc       screen.Services
	diagnosis profile.Diagnosis
	saveErr   error
	detail    bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New shows a freshly completed diagnosis. saveErr is the error, if any,
// from recording it.
func New(svc screen.Services, d profile.Diagnosis, saveErr error) *ResultScreen {
	return &ResultScreen{svc: svc, diagnosis: d, saveErr: saveErr}
}

// NewDetail shows a stored diagnosis.
func NewDetail(d profile.Diagnosis) *ResultScreen {
	return &ResultScreen{diagnosis: d, detail: true}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	if s.detail {
		return "Diagnosis Detail"
	}
	return "Your Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	if s.detail {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "g", Description: "Reward draw"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		if s.detail {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "g":
		if s.detail || s.saveErr != nil {
			return s, nil
		}
		next := draw.New(s.svc)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	res := s.diagnosis.Result
	accent := theme.CategoryColor(res.Type)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Render(strings.ToUpper(res.Title)))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(res.Description))

	if !layout.IsCompact(height) {
		sections = append(sections, renderScores(res.Scores, cw))
	}
	sections = append(sections, renderRecommendations(res.Recommendations, cw, accent))

	switch {
	case s.detail:
		sections = append(sections, theme.Hint.Render(
			"Completed "+s.diagnosis.CompletedAt.Local().Format("Jan 02, 2006 15:04")))
	case s.saveErr != nil:
		sections = append(sections, theme.ErrorText.Render("Could not save this result: "+s.saveErr.Error()))
	default:
		sections = append(sections, theme.Warning.Render(
			fmt.Sprintf("+%d pts earned", profile.DiagnosisPoints)))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

// renderScores draws one bar per category scaled to the top score.
func renderScores(scores map[aptitude.Category]int, cw int) string {
	top := 0
	for _, v := range scores {
		top = max(top, v)
	}

	var lines []string
	for _, c := range aptitude.Categories() {
		pct := 0.0
		if top > 0 {
			pct = float64(scores[c]) / float64(top)
		}
		bar := components.NewProgressBar(c.Label(), pct, fmt.Sprintf("%3d", scores[c]), cw)
		bar.LabelWidth = 20
		bar.Fill = theme.CategoryColor(string(c))
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderRecommendations(recs []string, cw int, accent color.Color) string {
	if len(recs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render("Careers to explore"))
	for _, r := range recs {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("• " + r))
	}
	return components.Panel(b.String(), cw, accent)
}
