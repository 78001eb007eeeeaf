// Package diagnose is the quiz screen: one question at a time, a progress
// bar, and scoring once the last question is answered.
package diagnose

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/result"
	"github.com/abhisek/shindan/internal/ui/components"
	"github.com/abhisek/shindan/internal/ui/layout"
	"github.com/abhisek/shindan/internal/ui/theme"
)

type diagnosisSavedMsg struct {
	diagnosis profile.Diagnosis
	err       error
}

// DiagnosisScreen walks the user through the question list.
type DiagnosisScreen struct {
	svc     screen.Services
	session *quiz.Session
	choices components.ChoiceList
	saving  bool
	errMsg  string
}

var _ screen.Screen = (*DiagnosisScreen)(nil)
var _ screen.KeyHintProvider = (*DiagnosisScreen)(nil)

// New starts a job-aptitude diagnosis.
func New(svc screen.Services) *DiagnosisScreen {
	return NewWithSession(svc, quiz.NewSession(profile.TypeJobAptitude, aptitude.Questions(), nil))
}

// NewWithSession runs the screen over an existing session.
func NewWithSession(svc screen.Services, sess *quiz.Session) *DiagnosisScreen {
	s := &DiagnosisScreen{svc: svc, session: sess}
	s.loadQuestion()
	return s
}

func (s *DiagnosisScreen) Init() tea.Cmd {
	return nil
}

func (s *DiagnosisScreen) Title() string {
	return "Diagnosis"
}

func (s *DiagnosisScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-9", Description: "Pick"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

// loadQuestion rebuilds the choice list for the current question, restoring
// an earlier answer.
func (s *DiagnosisScreen) loadQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	pre := -1
	if v, answered := s.session.AnswerFor(q.ID); answered {
		for i, opt := range q.Values() {
			if opt.Equal(v) {
				pre = i
				break
			}
		}
	}
	s.choices = components.NewChoiceList(q.Text, q.Labels(), pre)
}

func (s *DiagnosisScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case diagnosisSavedMsg:
		next := result.New(s.svc, msg.diagnosis, msg.err)
		return s, tea.Batch(
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
			screen.RefreshStats,
		)

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "left", "h", "backspace":
			if s.session.Previous() {
				s.loadQuestion()
			}
			return s, nil
		case "right", "l":
			q, _ := s.session.Current()
			if s.session.Answered(q.ID) && s.session.Next() {
				s.loadQuestion()
			}
			return s, nil
		}

		var picked bool
		s.choices, picked = s.choices.Update(msg)
		if picked {
			return s, s.answer()
		}
	}
	return s, nil
}

// answer records the picked option and moves on, finishing the quiz after
// the last question.
func (s *DiagnosisScreen) answer() tea.Cmd {
	q, ok := s.session.Current()
	if !ok {
		return nil
	}
	vals := q.Values()
	if err := s.session.Answer(q.ID, vals[s.choices.Chosen]); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""

	if !s.session.IsLast() {
		s.session.Next()
		s.loadQuestion()
		return nil
	}

	d, err := s.session.Complete()
	if err != nil {
		if missing := s.session.Missing(); len(missing) > 0 {
			s.session.Seek(missing[0])
		}
		s.loadQuestion()
		s.errMsg = err.Error()
		return nil
	}

	s.saving = true
	return func() tea.Msg {
		err := s.svc.Profiles.AddDiagnosis(context.Background(), d)
		return diagnosisSavedMsg{diagnosis: d, err: err}
	}
}

func (s *DiagnosisScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.saving {
		return components.Frame(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Scoring your answers..."), width, height)
	}

	counter := fmt.Sprintf("%d/%d", s.session.Index()+1, s.session.Len())
	bar := components.NewProgressBar("Progress", s.session.Progress(), counter, cw)
	bar.Fill = theme.ArcadeCyan

	var sections []string
	sections = append(sections, bar.View())
	sections = append(sections, components.Panel(
		lipgloss.NewStyle().Align(lipgloss.Left).Render(s.choices.View(cw-6)),
		cw, theme.Primary))

	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	} else {
		sections = append(sections, theme.Hint.Render(s.navHint()))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *DiagnosisScreen) navHint() string {
	q, _ := s.session.Current()
	switch {
	case s.session.IsLast():
		return "Answering this question finishes the diagnosis"
	case s.session.Answered(q.ID):
		return "Press → to keep your answer"
	default:
		return "Pick an answer to continue"
	}
}
