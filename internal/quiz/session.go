// Package quiz tracks an in-progress diagnosis: the question cursor and the
// answers given so far.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/profile"
)

// ErrUnknownQuestion is returned when answering a question not in the session.
var ErrUnknownQuestion = errors.New("unknown question")

// IncompleteError lists the questions still unanswered at completion.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%d question(s) unanswered: %s", len(e.Missing), strings.Join(e.Missing, ", "))
}

// Session is a single pass through a question list.
type Session struct {
	ID        string
	Type      profile.DiagnosisType
	StartedAt time.Time

	questions []aptitude.Question
	answers   []aptitude.Answer
	index     int
	now       func() time.Time
}

// NewSession starts a session over questions. A nil now uses time.Now.
func NewSession(typ profile.DiagnosisType, questions []aptitude.Question, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:        uuid.NewString(),
		Type:      typ,
		StartedAt: now().UTC(),
		questions: questions,
		now:       now,
	}
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question under the cursor.
func (s *Session) Current() (aptitude.Question, bool) {
	if len(s.questions) == 0 {
		return aptitude.Question{}, false
	}
	return s.questions[s.index], true
}

// Next moves forward one question. It reports false at the last question.
func (s *Session) Next() bool {
	if s.index >= len(s.questions)-1 {
		return false
	}
	s.index++
	return true
}

// Previous moves back one question. It reports false at the first question.
func (s *Session) Previous() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Seek moves the cursor to questionID. It reports false for unknown IDs.
func (s *Session) Seek(questionID string) bool {
	for i, q := range s.questions {
		if q.ID == questionID {
			s.index = i
			return true
		}
	}
	return false
}

// IsFirst reports whether the cursor is on the first question.
func (s *Session) IsFirst() bool { return s.index == 0 }

// IsLast reports whether the cursor is on the last question.
func (s *Session) IsLast() bool { return s.index >= len(s.questions)-1 }

// Progress returns the fraction of the quiz reached, counting the current
// question, in [0, 1].
func (s *Session) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.index+1) / float64(len(s.questions))
}

// Answer records v for questionID, replacing any earlier answer to it.
func (s *Session) Answer(questionID string, v aptitude.Value) error {
	if !s.has(questionID) {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	a := aptitude.Answer{QuestionID: questionID, Value: v, AnsweredAt: s.now().UTC()}
	for i := range s.answers {
		if s.answers[i].QuestionID == questionID {
			s.answers[i] = a
			return nil
		}
	}
	s.answers = append(s.answers, a)
	return nil
}

// AnswerFor returns the recorded answer value for questionID.
func (s *Session) AnswerFor(questionID string) (aptitude.Value, bool) {
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return aptitude.Value{}, false
}

// Answered reports whether questionID has an answer.
func (s *Session) Answered(questionID string) bool {
	_, ok := s.AnswerFor(questionID)
	return ok
}

// Answers returns a copy of the recorded answers in the order first given.
func (s *Session) Answers() []aptitude.Answer {
	out := make([]aptitude.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Missing returns the IDs of unanswered questions in quiz order.
func (s *Session) Missing() []string {
	var missing []string
	for _, q := range s.questions {
		if !s.Answered(q.ID) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Complete scores the answers and returns the finished diagnosis. Every
// question must be answered.
func (s *Session) Complete() (profile.Diagnosis, error) {
	if missing := s.Missing(); len(missing) > 0 {
		return profile.Diagnosis{}, &IncompleteError{Missing: missing}
	}
	answers := s.Answers()
	return profile.Diagnosis{
		ID:          s.ID,
		Type:        s.Type,
		Answers:     answers,
		Result:      aptitude.ComputeResult(answers),
		CompletedAt: s.now().UTC().Truncate(time.Millisecond),
	}, nil
}

func (s *Session) has(questionID string) bool {
	for _, q := range s.questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}
