package aptitude

import "time"

// Answer is a single response recorded during a quiz.
type Answer struct {
	QuestionID string    `json:"questionId"`
	Value      Value     `json:"value"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// DiagnosisResult is the scored outcome of a completed quiz.
type DiagnosisResult struct {
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Scores          map[Category]int `json:"scores,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
}

// Winner returns the category recorded as the result type.
func (r DiagnosisResult) Winner() Category {
	return Category(r.Type)
}
