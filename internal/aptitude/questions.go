package aptitude

// QuestionKind selects how a question is answered.
type QuestionKind string

const (
	KindSingle QuestionKind = "single"
	KindScale  QuestionKind = "scale"
)

// Option is one selectable answer of a choice question.
type Option struct {
	Value string
	Label string
}

// Question is a quiz question as presented to the user.
type Question struct {
	ID      string
	Kind    QuestionKind
	Text    string
	Options []Option // choice questions
	Min     int      // scale questions
	Max     int      // scale questions
}

// Values returns the selectable answer values in display order.
// Scale questions yield their numeric range.
func (q Question) Values() []Value {
	if q.Kind == KindScale {
		vals := make([]Value, 0, q.Max-q.Min+1)
		for n := q.Min; n <= q.Max; n++ {
			vals = append(vals, NumberValue(float64(n)))
		}
		return vals
	}
	vals := make([]Value, len(q.Options))
	for i, o := range q.Options {
		vals[i] = StringValue(o.Value)
	}
	return vals
}

// Labels returns the display labels matching Values.
func (q Question) Labels() []string {
	if q.Kind == KindScale {
		labels := make([]string, 0, q.Max-q.Min+1)
		for _, v := range q.Values() {
			labels = append(labels, v.String())
		}
		return labels
	}
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	return labels
}

// Questions returns the ten job-aptitude questions in quiz order.
func Questions() []Question {
	out := make([]Question, len(jobAptitudeQuestions))
	copy(out, jobAptitudeQuestions)
	return out
}

// QuestionByID looks up a question. ok is false for unknown ids.
func QuestionByID(id string) (Question, bool) {
	for _, q := range jobAptitudeQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

var jobAptitudeQuestions = []Question{
	{
		ID: "q1", Kind: KindSingle,
		Text: "What matters most to you in a job?",
		Options: []Option{
			{"growth", "Growing my own skills"},
			{"stability", "A stable, secure position"},
			{"impact", "Making a difference for others"},
			{"creativity", "Room to create new things"},
		},
	},
	{
		ID: "q2", Kind: KindSingle,
		Text: "Which workplace suits you best?",
		Options: []Option{
			{"collaborative", "A team that works closely together"},
			{"independent", "Freedom to work on my own"},
			{"structured", "Clear processes and roles"},
			{"flexible", "A flexible, changing environment"},
		},
	},
	{
		ID: "q3", Kind: KindScale,
		Text: "How interested are you in new technology? (1 = not at all, 5 = very)",
		Min:  1, Max: 5,
	},
	{
		ID: "q4", Kind: KindSingle,
		Text: "How do you usually approach a problem?",
		Options: []Option{
			{"analytical", "Gather data and analyse it"},
			{"creative", "Look for an unconventional idea"},
			{"collaborative", "Talk it through with others"},
			{"practical", "Try what has worked before"},
		},
	},
	{
		ID: "q5", Kind: KindSingle,
		Text: "Which describes your working style?",
		Options: []Option{
			{"detail", "Careful and detail-oriented"},
			{"speed", "Fast and efficient"},
			{"strategic", "Big-picture and strategic"},
			{"innovative", "Always trying something new"},
		},
	},
	{
		ID: "q6", Kind: KindScale,
		Text: "How much do you enjoy working with people? (1 = not at all, 5 = very)",
		Min:  1, Max: 5,
	},
	{
		ID: "q7", Kind: KindSingle,
		Text: "Where do you want your career to go?",
		Options: []Option{
			{"specialist", "Become an expert in one field"},
			{"manager", "Lead and manage a team"},
			{"entrepreneur", "Start my own business"},
			{"generalist", "Work across many areas"},
		},
	},
	{
		ID: "q8", Kind: KindSingle,
		Text: "What is your ideal working schedule?",
		Options: []Option{
			{"fixed", "Regular fixed hours"},
			{"flexible", "Flexible hours"},
			{"remote", "Mostly remote"},
			{"project", "Intense project-based bursts"},
		},
	},
	{
		ID: "q9", Kind: KindScale,
		Text: "How comfortable are you taking risks? (1 = avoid risk, 5 = embrace risk)",
		Min:  1, Max: 5,
	},
	{
		ID: "q10", Kind: KindSingle,
		Text: "When do you feel most rewarded at work?",
		Options: []Option{
			{"achievement", "When I hit an ambitious goal"},
			{"recognition", "When my work is recognised"},
			{"helping", "When I have helped someone"},
			{"learning", "When I have learned something new"},
		},
	},
}
