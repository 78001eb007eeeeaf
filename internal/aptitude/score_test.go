package aptitude

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ans(id string, v Value) Answer {
	return Answer{QuestionID: id, Value: v, AnsweredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func str(id, v string) Answer { return ans(id, StringValue(v)) }
func num(id string, n float64) Answer { return ans(id, NumberValue(n)) }

func zeroScores() map[Category]int {
	return map[Category]int{Creative: 0, Analytical: 0, Technical: 0, Social: 0, Leadership: 0}
}

func TestComputeResult_AllCreative(t *testing.T) {
	answers := []Answer{
		str("q1", "creativity"),
		str("q4", "creative"),
		str("q5", "innovative"),
	}

	got := ComputeResult(answers)

	want := zeroScores()
	want[Creative] = 9
	if diff := cmp.Diff(want, got.Scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "creative", got.Type)
	assert.Equal(t, "Creative Innovator", got.Title)
	assert.NotEmpty(t, got.Recommendations)
}

func TestComputeResult_EmptyDefaultsToFirstCategory(t *testing.T) {
	got := ComputeResult(nil)
	assert.Equal(t, string(Creative), got.Type)
	assert.Equal(t, zeroScores(), got.Scores)
}

func TestComputeResult_TieBreak(t *testing.T) {
	tests := []struct {
		name    string
		answers []Answer
		want    Category
	}{
		{
			name:    "creative beats analytical",
			answers: []Answer{str("q4", "analytical"), str("q1", "creativity")},
			want:    Creative,
		},
		{
			name:    "analytical beats technical",
			answers: []Answer{str("q7", "specialist"), str("q4", "analytical")},
			want:    Analytical,
		},
		{
			name:    "technical beats social",
			answers: []Answer{str("q10", "helping"), str("q7", "specialist")},
			want:    Technical,
		},
		{
			name:    "social beats leadership",
			answers: []Answer{str("q7", "manager"), str("q10", "helping")},
			want:    Social,
		},
		{
			name:    "analytical and leadership tie on strategic",
			answers: []Answer{str("q5", "strategic")},
			want:    Analytical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				got := ComputeResult(tt.answers)
				require.Equal(t, string(tt.want), got.Type, "run %d", i)
			}
		})
	}
}

func TestScore_ScaleQuestions(t *testing.T) {
	tests := []struct {
		name   string
		answer Answer
		want   map[Category]int
	}{
		{"q3 high", num("q3", 5), map[Category]int{Technical: 5, Creative: 3, Analytical: 4}},
		{"q3 low", num("q3", 1), map[Category]int{Technical: 1}},
		{"q6 mid", num("q6", 3), map[Category]int{Social: 3, Leadership: 1, Creative: 2}},
		{"q9 low rewards technical", num("q9", 1), map[Category]int{Leadership: 1, Technical: 2}},
		{"q9 high", num("q9", 5), map[Category]int{Leadership: 5, Creative: 3}},
		{"numeric string coerces", str("q3", " 4 "), map[Category]int{Technical: 4, Creative: 2, Analytical: 3}},
		{"fraction truncates", num("q6", 2.9), map[Category]int{Social: 2, Creative: 1}},
		{"huge value clamps", num("q3", 1e20), map[Category]int{Technical: scaleLimit, Creative: scaleLimit - 2, Analytical: scaleLimit - 1}},
		{"huge negative clamps", num("q9", -1e300), map[Category]int{Leadership: -scaleLimit, Technical: 3 + scaleLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Score([]Answer{tt.answer})
			want := zeroScores()
			for c, n := range tt.want {
				want[c] = n
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestScore_NonNumericScaleContributesNothing(t *testing.T) {
	for _, v := range []Value{
		StringValue("abc"),
		StringValue(""),
		StringValue("NaN"),
		NumberValue(math.NaN()),
		NumberValue(math.Inf(1)),
	} {
		got, _ := Score([]Answer{ans("q9", v), str("q1", "creativity")})
		want := zeroScores()
		want[Creative] = 3
		assert.Equal(t, want, got, "value %q", v.String())
	}
}

func TestScore_IgnoresUnknownInput(t *testing.T) {
	answers := []Answer{
		str("q99", "creativity"),
		str("q1", "unknown-option"),
		num("q1", 3), // numeric value on a choice question
	}
	got, _ := Score(answers)
	assert.Equal(t, zeroScores(), got)
}

func TestScore_OrderIndependent(t *testing.T) {
	answers := fullAnswers()
	reversed := make([]Answer, len(answers))
	for i, a := range answers {
		reversed[len(answers)-1-i] = a
	}

	s1, w1 := Score(answers)
	s2, w2 := Score(reversed)
	assert.Equal(t, s1, s2)
	assert.Equal(t, w1, w2)
}

// Every subset of the ten answers scores exactly the sum of the
// contributions of its members.
func TestScore_SubsetsAreAdditive(t *testing.T) {
	answers := fullAnswers()
	require.Len(t, answers, 10)

	single := make([]map[Category]int, len(answers))
	for i, a := range answers {
		single[i], _ = Score([]Answer{a})
	}

	for mask := 0; mask < 1<<len(answers); mask++ {
		var subset []Answer
		want := zeroScores()
		for i, a := range answers {
			if mask&(1<<i) == 0 {
				continue
			}
			subset = append(subset, a)
			for c, n := range single[i] {
				want[c] += n
			}
		}
		got, _ := Score(subset)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("mask %010b (-want +got):\n%s", mask, diff)
		}
	}
}

func TestCatalogOptionsAllScore(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 10)

	for _, q := range qs {
		r, ok := jobAptitudeRules[q.ID]
		require.True(t, ok, "question %s has no rule", q.ID)

		for _, v := range q.Values() {
			var acc accumulator
			r.apply(v, &acc)
			total := 0
			for _, n := range acc {
				total += n
			}
			assert.Positive(t, total, "%s=%s contributes nothing", q.ID, v.String())
		}
		assert.Len(t, q.Labels(), len(q.Values()))
	}
}

func TestResultFor_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, Creative, ResultFor("astronaut").Type)
	for _, c := range Categories() {
		assert.Equal(t, c, ResultFor(c).Type)
	}
}

func fullAnswers() []Answer {
	return []Answer{
		str("q1", "growth"),
		str("q2", "flexible"),
		num("q3", 4),
		str("q4", "collaborative"),
		str("q5", "strategic"),
		num("q6", 5),
		str("q7", "entrepreneur"),
		str("q8", "remote"),
		num("q9", 2),
		str("q10", "learning"),
	}
}
