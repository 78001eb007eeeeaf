package aptitude

// accumulator holds one running score per category in enumeration order.
type accumulator [len(categoryOrder)]int

func (a *accumulator) add(c Category, n int) {
	if i := c.index(); i >= 0 {
		a[i] += n
	}
}

// winner returns the first category holding the maximum score.
func (a *accumulator) winner() Category {
	best := 0
	for i := 1; i < len(a); i++ {
		if a[i] > a[best] {
			best = i
		}
	}
	return categoryOrder[best]
}

func (a *accumulator) scores() map[Category]int {
	m := make(map[Category]int, len(a))
	for i, c := range categoryOrder {
		m[c] = a[i]
	}
	return m
}

// Score folds answers into per-category totals and returns them together
// with the winning category. Unknown question ids are ignored and answer
// order does not matter.
func Score(answers []Answer) (map[Category]int, Category) {
	var acc accumulator
	for _, a := range answers {
		r, ok := jobAptitudeRules[a.QuestionID]
		if !ok {
			continue
		}
		r.apply(a.Value, &acc)
	}
	return acc.scores(), acc.winner()
}

// ComputeResult scores answers and attaches the catalog entry for the
// winning category. Scores always carry all five categories.
func ComputeResult(answers []Answer) DiagnosisResult {
	scores, winner := Score(answers)
	entry := ResultFor(winner)
	return DiagnosisResult{
		Type:            string(entry.Type),
		Title:           entry.Title,
		Description:     entry.Description,
		Scores:          scores,
		Recommendations: append([]string(nil), entry.Recommendations...),
		ImageURL:        entry.ImageURL,
	}
}
