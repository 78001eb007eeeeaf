package aptitude

// Trend is the direction of a score change between two diagnoses.
type Trend string

const (
	TrendUp    Trend = "up"
	TrendDown  Trend = "down"
	TrendEqual Trend = "equal"
)

// ScoreDelta is the change in one category between two diagnoses.
type ScoreDelta struct {
	Category Category
	From     int
	To       int
	Diff     int // absolute difference
	Trend    Trend
}

// Compare returns per-category changes from base to other, in enumeration
// order. Missing categories count as zero.
func Compare(base, other map[Category]int) []ScoreDelta {
	deltas := make([]ScoreDelta, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		from, to := base[c], other[c]
		d := ScoreDelta{Category: c, From: from, To: to, Trend: TrendEqual}
		switch {
		case to > from:
			d.Diff = to - from
			d.Trend = TrendUp
		case to < from:
			d.Diff = from - to
			d.Trend = TrendDown
		}
		deltas = append(deltas, d)
	}
	return deltas
}
