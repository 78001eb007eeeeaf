package aptitude

// points is a fixed addition to one category.
type points struct {
	cat Category
	n   int
}

// rule folds one answer value into the accumulator.
type rule interface {
	apply(v Value, acc *accumulator)
}

// choiceRule maps a string option to a fixed distribution. Numeric values
// and unknown options contribute nothing.
type choiceRule map[string][]points

func (r choiceRule) apply(v Value, acc *accumulator) {
	if v.IsNumber() {
		return
	}
	for _, p := range r[v.Str()] {
		acc.add(p.cat, p.n)
	}
}

// threshold adds max(0, v-k) to cat, or max(0, k-v) when inverse is set.
type threshold struct {
	cat     Category
	k       int
	inverse bool
}

// scaleRule adds the numeric value to primary and thresholded amounts to
// each secondary.
type scaleRule struct {
	primary     Category
	secondaries []threshold
}

func (r scaleRule) apply(v Value, acc *accumulator) {
	n, ok := scaleValue(v)
	if !ok {
		return
	}
	acc.add(r.primary, n)
	for _, t := range r.secondaries {
		d := n - t.k
		if t.inverse {
			d = t.k - n
		}
		acc.add(t.cat, max(0, d))
	}
}

// scaleLimit bounds a coerced scale value so the integer conversion and the
// threshold arithmetic stay in range.
const scaleLimit = 1 << 20

// scaleValue coerces v to an integer, truncating toward zero and clamping
// to ±scaleLimit. Values that do not coerce to a finite number report
// ok=false.
func scaleValue(v Value) (int, bool) {
	f, ok := v.Float()
	if !ok {
		return 0, false
	}
	return int(min(max(f, -scaleLimit), scaleLimit)), true
}

var jobAptitudeRules = map[string]rule{
	// What matters most in a job.
	"q1": choiceRule{
		"growth":     {{Technical, 2}, {Analytical, 1}},
		"stability":  {{Social, 2}, {Analytical, 1}},
		"impact":     {{Social, 2}, {Leadership, 1}},
		"creativity": {{Creative, 3}},
	},
	// Preferred workplace.
	"q2": choiceRule{
		"collaborative": {{Social, 2}, {Leadership, 1}},
		"independent":   {{Technical, 2}, {Creative, 1}},
		"structured":    {{Analytical, 2}, {Technical, 1}},
		"flexible":      {{Creative, 2}, {Leadership, 1}},
	},
	// Interest in new technology, 1-5.
	"q3": scaleRule{
		primary: Technical,
		secondaries: []threshold{
			{cat: Creative, k: 2},
			{cat: Analytical, k: 1},
		},
	},
	// Problem-solving approach.
	"q4": choiceRule{
		"analytical":    {{Analytical, 3}},
		"creative":      {{Creative, 3}},
		"collaborative": {{Social, 2}, {Leadership, 1}},
		"practical":     {{Technical, 2}, {Analytical, 1}},
	},
	// Working style.
	"q5": choiceRule{
		"detail":     {{Technical, 2}, {Analytical, 1}},
		"speed":      {{Technical, 1}, {Leadership, 1}},
		"strategic":  {{Analytical, 2}, {Leadership, 2}},
		"innovative": {{Creative, 3}},
	},
	// Enjoyment of working with people, 1-5.
	"q6": scaleRule{
		primary: Social,
		secondaries: []threshold{
			{cat: Leadership, k: 2},
			{cat: Creative, k: 1},
		},
	},
	// Career direction.
	"q7": choiceRule{
		"specialist":   {{Technical, 3}},
		"manager":      {{Leadership, 3}},
		"entrepreneur": {{Leadership, 2}, {Creative, 2}},
		"generalist":   {{Social, 2}, {Analytical, 1}},
	},
	// Ideal schedule.
	"q8": choiceRule{
		"fixed":    {{Analytical, 1}, {Social, 1}},
		"flexible": {{Creative, 1}, {Technical, 1}},
		"remote":   {{Technical, 2}, {Creative, 1}},
		"project":  {{Leadership, 2}, {Creative, 1}},
	},
	// Risk tolerance, 1-5. Low tolerance favours technical work.
	"q9": scaleRule{
		primary: Leadership,
		secondaries: []threshold{
			{cat: Creative, k: 2},
			{cat: Technical, k: 3, inverse: true},
		},
	},
	// Source of motivation.
	"q10": choiceRule{
		"achievement": {{Leadership, 2}, {Technical, 1}},
		"recognition": {{Leadership, 2}, {Creative, 1}},
		"helping":     {{Social, 3}},
		"learning":    {{Technical, 2}, {Analytical, 1}},
	},
}
