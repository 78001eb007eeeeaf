package aptitude

// Category is one of the five job-aptitude archetypes.
type Category string

const (
	Creative   Category = "creative"
	Analytical Category = "analytical"
	Technical  Category = "technical"
	Social     Category = "social"
	Leadership Category = "leadership"
)

// categoryOrder is the fixed enumeration order. Ties for the top score go
// to the category that appears first here.
var categoryOrder = [...]Category{Creative, Analytical, Technical, Social, Leadership}

// Categories returns all categories in enumeration order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder[:])
	return out
}

// index returns the accumulator slot for c, or -1 if c is unknown.
func (c Category) index() int {
	for i, o := range categoryOrder {
		if o == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c.index() >= 0
}

// Label returns a human-readable label for the category.
func (c Category) Label() string {
	switch c {
	case Creative:
		return "Creative"
	case Analytical:
		return "Analysis & Strategy"
	case Technical:
		return "Technical Specialist"
	case Social:
		return "People Support"
	case Leadership:
		return "Leadership"
	default:
		return string(c)
	}
}
