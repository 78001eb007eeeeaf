package aptitude

// ResultEntry is the catalog text shown for a winning category.
type ResultEntry struct {
	Type            Category
	Title           string
	Description     string
	Recommendations []string
	ImageURL        string
}

// ResultFor returns the catalog entry for c. Unknown categories fall back
// to the first category in enumeration order.
func ResultFor(c Category) ResultEntry {
	if e, ok := resultCatalog[c]; ok {
		return e
	}
	return resultCatalog[categoryOrder[0]]
}

var resultCatalog = map[Category]ResultEntry{
	Creative: {
		Type:        Creative,
		Title:       "Creative Innovator",
		Description: "You light up when you can invent something new. Original ideas, aesthetics and freedom to experiment are what drive you.",
		Recommendations: []string{
			"Product designer",
			"UX / UI designer",
			"Copywriter or content creator",
			"Marketing planner",
			"Game designer",
		},
	},
	Analytical: {
		Type:        Analytical,
		Title:       "Analytical Strategist",
		Description: "You trust data and logic. Breaking a messy problem into parts and finding the structure underneath is where you shine.",
		Recommendations: []string{
			"Data analyst",
			"Management consultant",
			"Business strategist",
			"Financial analyst",
			"Market researcher",
		},
	},
	Technical: {
		Type:        Technical,
		Title:       "Technical Specialist",
		Description: "You enjoy mastering a craft. Deep expertise, precise work and steadily growing your skills keep you motivated.",
		Recommendations: []string{
			"Software engineer",
			"Infrastructure engineer",
			"Research scientist",
			"Quality assurance engineer",
			"Technical architect",
		},
	},
	Social: {
		Type:        Social,
		Title:       "People Supporter",
		Description: "You are energised by people. Helping others grow, listening well and building trust come naturally to you.",
		Recommendations: []string{
			"Human resources specialist",
			"Customer success manager",
			"Teacher or trainer",
			"Career counsellor",
			"Healthcare coordinator",
		},
	},
	Leadership: {
		Type:        Leadership,
		Title:       "Natural Leader",
		Description: "You like to set the direction. Taking responsibility, rallying a team and making the call under uncertainty suit you.",
		Recommendations: []string{
			"Project manager",
			"Team lead",
			"Entrepreneur",
			"Sales manager",
			"Operations director",
		},
	},
}
