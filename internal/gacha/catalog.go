package gacha

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/shindan/internal/profile"
)

// Definition is a reward that can be drawn. Points are credited back to the
// user when it is drawn.
type Definition struct {
	ID          string             `json:"id" yaml:"id"`
	Type        profile.RewardType `json:"type" yaml:"type"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Rarity      Rarity             `json:"rarity" yaml:"rarity"`
	Points      int                `json:"points" yaml:"points"`
}

// Catalog returns the built-in reward definitions.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// LoadCatalog reads reward definitions from a YAML list. Every entry needs
// an id, a title and a known rarity; ids must be unique.
func LoadCatalog(r io.Reader) ([]Definition, error) {
	var defs []Definition
	if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("parse reward catalog: %w", err)
	}
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		switch {
		case d.ID == "":
			return nil, fmt.Errorf("reward %d: missing id", i)
		case d.Title == "":
			return nil, fmt.Errorf("reward %q: missing title", d.ID)
		case d.Rarity.Weight() == 0:
			return nil, fmt.Errorf("reward %q: unknown rarity %q", d.ID, d.Rarity)
		case d.Points < 0:
			return nil, fmt.Errorf("reward %q: negative points", d.ID)
		case seen[d.ID]:
			return nil, fmt.Errorf("reward %q: duplicate id", d.ID)
		}
		seen[d.ID] = true
	}
	return defs, nil
}

var catalog = []Definition{
	{
		ID:          "lucky-sticker",
		Type:        profile.RewardNovelty,
		Title:       "Lucky Sticker",
		Description: "A cheerful sticker for your profile. Purely decorative, entirely delightful.",
		Rarity:      RarityCommon,
		Points:      1,
	},
	{
		ID:          "daily-tip",
		Type:        profile.RewardInformation,
		Title:       "Career Tip of the Day",
		Description: "Write down one thing you enjoyed at work today. Patterns show up within a week.",
		Rarity:      RarityCommon,
		Points:      2,
	},
	{
		ID:          "coffee-break",
		Type:        profile.RewardNovelty,
		Title:       "Coffee Break",
		Description: "A virtual cup of coffee. Take five minutes away from the screen.",
		Rarity:      RarityCommon,
		Points:      2,
	},
	{
		ID:          "resume-checklist",
		Type:        profile.RewardInformation,
		Title:       "Resume Checklist",
		Description: "Ten quick checks to run before sending a resume anywhere.",
		Rarity:      RarityCommon,
		Points:      3,
	},
	{
		ID:          "interview-guide",
		Type:        profile.RewardInformation,
		Title:       "Interview Question Guide",
		Description: "The twenty questions interviewers ask most, with notes on what they are really looking for.",
		Rarity:      RarityUncommon,
		Points:      5,
	},
	{
		ID:          "industry-report",
		Type:        profile.RewardInformation,
		Title:       "Industry Trends Report",
		Description: "A short briefing on which industries are hiring and which skills they ask for.",
		Rarity:      RarityUncommon,
		Points:      5,
	},
	{
		ID:          "cafe-coupon",
		Type:        profile.RewardDiscount,
		Title:       "Cafe Coupon",
		Description: "Ten percent off at partner cafes. A good place to prepare for an interview.",
		Rarity:      RarityUncommon,
		Points:      5,
	},
	{
		ID:          "course-discount",
		Type:        profile.RewardDiscount,
		Title:       "Online Course Discount",
		Description: "Thirty percent off a skills course that matches your aptitude type.",
		Rarity:      RarityRare,
		Points:      10,
	},
	{
		ID:          "mock-interview",
		Type:        profile.RewardSpecial,
		Title:       "Mock Interview Session",
		Description: "A free practice interview with written feedback.",
		Rarity:      RarityRare,
		Points:      10,
	},
	{
		ID:          "mentor-session",
		Type:        profile.RewardSpecial,
		Title:       "Career Mentor Session",
		Description: "Thirty minutes one on one with a career mentor in your field of interest.",
		Rarity:      RarityLegendary,
		Points:      25,
	},
	{
		ID:          "golden-badge",
		Type:        profile.RewardNovelty,
		Title:       "Golden Badge",
		Description: "A rare golden badge. Very few people have one.",
		Rarity:      RarityLegendary,
		Points:      30,
	},
}
