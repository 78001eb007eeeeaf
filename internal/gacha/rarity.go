package gacha

// Rarity is the drop tier of a reward.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest. Draw
// walks the cumulative weights in this order.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// Weight returns the relative draw weight of the rarity out of TotalWeight.
func (r Rarity) Weight() int {
	switch r {
	case RarityCommon:
		return 50
	case RarityUncommon:
		return 30
	case RarityRare:
		return 15
	case RarityLegendary:
		return 5
	default:
		return 0
	}
}

// TotalWeight is the sum of all rarity weights.
func TotalWeight() int {
	total := 0
	for _, r := range AllRarities() {
		total += r.Weight()
	}
	return total
}
