package gacha

import "math/rand/v2"

// Source supplies randomness to Draw. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int    { return rand.IntN(n) }

// NewSeededSource returns a deterministic source for reproducible draws.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// pickRarity maps a roll in [0, TotalWeight) onto a rarity by walking the
// cumulative weights.
func pickRarity(roll float64) Rarity {
	for _, r := range AllRarities() {
		w := float64(r.Weight())
		if roll < w {
			return r
		}
		roll -= w
	}
	return RarityCommon
}

// Draw picks a rarity by weight and then a definition of that rarity
// uniformly. When defs has nothing of the chosen rarity the first
// definition is returned. ok is false only when defs is empty.
func Draw(defs []Definition, src Source) (def Definition, ok bool) {
	if len(defs) == 0 {
		return Definition{}, false
	}
	rarity := pickRarity(src.Float64() * float64(TotalWeight()))

	var bucket []Definition
	for _, d := range defs {
		if d.Rarity == rarity {
			bucket = append(bucket, d)
		}
	}
	if len(bucket) == 0 {
		return defs[0], true
	}
	return bucket[src.IntN(len(bucket))], true
}
