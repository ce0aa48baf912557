package ruleset

// Rarity is a card's rarity tier.
type Rarity string

// Rarities in ascending order.
const (
	Common    Rarity = "COMMON"
	Rare      Rarity = "RARE"
	Epic      Rarity = "EPIC"
	Legendary Rarity = "LEGENDARY"
)

// Rarities lists every rarity in ascending order.
var Rarities = []Rarity{Common, Rare, Epic, Legendary}

// Order returns the ordinal of r (COMMON=0 .. LEGENDARY=3), or -1 when unknown.
func (r Rarity) Order() int {
	for i, x := range Rarities {
		if x == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known rarity.
func (r Rarity) Valid() bool {
	return r.Order() >= 0
}

// DefaultRarityWeights are the target rarity shares for core factions.
func DefaultRarityWeights() map[Rarity]float64 {
	return map[Rarity]float64{Common: 0.55, Rare: 0.3, Epic: 0.12, Legendary: 0.03}
}
