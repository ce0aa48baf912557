// Package plan apportions a faction's card slots across ranks, row roles
// and rarities, then shuffles each linear plan through its own stream.
package plan

import (
	"fmt"
	"math"
	"sort"

	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

type share[K comparable] struct {
	key   K
	index int
	count int
	frac  float64
}

// Apportion splits total across order by the largest-remainder method.
// Each key receives floor(weight*total); the leftover units go to the
// largest fractional remainders, ties broken by position in order. Keys
// missing from weights count as weight 0.
//
// Postcondition: the returned counts sum to total when total >= 0 and the
// weights are non-negative.
func Apportion[K comparable](total int, weights map[K]float64, order []K) map[K]int {
	shares := make([]share[K], len(order))
	allocated := 0
	for i, k := range order {
		raw := weights[k] * float64(total)
		floor := math.Floor(raw)
		shares[i] = share[K]{key: k, index: i, count: int(floor), frac: raw - floor}
		allocated += int(floor)
	}
	distribute(shares, total-allocated, func(a, b share[K]) bool { return a.index < b.index })
	out := make(map[K]int, len(shares))
	for _, s := range shares {
		out[s.key] = s.count
	}
	return out
}

// distribute hands out remainder units by descending fraction, breaking
// ties with tie.
func distribute[K comparable](shares []share[K], remainder int, tie func(a, b share[K]) bool) {
	sorted := make([]*share[K], len(shares))
	for i := range shares {
		sorted[i] = &shares[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].frac != sorted[j].frac {
			return sorted[i].frac > sorted[j].frac
		}
		return tie(*sorted[i], *sorted[j])
	})
	for i := 0; i < len(sorted) && remainder > 0; i++ {
		sorted[i].count++
		remainder--
	}
}

// Expand lays counts out linearly in order: every slot of order[0] first,
// then order[1], and so on.
func Expand[K comparable](counts map[K]int, order []K) []K {
	var out []K
	for _, k := range order {
		for n := 0; n < counts[k]; n++ {
			out = append(out, k)
		}
	}
	return out
}

// RowRoles returns the linear row-role plan for count slots.
func RowRoles(count int, weights map[ruleset.RowRole]float64) []ruleset.RowRole {
	return Expand(Apportion(count, weights, ruleset.RowRoles), ruleset.RowRoles)
}

// Rarities returns the linear rarity plan for count slots. forceLegendary
// makes every slot LEGENDARY, as Jokers require.
func Rarities(count int, weights map[ruleset.Rarity]float64, forceLegendary bool) []ruleset.Rarity {
	if forceLegendary {
		out := make([]ruleset.Rarity, count)
		for i := range out {
			out[i] = ruleset.Legendary
		}
		return out
	}
	return Expand(Apportion(count, weights, ruleset.Rarities), ruleset.Rarities)
}

// Ranks returns the ascending linear rank plan for a faction. Jokers get
// count copies of rank 0. A core faction with exactly the canonical total
// uses the canonical per-rank counts; any other count scales them by
// largest remainder with ties going to the higher rank.
func Ranks(faction ruleset.Faction, count int) ([]int, error) {
	if faction == ruleset.Jokers {
		return make([]int, count), nil
	}
	if !faction.Playable() {
		return nil, fmt.Errorf("unsupported faction for rank plan: %s", faction)
	}
	base := ruleset.BaseRankCounts()
	baseTotal := 0
	for _, n := range base {
		baseTotal += n
	}
	if count == baseTotal {
		return Expand(base, ruleset.RanksAsc), nil
	}

	shares := make([]share[int], len(ruleset.RanksAsc))
	allocated := 0
	for i, rank := range ruleset.RanksAsc {
		raw := float64(base[rank]) / float64(baseTotal) * float64(count)
		floor := math.Floor(raw)
		shares[i] = share[int]{key: rank, index: i, count: int(floor), frac: raw - floor}
		allocated += int(floor)
	}
	distribute(shares, count-allocated, func(a, b share[int]) bool { return a.key > b.key })
	counts := make(map[int]int, len(shares))
	for _, s := range shares {
		counts[s.key] = s.count
	}
	return Expand(counts, ruleset.RanksAsc), nil
}

// MaskRanks builds the concealed-rank plan for count Jokers by appending
// shuffled copies of the ascending rank list until count is reached.
func MaskRanks(count int, s *dice.Stream) []int {
	out := make([]int, 0, count+len(ruleset.RanksAsc))
	for len(out) < count {
		out = append(out, dice.Shuffle(s, ruleset.RanksAsc)...)
	}
	return out[:count]
}

// Shuffled returns a shuffled copy of a linear plan.
func Shuffled[K any](s *dice.Stream, linear []K) []K {
	return dice.Shuffle(s, linear)
}

// Counts tallies a linear plan.
func Counts[K comparable](linear []K) map[K]int {
	out := make(map[K]int)
	for _, k := range linear {
		out[k]++
	}
	return out
}
