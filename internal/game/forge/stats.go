package forge

import (
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// stat indexes a four-stat weight or cap vector in hp, atk, shieldCap,
// chargeCap order. Draw order follows this order.
type stat int

const (
	statHP stat = iota
	statAtk
	statShield
	statCharge
	numStats
)

type statVec [numStats]float64

// MinStats returns the stat floor every card in row starts from.
func MinStats(row ruleset.RowRole) card.Stats {
	switch row {
	case ruleset.Front:
		return card.Stats{HP: 2, Atk: 1}
	case ruleset.Middle:
		return card.Stats{HP: 1, Atk: 1}
	case ruleset.Back:
		return card.Stats{HP: 1, ChargeCap: 1}
	}
	return card.Stats{}
}

// MinStatCost returns the total of MinStats(row).
func MinStatCost(row ruleset.RowRole) int {
	return MinStats(row).Total()
}

var rowBias = map[ruleset.RowRole]statVec{
	ruleset.Front:  {4.6, 3.5, 1.5, 0.7},
	ruleset.Middle: {2.8, 2.6, 2.0, 2.2},
	ruleset.Back:   {1.8, 1.5, 2.6, 3.1},
}

// hardCaps are the soft ceilings the roller respects until every stat has
// reached its cap.
func hardCaps(row ruleset.RowRole) [numStats]int {
	switch row {
	case ruleset.Front:
		return [numStats]int{14, 12, 10, 10}
	case ruleset.Middle:
		return [numStats]int{11, 10, 10, 10}
	}
	return [numStats]int{9, 8, 10, 10}
}

const minStatWeight = 0.2

// statWeights combines the row bias with the faction adjustment. Jokers draw
// four Float values of jitter, one per stat in order.
func statWeights(s *dice.Stream, faction ruleset.Faction, row ruleset.RowRole) statVec {
	w := rowBias[row]
	switch faction {
	case ruleset.Hearts:
		w[statHP] += 0.6
		w[statShield] += 0.8
		w[statCharge] -= 0.2
	case ruleset.Spades:
		w[statAtk] += 0.4
		w[statShield] += 0.7
		w[statCharge] -= 0.1
	case ruleset.Diamonds:
		w[statCharge] += 1.0
		w[statAtk] += 0.4
		w[statHP] -= 0.2
	case ruleset.Clubs:
		w[statAtk] += 0.5
		w[statCharge] += 0.5
		w[statShield] -= 0.1
	case ruleset.Jokers:
		for i := range w {
			w[i] += s.Float()*1.5 - 0.5
		}
	}
	for i := range w {
		if w[i] < minStatWeight {
			w[i] = minStatWeight
		}
	}
	return w
}

// RollStats distributes exactly total points over the four stats, starting
// from the row floor and adding one point at a time to a stat drawn by
// weight. Stats at their hard cap are skipped until every stat is capped,
// after which caps are ignored so the whole total is always spent.
//
// Postcondition: ok is false (and nothing is drawn) when total is below the
// row floor; otherwise result.Total() == total.
func RollStats(s *dice.Stream, faction ruleset.Faction, row ruleset.RowRole, effectiveRank, total int) (result card.Stats, ok bool) {
	floor := MinStats(row)
	if total < floor.Total() {
		return card.Stats{}, false
	}
	vals := [numStats]int{floor.HP, floor.Atk, floor.ShieldCap, floor.ChargeCap}
	remaining := total - floor.Total()

	w := statWeights(s, faction, row)
	if effectiveRank >= 11 {
		if row != ruleset.Back {
			w[statAtk] += 0.3
		}
		w[statHP] += 0.2
	}
	caps := hardCaps(row)

	entries := make([]dice.Weighted[stat], 0, numStats)
	for ; remaining > 0; remaining-- {
		entries = entries[:0]
		for i := stat(0); i < numStats; i++ {
			if vals[i] < caps[i] {
				entries = append(entries, dice.Weighted[stat]{Value: i, Weight: w[i]})
			}
		}
		if len(entries) == 0 {
			for i := stat(0); i < numStats; i++ {
				entries = append(entries, dice.Weighted[stat]{Value: i, Weight: w[i]})
			}
		}
		vals[dice.WeightedPick(s, entries)]++
	}
	return card.Stats{HP: vals[statHP], Atk: vals[statAtk], ShieldCap: vals[statShield], ChargeCap: vals[statCharge]}, true
}
