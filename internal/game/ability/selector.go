package ability

import (
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Criteria restricts which abilities a card slot may draw.
type Criteria struct {
	Faction ruleset.Faction
	RowRole ruleset.RowRole
	Timing  Timing
	Rarity  ruleset.Rarity
	// MaxComplexity bounds complexity when > 0; 0 means unbounded.
	MaxComplexity int
}

// GateAllows reports whether a card of rarity may carry an ability gated by gate.
func GateAllows(rarity ruleset.Rarity, gate Gate) bool {
	switch gate {
	case GateNone:
		return true
	case GateRareOnly:
		return rarity == ruleset.Rare
	case GateEpicOnly:
		return rarity == ruleset.Epic
	}
	return rarity.Order() >= gateThreshold[gate]
}

// Filter returns the abilities matching c, in library order.
func (l *Library) Filter(c Criteria) []*Ability {
	var out []*Ability
	for _, a := range l.abilities {
		if a.Timing != c.Timing {
			continue
		}
		if !a.AppliesToFaction(c.Faction) || !a.AppliesToRow(c.RowRole) {
			continue
		}
		if !GateAllows(c.Rarity, a.RarityGate) {
			continue
		}
		if c.MaxComplexity > 0 && a.Complexity > c.MaxComplexity {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterRelaxed filters with c and, when the complexity bound leaves nothing,
// retries once without it.
func (l *Library) FilterRelaxed(c Criteria) []*Ability {
	out := l.Filter(c)
	if len(out) == 0 && c.MaxComplexity > 0 {
		c.MaxComplexity = 0
		out = l.Filter(c)
	}
	return out
}

// MaxComplexity is the complexity ceiling for a row/rarity slot. Simple
// front-liners get simple abilities; the back row may carry anything.
func MaxComplexity(row ruleset.RowRole, rarity ruleset.Rarity) int {
	switch row {
	case ruleset.Front:
		if rarity == ruleset.Common {
			return 1
		}
		return 2
	case ruleset.Middle:
		if rarity == ruleset.Common {
			return 2
		}
		return 3
	}
	return 3
}

// PreferredTags returns the faction synergy hints plus the row's favoured tags.
func PreferredTags(faction ruleset.Faction, row ruleset.RowRole) map[string]bool {
	tags := make(map[string]bool)
	for _, t := range faction.SynergyHints() {
		tags[t] = true
	}
	var extra []string
	switch row {
	case ruleset.Front:
		extra = []string{"breach", "pressure"}
	case ruleset.Middle:
		extra = []string{"formation", "counter"}
	case ruleset.Back:
		extra = []string{"charge", "info", "ranged"}
	}
	for _, t := range extra {
		tags[t] = true
	}
	return tags
}

// Weight scores a candidate: base 1, +2 for an explicit faction match,
// +0.1 for a wildcard row, +0.75 per preferred tag, +0.1 per complexity
// point below 3.
//
// Postcondition: the result is >= 1.
func Weight(a *Ability, preferred map[string]bool, faction ruleset.Faction) float64 {
	w := 1.0
	for _, f := range a.Factions {
		if f == faction {
			w += 2
			break
		}
	}
	for _, r := range a.RowRoles {
		if r == ruleset.AnyRow {
			w += 0.1
			break
		}
	}
	overlap := 0
	for _, t := range a.Tags {
		if preferred[t] {
			overlap++
		}
	}
	w += float64(overlap) * 0.75
	w += float64(max(0, 3-a.Complexity)) * 0.1
	return w
}

// PickWeighted draws one candidate proportionally to Weight, or returns nil
// without drawing when candidates is empty.
func PickWeighted(s *dice.Stream, candidates []*Ability, preferred map[string]bool, faction ruleset.Faction) *Ability {
	if len(candidates) == 0 {
		return nil
	}
	entries := make([]dice.Weighted[*Ability], len(candidates))
	for i, a := range candidates {
		entries[i] = dice.Weighted[*Ability]{Value: a, Weight: Weight(a, preferred, faction)}
	}
	return dice.WeightedPick(s, entries)
}
