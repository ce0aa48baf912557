package forge

import (
	"fmt"

	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// pairing holds the filtered candidate pools for one slot. Filtering draws
// nothing, so it happens once per slot.
type pairing struct {
	slot       Slot
	capacity   int
	minStat    int
	preferred  map[string]bool
	detonation []*ability.Ability
	affordable []*ability.Ability
	build      []*ability.Ability
}

func (a *Assembler) newPairing(slot Slot, capacity int) (*pairing, error) {
	crit := ability.Criteria{
		Faction:       slot.Faction,
		RowRole:       slot.RowRole,
		Timing:        ability.Detonation,
		Rarity:        slot.Rarity,
		MaxComplexity: ability.MaxComplexity(slot.RowRole, slot.Rarity),
	}
	dets := a.library.FilterRelaxed(crit)
	if len(dets) == 0 {
		return nil, fmt.Errorf("%w for %s %s %s", ErrNoDetonation, slot.Faction, slot.RowRole, slot.Rarity)
	}
	crit.Timing = ability.BuildPhase
	p := &pairing{
		slot:       slot,
		capacity:   capacity,
		minStat:    MinStatCost(slot.RowRole),
		preferred:  ability.PreferredTags(slot.Faction, slot.RowRole),
		detonation: dets,
		build:      a.library.FilterRelaxed(crit),
	}
	for _, d := range dets {
		if d.Cost <= capacity-p.minStat {
			p.affordable = append(p.affordable, d)
		}
	}
	if len(p.affordable) == 0 {
		p.affordable = dets
	}
	return p, nil
}

// buildChance is the probability that a slot tries for a build-phase ability.
func buildChance(faction ruleset.Faction, row ruleset.RowRole, rarity ruleset.Rarity) float64 {
	p := row.BuildPhaseChance()
	switch rarity {
	case ruleset.Common:
		p -= 0.05
	case ruleset.Rare:
		p += 0.05
	case ruleset.Epic:
		p += 0.15
	default:
		p += 0.2
	}
	if faction == ruleset.Jokers {
		p += 0.2
	}
	return max(0, min(0.95, p))
}

// pick runs up to MaxPairingAttempts draws of a detonation plus an optional
// build-phase ability, returning the first pair that leaves room for the
// row's stat floor.
func (p *pairing) pick(s *dice.Stream) (card.Abilities, bool) {
	chance := buildChance(p.slot.Faction, p.slot.RowRole, p.slot.Rarity)
	for attempt := 0; attempt < MaxPairingAttempts; attempt++ {
		det := ability.PickWeighted(s, p.affordable, p.preferred, p.slot.Faction)

		var build *ability.Ability
		if s.Chance(chance) {
			room := p.capacity - det.Cost - p.minStat
			var affordable []*ability.Ability
			for _, b := range p.build {
				if b.Cost <= room {
					affordable = append(affordable, b)
				}
			}
			build = ability.PickWeighted(s, affordable, p.preferred, p.slot.Faction)
		}

		out := card.Abilities{Detonation: det.Ref()}
		if build != nil {
			ref := build.Ref()
			out.BuildPhase = &ref
		}
		if det.Cost+costOf(build) <= p.capacity-p.minStat {
			return out, true
		}
	}
	return card.Abilities{}, false
}

func costOf(a *ability.Ability) int {
	if a == nil {
		return 0
	}
	return a.Cost
}
