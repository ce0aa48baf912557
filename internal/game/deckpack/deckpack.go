// Package deckpack assembles the per-faction Starter-21 and Expansion-41
// packs from a generated card set, plus the separate Joker shard pool.
package deckpack

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// ErrPoolTooSmall is returned when a core faction has fewer than MinPool cards.
var ErrPoolTooSmall = errors.New("faction card pool too small for deck packs")

// Pack names and sizes.
const (
	StarterName   = "Starter-21"
	ExpansionName = "Expansion-41"
	StarterSize   = 21
	ExpansionSize = 41
	MinPool       = ExpansionSize
)

// Notes are stamped onto every bundle.
var Notes = []string{
	"Starter and expansion packs are generated for the four core factions only.",
	"Jokers are emitted as a separate legendary shard pool because the default Joker count (16) cannot support a 41-card starter+expansion ladder.",
}

// Summary counts a pack's cards by row role, rarity and rank name.
type Summary struct {
	Count     int            `json:"count"`
	RowRoles  map[string]int `json:"rowRoles"`
	Rarities  map[string]int `json:"rarities"`
	RankNames map[string]int `json:"rankNames"`
}

// Starter is the 21-card starter pack: 6 starting plus 15 recruitables.
type Starter struct {
	Starting     []string `json:"starting"`
	Recruitables []string `json:"recruitables"`
	All          []string `json:"all"`
	Summary      Summary  `json:"summary"`
}

// Expansion is the 20 additional cards and the resulting 41-card ladder.
type Expansion struct {
	Additional       []string `json:"additional"`
	TotalWithStarter []string `json:"totalWithStarter"`
	Summary          Summary  `json:"summary"`
}

// FactionPacks holds one faction's two packs.
type FactionPacks struct {
	Starter   Starter   `json:"Starter-21"`
	Expansion Expansion `json:"Expansion-41"`
}

// Packs maps each core faction to its packs. It marshals in faction order.
type Packs map[ruleset.Faction]*FactionPacks

// MarshalJSON writes the factions in canonical order rather than key order.
func (p Packs) MarshalJSON() ([]byte, error) {
	keys := make([]ruleset.Faction, 0, len(p))
	for f := range p {
		keys = append(keys, f)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].Order() != keys[j].Order() {
			return keys[i].Order() < keys[j].Order()
		}
		return keys[i] < keys[j]
	})
	buf := []byte{'{'}
	for i, f := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(string(f))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p[f])
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// JokerPool lists every Joker id without pack assembly.
type JokerPool struct {
	Count   int      `json:"count"`
	CardIDs []string `json:"cardIds"`
}

// Bundle is the deck-pack output of a run.
type Bundle struct {
	Version   string    `json:"version"`
	Seed      dice.Seed `json:"seed"`
	Notes     []string  `json:"notes"`
	Packs     Packs     `json:"packs"`
	JokerPool JokerPool `json:"jokerPool"`
}

// Build assembles packs for every core faction, forking "pack:<F>" from s
// in faction order.
//
// Precondition: cards holds each core faction's full card set.
// Postcondition: returns ErrPoolTooSmall (wrapped) if any core faction has
// fewer than MinPool cards.
func Build(s *dice.Stream, seed dice.Seed, cards []*card.Card) (*Bundle, error) {
	byFaction := make(map[ruleset.Faction][]*card.Card)
	for _, c := range cards {
		byFaction[c.Faction] = append(byFaction[c.Faction], c)
	}

	packs := make(Packs, len(ruleset.PlayableFactions))
	for _, f := range ruleset.PlayableFactions {
		pool := append([]*card.Card(nil), byFaction[f]...)
		if len(pool) < MinPool {
			return nil, fmt.Errorf("%w: cannot build %s + %s for %s: need at least %d cards, got %d",
				ErrPoolTooSmall, StarterName, ExpansionName, f, MinPool, len(pool))
		}
		sort.SliceStable(pool, func(i, j int) bool {
			if pool[i].Rank != pool[j].Rank {
				return pool[i].Rank < pool[j].Rank
			}
			return pool[i].ID < pool[j].ID
		})
		packs[f] = buildFaction(s.Fork("pack:"+string(f)), pool)
	}

	jokers := ids(byFaction[ruleset.Jokers])
	return &Bundle{
		Version:   ruleset.Version,
		Seed:      seed,
		Notes:     append([]string(nil), Notes...),
		Packs:     packs,
		JokerPool: JokerPool{Count: len(jokers), CardIDs: jokers},
	}, nil
}

func buildFaction(s *dice.Stream, pool []*card.Card) *FactionPacks {
	locked := make(map[string]bool)
	starterPool := make([]*card.Card, 0, len(pool))
	for _, c := range pool {
		if c.Rarity != ruleset.Legendary {
			starterPool = append(starterPool, c)
		}
	}

	starting := PickBalanced(s.Fork("starter6"), starterPool, StarterProfile(), locked)
	recruits := PickBalanced(s.Fork("recruit15"), pool, RecruitProfile(), locked)
	starterAll := append(append([]*card.Card(nil), starting...), recruits...)
	additional := PickBalanced(s.Fork("exp20"), pool, ExpansionProfile(), locked)
	total := append(append([]*card.Card(nil), starterAll...), additional...)

	return &FactionPacks{
		Starter: Starter{
			Starting:     ids(starting),
			Recruitables: ids(recruits),
			All:          ids(starterAll),
			Summary:      Summarize(starterAll),
		},
		Expansion: Expansion{
			Additional:       ids(additional),
			TotalWithStarter: ids(total),
			Summary:          Summarize(total),
		},
	}
}

// score is the profile-weighted base priority of c.
func score(c *card.Card, p Profile) float64 {
	s := 0.0
	s += p.RowWeights[c.RowRole] * 100
	s += p.RarityWeights[c.Rarity] * 100
	if p.RankBias == BiasLow {
		s += float64(20-c.Rank) * 2
	} else {
		s += float64(c.Rank) * 2
	}
	s += float64(c.Stats.HP+c.Stats.Atk) * 0.1
	return s
}

// PickBalanced greedily selects up to p.Count cards from pool, skipping and
// extending locked. Candidates are shuffled once; each round takes the
// first candidate with strictly the highest priority, where unmet row and
// rarity quotas add large bonuses.
//
// Postcondition: every returned id is added to locked.
func PickBalanced(s *dice.Stream, pool []*card.Card, p Profile, locked map[string]bool) []*card.Card {
	rowTargets := make(map[ruleset.RowRole]int, len(p.RowTargets))
	for k, v := range p.RowTargets {
		rowTargets[k] = v
	}
	rarityTargets := make(map[ruleset.Rarity]int, len(p.RarityTargets))
	for k, v := range p.RarityTargets {
		rarityTargets[k] = v
	}

	available := make([]*card.Card, 0, len(pool))
	for _, c := range pool {
		if !locked[c.ID] {
			available = append(available, c)
		}
	}
	candidates := dice.Shuffle(s, available)

	selected := make([]*card.Card, 0, p.Count)
	for len(selected) < p.Count && len(candidates) > 0 {
		bestIndex := -1
		bestPriority := math.Inf(-1)
		for i, c := range candidates {
			priority := score(c, p)
			if rowTargets[c.RowRole] > 0 {
				priority += rowQuotaBonus
			}
			if rarityTargets[c.Rarity] > 0 {
				priority += rarityQuotaBonus
			}
			hasBuild := c.Abilities.BuildPhase != nil
			if p.RequireBuild && hasBuild {
				priority += requireBuildBonus
			}
			if p.PreferBuild && hasBuild {
				priority += preferBuildBonus
			}
			if p.AvoidLegendary && c.Rarity == ruleset.Legendary {
				priority -= legendaryPenalty
			}
			if p.PreferCommons && c.Rarity == ruleset.Common {
				priority += commonBonus
			}
			if priority > bestPriority {
				bestPriority = priority
				bestIndex = i
			}
		}
		best := candidates[bestIndex]
		selected = append(selected, best)
		locked[best.ID] = true
		candidates = append(candidates[:bestIndex], candidates[bestIndex+1:]...)
		if rowTargets[best.RowRole] > 0 {
			rowTargets[best.RowRole]--
		}
		if rarityTargets[best.Rarity] > 0 {
			rarityTargets[best.Rarity]--
		}
	}
	return selected
}

// Summarize counts cards by row role, rarity and rank name.
func Summarize(cards []*card.Card) Summary {
	s := Summary{
		Count:     len(cards),
		RowRoles:  make(map[string]int),
		Rarities:  make(map[string]int),
		RankNames: make(map[string]int),
	}
	for _, c := range cards {
		s.RowRoles[string(c.RowRole)]++
		s.Rarities[string(c.Rarity)]++
		s.RankNames[c.RankName]++
	}
	return s
}

func ids(cards []*card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
