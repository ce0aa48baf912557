// Package ability holds the static ability library and the constrained,
// weighted selection cards draw their abilities from.
package ability

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Timing says when an ability resolves.
type Timing string

const (
	// BuildPhase abilities resolve before reveal while the card is hidden.
	BuildPhase Timing = "buildPhase"
	// Detonation abilities resolve at the combat reveal; every card has one.
	Detonation Timing = "detonation"
)

// Cost bounds for a single ability.
const (
	MinCost = 1
	MaxCost = 8
)

// Gate is the rarity threshold an ability requires.
type Gate string

// Rarity gates. The *_PLUS gates are ordinal thresholds; the *_ONLY gates
// other than LEGENDARY_ONLY match one rarity exactly.
const (
	GateNone          Gate = ""
	GateCommonPlus    Gate = "COMMON_PLUS"
	GateRarePlus      Gate = "RARE_PLUS"
	GateEpicPlus      Gate = "EPIC_PLUS"
	GateLegendaryOnly Gate = "LEGENDARY_ONLY"
	GateRareOnly      Gate = "RARE_ONLY"
	GateEpicOnly      Gate = "EPIC_ONLY"
)

var gateThreshold = map[Gate]int{
	GateNone:          0,
	GateCommonPlus:    0,
	GateRarePlus:      1,
	GateEpicPlus:      2,
	GateLegendaryOnly: 3,
	GateRareOnly:      1,
	GateEpicOnly:      2,
}

// Ability is an immutable library entry.
type Ability struct {
	ID         string            `yaml:"id" json:"id"`
	Name       string            `yaml:"name" json:"name"`
	Timing     Timing            `yaml:"timing" json:"timing"`
	Cost       int               `yaml:"cost" json:"cost"`
	Text       string            `yaml:"text" json:"text"`
	Tags       []string          `yaml:"tags" json:"tags"`
	Factions   []ruleset.Faction `yaml:"factions" json:"factions"`
	RowRoles   []ruleset.RowRole `yaml:"row_roles" json:"rowRoles"`
	RarityGate Gate              `yaml:"rarity_gate" json:"rarityGate"`
	Complexity int               `yaml:"complexity" json:"complexity"`
}

// Ref is the copy of an ability embedded into a card. It shares no memory
// with the library entry it came from.
type Ref struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Timing Timing   `json:"timing"`
	Cost   int      `json:"cost"`
	Text   string   `json:"text"`
	Tags   []string `json:"tags"`
}

// Ref returns a detached copy of a suitable for embedding into a card.
//
// Postcondition: mutating the result never affects a.
func (a *Ability) Ref() Ref {
	tags := make([]string, len(a.Tags))
	copy(tags, a.Tags)
	return Ref{ID: a.ID, Name: a.Name, Timing: a.Timing, Cost: a.Cost, Text: a.Text, Tags: tags}
}

// Validate checks the descriptor invariants of a single ability.
func (a *Ability) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("ability id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("ability %s: name must not be empty", a.ID)
	}
	if a.Timing != BuildPhase && a.Timing != Detonation {
		return fmt.Errorf("ability %s: timing must be %s or %s, got %q", a.ID, BuildPhase, Detonation, a.Timing)
	}
	if a.Cost < MinCost || a.Cost > MaxCost {
		return fmt.Errorf("ability %s: cost must be %d..%d, got %d", a.ID, MinCost, MaxCost, a.Cost)
	}
	if a.Complexity < 1 {
		return fmt.Errorf("ability %s: complexity must be >= 1, got %d", a.ID, a.Complexity)
	}
	if _, ok := gateThreshold[a.RarityGate]; !ok {
		return fmt.Errorf("ability %s: unknown rarity gate %q", a.ID, a.RarityGate)
	}
	if len(a.Factions) == 0 {
		return fmt.Errorf("ability %s: factions must not be empty", a.ID)
	}
	for _, f := range a.Factions {
		if f != ruleset.AnyFaction && !f.Valid() {
			return fmt.Errorf("ability %s: unknown faction %q", a.ID, f)
		}
	}
	if len(a.RowRoles) == 0 {
		return fmt.Errorf("ability %s: row_roles must not be empty", a.ID)
	}
	for _, r := range a.RowRoles {
		if r != ruleset.AnyRow && !r.Valid() {
			return fmt.Errorf("ability %s: unknown row role %q", a.ID, r)
		}
	}
	return nil
}

// AppliesToFaction reports whether f is listed explicitly or via the "Any" wildcard.
func (a *Ability) AppliesToFaction(f ruleset.Faction) bool {
	return slices.Contains(a.Factions, ruleset.AnyFaction) || slices.Contains(a.Factions, f)
}

// AppliesToRow reports whether r is listed explicitly or via the "ANY" wildcard.
func (a *Ability) AppliesToRow(r ruleset.RowRole) bool {
	return slices.Contains(a.RowRoles, ruleset.AnyRow) || slices.Contains(a.RowRoles, r)
}
