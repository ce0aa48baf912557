// Package card defines the generated card record and its structural checks.
package card

import (
	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Stats are the four budgeted combat stats.
//
// Invariant: every field is >= 0 on a generated card.
type Stats struct {
	HP        int `json:"hp"`
	Atk       int `json:"atk"`
	ShieldCap int `json:"shieldCap"`
	ChargeCap int `json:"chargeCap"`
}

// Total returns the stat cost hp+atk+shieldCap+chargeCap.
func (s Stats) Total() int {
	return s.HP + s.Atk + s.ShieldCap + s.ChargeCap
}

// Abilities holds the card's embedded ability copies.
// BuildPhase is nil when the card has no build-phase ability.
type Abilities struct {
	BuildPhase *ability.Ref `json:"buildPhase"`
	Detonation ability.Ref  `json:"detonation"`
}

// Costs is the budget summary of a card.
//
// Invariant: PowerBudgetSpent == BaseStatCost + AbilityCostTotal and
// Underspend == BudgetCap - PowerBudgetSpent.
type Costs struct {
	BudgetCap        int `json:"budgetCap"`
	BaseStatCost     int `json:"baseStatCost"`
	AbilityCostTotal int `json:"abilityCostTotal"`
	PowerBudgetSpent int `json:"powerBudgetSpent"`
	Underspend       int `json:"underspend"`
}

// Card is one generated trading card.
type Card struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Faction     ruleset.Faction `json:"faction"`
	Rank        int             `json:"rank"`
	RankName    string          `json:"rankName"`
	RowRole     ruleset.RowRole `json:"rowRole"`
	Archetype   string          `json:"archetype"`
	Rarity      ruleset.Rarity  `json:"rarity"`
	Stats       Stats           `json:"stats"`
	Abilities   Abilities       `json:"abilities"`
	SynergyTags []string        `json:"synergyTags"`
	Lore        string          `json:"lore"`
	ArtPrompt   string          `json:"artPrompt"`
	Costs       Costs           `json:"costs"`
	Version     string          `json:"version"`
	// MaskRank is set on Jokers only.
	MaskRank int `json:"maskRank,omitempty"`
}

// IsJoker reports whether c is a Joker card.
func (c *Card) IsJoker() bool {
	return c.Rank == ruleset.JokerRank
}

// EffectiveRank is the rank used for budget lookups: MaskRank for Jokers,
// Rank otherwise.
func (c *Card) EffectiveRank() int {
	if c.IsJoker() {
		return c.MaskRank
	}
	return c.Rank
}

// Index maps card ids to cards.
func Index(cards []*Card) map[string]*Card {
	out := make(map[string]*Card, len(cards))
	for _, c := range cards {
		out[c.ID] = c
	}
	return out
}
