package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// ErrInvalid is returned (wrapped) when a card set fails structural validation.
var ErrInvalid = errors.New("card set failed validation")

// maxReported bounds how many violations are echoed in the error message.
const maxReported = 20

// Validate checks every structural invariant of a generated card set:
// required fields, enum membership, non-negative stats, ability timings and
// cost range, the budget window, id uniqueness, and the Joker invariants.
//
// Postcondition: returns nil, or an error wrapping ErrInvalid that lists up
// to 20 violations.
func Validate(cards []*Card) error {
	errs := Violations(cards)
	if len(errs) == 0 {
		return nil
	}
	total := len(errs)
	if total > maxReported {
		errs = errs[:maxReported]
	}
	return fmt.Errorf("%w (%d violations):\n%s", ErrInvalid, total, strings.Join(errs, "\n"))
}

// Violations returns every violation Validate would report, in card order.
func Violations(cards []*Card) []string {
	var errs []string
	seen := make(map[string]bool, len(cards))
	for i, c := range cards {
		p := fmt.Sprintf("cards[%d]", i)
		if c == nil {
			errs = append(errs, p+" must not be nil")
			continue
		}
		errs = append(errs, validateCard(p, c)...)
		if seen[c.ID] {
			errs = append(errs, fmt.Sprintf("%s.id %q must be unique", p, c.ID))
		}
		seen[c.ID] = true
	}
	return errs
}

func validateCard(p string, c *Card) []string {
	var errs []string
	if c.ID == "" {
		errs = append(errs, p+".id must not be empty")
	}
	if c.Name == "" {
		errs = append(errs, p+".name must not be empty")
	}
	if !c.Faction.Valid() {
		errs = append(errs, fmt.Sprintf("%s.faction %q invalid", p, c.Faction))
	}
	if c.Rank < 0 || c.Rank > ruleset.MaxRank || c.Rank == 1 {
		errs = append(errs, fmt.Sprintf("%s.rank must be 0 or 2..14, got %d", p, c.Rank))
	}
	if c.RankName == "" {
		errs = append(errs, p+".rankName must not be empty")
	}
	if !c.RowRole.Valid() {
		errs = append(errs, fmt.Sprintf("%s.rowRole %q invalid", p, c.RowRole))
	}
	if !c.Rarity.Valid() {
		errs = append(errs, fmt.Sprintf("%s.rarity %q invalid", p, c.Rarity))
	}
	if c.Stats.HP < 0 || c.Stats.Atk < 0 || c.Stats.ShieldCap < 0 || c.Stats.ChargeCap < 0 {
		errs = append(errs, p+".stats must all be >= 0")
	}

	errs = append(errs, validateRef(p+".abilities.detonation", c.Abilities.Detonation, ability.Detonation)...)
	if c.Abilities.BuildPhase != nil {
		errs = append(errs, validateRef(p+".abilities.buildPhase", *c.Abilities.BuildPhase, ability.BuildPhase)...)
	}
	if c.SynergyTags == nil {
		errs = append(errs, p+".synergyTags must be present")
	}

	if c.Costs.Underspend < 0 || c.Costs.Underspend > 1 {
		errs = append(errs, fmt.Sprintf("%s.costs.underspend must be 0 or 1, got %d", p, c.Costs.Underspend))
	}
	if c.Costs.PowerBudgetSpent != c.Costs.BaseStatCost+c.Costs.AbilityCostTotal {
		errs = append(errs, p+".costs.powerBudgetSpent must equal baseStatCost+abilityCostTotal")
	}
	if c.Costs.BaseStatCost != c.Stats.Total() {
		errs = append(errs, p+".costs.baseStatCost must equal the stat total")
	}

	if c.Faction == ruleset.Jokers {
		if c.Rank != ruleset.JokerRank {
			errs = append(errs, p+".rank must be 0 for Jokers")
		}
		if c.RankName != "JOKER" {
			errs = append(errs, p+".rankName must be JOKER for Jokers")
		}
		if c.Rarity != ruleset.Legendary {
			errs = append(errs, p+".rarity must be LEGENDARY for Jokers")
		}
		if c.MaskRank < ruleset.MinRank || c.MaskRank > ruleset.MaxRank {
			errs = append(errs, fmt.Sprintf("%s.maskRank must be 2..14 for Jokers, got %d", p, c.MaskRank))
		}
	} else if c.MaskRank != 0 {
		errs = append(errs, p+".maskRank is only allowed on Jokers")
	}
	return errs
}

func validateRef(p string, r ability.Ref, want ability.Timing) []string {
	var errs []string
	if r.ID == "" {
		errs = append(errs, p+".id must not be empty")
	}
	if r.Name == "" {
		errs = append(errs, p+".name must not be empty")
	}
	if r.Timing != want {
		errs = append(errs, fmt.Sprintf("%s.timing must be %s, got %q", p, want, r.Timing))
	}
	if r.Cost < ability.MinCost || r.Cost > ability.MaxCost {
		errs = append(errs, fmt.Sprintf("%s.cost must be %d..%d, got %d", p, ability.MinCost, ability.MaxCost, r.Cost))
	}
	if r.Tags == nil {
		errs = append(errs, p+".tags must be present")
	}
	return errs
}
