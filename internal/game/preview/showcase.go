// Package preview renders a terminal showcase of generated cards and plays a
// deterministic Starter-21 skirmish between two faction packs.
//
// The skirmish rules are a simplified shim for eyeballing generated content;
// they are not the game's real battle rules.
package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// defaultMaskRank stands in for a Joker with no mask rank.
const defaultMaskRank = 8

const showcaseSize = 4

// rarityScore ranks rarities COMMON=1 .. LEGENDARY=4.
func rarityScore(r ruleset.Rarity) int {
	return r.Order() + 1
}

// rankWeight is the card's rank, or its mask rank for Jokers.
func rankWeight(c *card.Card) int {
	if !c.IsJoker() {
		return c.Rank
	}
	if c.MaskRank == 0 {
		return defaultMaskRank
	}
	return c.MaskRank
}

// cardPower is the card's raw stat total.
func cardPower(c *card.Card) int {
	return c.Stats.Total()
}

func abilityMini(r *ability.Ref) string {
	if r == nil {
		return "None"
	}
	return fmt.Sprintf("%s (C%d)", r.Name, r.Cost)
}

// FormatCard renders c as a six-line text block.
func FormatCard(c *card.Card) string {
	mask := ""
	if c.IsJoker() {
		mask = fmt.Sprintf(" mask:%d", c.MaskRank)
	}
	det := c.Abilities.Detonation
	return strings.Join([]string{
		fmt.Sprintf("%s | %s", c.ID, c.Name),
		fmt.Sprintf("%s %s%s | %s | %s | %s", c.Faction, c.RankName, mask, c.RowRole, c.Rarity, c.Archetype),
		fmt.Sprintf("HP %d / ATK %d / SHD %d / CHG %d | Budget %d/%d",
			c.Stats.HP, c.Stats.Atk, c.Stats.ShieldCap, c.Stats.ChargeCap,
			c.Costs.PowerBudgetSpent, c.Costs.BudgetCap),
		"Build: " + abilityMini(c.Abilities.BuildPhase),
		"Detonate: " + abilityMini(&det),
		"Tags: " + strings.Join(c.SynergyTags, ", "),
	}, "\n")
}

// Showcase picks up to four cards from one faction's pool: the strongest
// card of each row by rarity, rank weight then power, plus the highest-power
// card overall when it is not already picked.
func Showcase(pool []*card.Card) []*card.Card {
	var picks []*card.Card
	for _, row := range ruleset.RowRoles {
		var candidates []*card.Card
		for _, c := range pool {
			if c.RowRole == row {
				candidates = append(candidates, c)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if d := rarityScore(a.Rarity) - rarityScore(b.Rarity); d != 0 {
				return d > 0
			}
			if d := rankWeight(a) - rankWeight(b); d != 0 {
				return d > 0
			}
			return cardPower(a) > cardPower(b)
		})
		picks = append(picks, candidates[0])
	}

	if len(pool) > 0 {
		ordered := append([]*card.Card(nil), pool...)
		sort.SliceStable(ordered, func(i, j int) bool {
			a, b := ordered[i], ordered[j]
			if d := cardPower(a) - cardPower(b); d != 0 {
				return d > 0
			}
			return rarityScore(a.Rarity) > rarityScore(b.Rarity)
		})
		extra := ordered[0]
		picked := false
		for _, c := range picks {
			if c.ID == extra.ID {
				picked = true
				break
			}
		}
		if !picked {
			picks = append(picks, extra)
		}
	}

	if len(picks) > showcaseSize {
		picks = picks[:showcaseSize]
	}
	return picks
}

// poolCounts summarises one faction's pool. Rarities keep first-seen order.
type poolCounts struct {
	total       int
	rows        map[ruleset.RowRole]int
	rarityOrder []ruleset.Rarity
	rarities    map[ruleset.Rarity]int
}

func countPool(pool []*card.Card) poolCounts {
	pc := poolCounts{
		total:    len(pool),
		rows:     make(map[ruleset.RowRole]int),
		rarities: make(map[ruleset.Rarity]int),
	}
	for _, c := range pool {
		pc.rows[c.RowRole]++
		if _, seen := pc.rarities[c.Rarity]; !seen {
			pc.rarityOrder = append(pc.rarityOrder, c.Rarity)
		}
		pc.rarities[c.Rarity]++
	}
	return pc
}

func factionPool(cards []*card.Card, f ruleset.Faction) []*card.Card {
	var out []*card.Card
	for _, c := range cards {
		if c.Faction == f {
			out = append(out, c)
		}
	}
	return out
}
