package preview

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/deckpack"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Text renders the showcase for both factions followed by a skirmish
// transcript and its result.
//
// Precondition: opts.Left and opts.Right must be playable factions.
func Text(cards []*card.Card, bundle *deckpack.Bundle, opts Options) (string, error) {
	for _, f := range []ruleset.Faction{opts.Left, opts.Right} {
		if !f.Playable() {
			return "", fmt.Errorf("preview: %q is not a core faction", f)
		}
	}
	res, err := Skirmish(cards, bundle, opts)
	if err != nil {
		return "", err
	}

	lines := []string{
		"Deck Realms Card Forge Preview (Prototype)",
		"This is a terminal showcase + simplified auto-battle using generated packs.",
		"Battle rules here are a preview shim, not final gameplay rules.",
		"",
	}

	for _, f := range []ruleset.Faction{opts.Left, opts.Right} {
		pool := factionPool(cards, f)
		pc := countPool(pool)
		lines = append(lines, fmt.Sprintf("%s pool: %d cards | Rows F/M/B %d/%d/%d",
			f, pc.total, pc.rows[ruleset.Front], pc.rows[ruleset.Middle], pc.rows[ruleset.Back]))
		rarities := make([]string, 0, len(pc.rarityOrder))
		for _, r := range pc.rarityOrder {
			rarities = append(rarities, fmt.Sprintf("%s:%d", r, pc.rarities[r]))
		}
		lines = append(lines, "Rarity: "+strings.Join(rarities, " "))
		for _, c := range Showcase(pool) {
			lines = append(lines, "", FormatCard(c))
		}
		lines = append(lines, "")
	}

	o := res.Options
	lines = append(lines, fmt.Sprintf("Skirmish Demo: %s vs %s (seed %s, turns %d)", o.Left, o.Right, o.Seed, o.Turns), "")
	lines = append(lines, res.Logs...)
	lines = append(lines,
		"",
		"Result",
		"Winner: "+res.Winner,
		fmt.Sprintf("Nexus: %s %d | %s %d", res.Left.Faction, res.Left.Nexus, res.Right.Faction, res.Right.Nexus),
		fmt.Sprintf("KO: %s %d | %s %d", res.Left.Faction, res.Left.KOs, res.Right.Faction, res.Right.KOs),
		fmt.Sprintf("Score: %s %d | %s %d", res.Left.Faction, res.Left.Score, res.Right.Faction, res.Right.Score),
	)
	return strings.Join(lines, "\n"), nil
}
