// Package forge assembles individual cards: it pairs abilities, rolls stats
// inside the power budget, retries within fixed ceilings, and falls back to
// a minimal card when the retries run out.
package forge

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/budget"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// ErrNoDetonation is returned when the ability library has no detonation
// for a required faction/row/rarity combination.
var ErrNoDetonation = errors.New("no detonation abilities available")

// Attempt ceilings.
const (
	MaxPairingAttempts = 80
	MaxCardAttempts    = 140
	maxSynergyTags     = 8
	hintFillLimit      = 6
)

// Flavor supplies the descriptive text of a card. Implementations may keep
// per-run state (for example a used-name set).
type Flavor interface {
	// Name draws a display name for a card of faction.
	Name(s *dice.Stream, faction ruleset.Faction, rankName string) string
	// Lore draws a short lore paragraph for c. c.Name and c.SynergyTags are set.
	Lore(s *dice.Stream, c *card.Card) string
	// ArtPrompt describes c for an image generator without drawing.
	ArtPrompt(c *card.Card) string
}

// Slot is one planned card position.
type Slot struct {
	Faction  ruleset.Faction
	Rank     int
	MaskRank int
	RowRole  ruleset.RowRole
	Rarity   ruleset.Rarity
	Serial   int
}

// Assembler builds cards from planned slots. It owns the stream it is given
// and is not safe for concurrent use.
type Assembler struct {
	stream   *dice.Stream
	library  *ability.Library
	ledger   *budget.Ledger
	flavor   Flavor
	logger   *zap.Logger
	warnings []string
}

// NewAssembler returns an Assembler drawing from stream.
//
// Precondition: every argument must be non-nil.
func NewAssembler(stream *dice.Stream, library *ability.Library, ledger *budget.Ledger, flavor Flavor, logger *zap.Logger) *Assembler {
	return &Assembler{
		stream:  stream,
		library: library,
		ledger:  ledger,
		flavor:  flavor,
		logger:  logger,
	}
}

// Warnings returns the non-fatal warnings recorded so far, in order.
func (a *Assembler) Warnings() []string {
	return a.warnings
}

// Assemble builds the card for slot.
//
// Postcondition: returns a card whose costs fit the budget window, or an
// error wrapping budget.ErrUnknownRank or ErrNoDetonation.
func (a *Assembler) Assemble(slot Slot) (*card.Card, error) {
	capacity, err := a.ledger.Cap(slot.Rank, slot.MaskRank)
	if err != nil {
		return nil, err
	}
	effectiveRank := slot.Rank
	rankName := ruleset.RankName(slot.Rank)
	if slot.Rank == ruleset.JokerRank {
		effectiveRank = slot.MaskRank
	}
	id, err := card.NewID(slot.Faction, slot.Rank, slot.RowRole, slot.Serial)
	if err != nil {
		return nil, err
	}
	archetype := a.archetype(slot.Faction, slot.RowRole)

	p, err := a.newPairing(slot, capacity)
	if err != nil {
		return nil, err
	}
	minStat := MinStatCost(slot.RowRole)

	for attempt := 0; attempt < MaxCardAttempts; attempt++ {
		abilities, ok := p.pick(a.stream)
		if !ok {
			continue
		}
		abilityCost := budget.AbilityCost(abilities)
		if abilityCost > capacity-minStat {
			continue
		}

		targets := [2]int{1, 0}
		if a.stream.Chance(0.5) {
			targets = [2]int{0, 1}
		}
		for _, under := range targets {
			stats, ok := RollStats(a.stream, slot.Faction, slot.RowRole, effectiveRank, capacity-abilityCost-under)
			if !ok {
				continue
			}
			costs, err := a.ledger.Summarize(slot.Rank, slot.MaskRank, stats, abilities)
			if err != nil {
				return nil, err
			}
			if !budget.Fits(costs) {
				continue
			}
			c := &card.Card{
				ID:        id,
				Faction:   slot.Faction,
				Rank:      slot.Rank,
				RankName:  rankName,
				RowRole:   slot.RowRole,
				Archetype: archetype,
				Rarity:    slot.Rarity,
				Stats:     stats,
				Abilities: abilities,
				Costs:     costs,
				Version:   ruleset.Version,
			}
			if slot.Rank == ruleset.JokerRank {
				c.MaskRank = slot.MaskRank
			}
			c.Name = a.flavor.Name(a.stream, slot.Faction, rankName)
			c.SynergyTags = SynergyTags(c)
			c.Lore = a.flavor.Lore(a.stream, c)
			c.ArtPrompt = a.flavor.ArtPrompt(c)
			return c, nil
		}
	}
	return a.fallback(slot, id, archetype, rankName, capacity, effectiveRank)
}

func (a *Assembler) archetype(faction ruleset.Faction, row ruleset.RowRole) string {
	pool := faction.Archetypes(row)
	if len(pool) == 0 {
		return fmt.Sprintf("%s %s Operative", faction, row)
	}
	return dice.Pick(a.stream, pool)
}

// fallbackDetonation is the fixed ability a fallback card carries.
func fallbackDetonation() ability.Ref {
	return ability.Ref{
		ID:     "FALLBACK-DET",
		Name:   "Fallback Strike",
		Timing: ability.Detonation,
		Cost:   1,
		Text:   "Emergency fallback detonation.",
		Tags:   []string{"pressure"},
	}
}

func (a *Assembler) fallback(slot Slot, id, archetype, rankName string, capacity, effectiveRank int) (*card.Card, error) {
	abilities := card.Abilities{Detonation: fallbackDetonation()}
	stats, ok := RollStats(a.stream, slot.Faction, slot.RowRole, effectiveRank, capacity-1)
	if !ok {
		stats = MinStats(slot.RowRole)
	}
	costs, err := a.ledger.Summarize(slot.Rank, slot.MaskRank, stats, abilities)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Fallback card assembly used for %s %s %s rank %s", slot.Faction, slot.RowRole, slot.Rarity, rankName)
	a.warnings = append(a.warnings, msg)
	a.logger.Warn("fallback card assembled",
		zap.String("card_id", id),
		zap.String("faction", string(slot.Faction)),
		zap.String("row_role", string(slot.RowRole)),
		zap.String("rarity", string(slot.Rarity)),
		zap.Int("budget_cap", capacity),
	)

	c := &card.Card{
		ID:          id,
		Faction:     slot.Faction,
		Rank:        slot.Rank,
		RankName:    rankName,
		RowRole:     slot.RowRole,
		Archetype:   archetype,
		Rarity:      slot.Rarity,
		Stats:       stats,
		Abilities:   abilities,
		SynergyTags: []string{strings.ToLower(string(slot.RowRole)), "pressure"},
		Costs:       costs,
		Version:     ruleset.Version,
	}
	if slot.Rank == ruleset.JokerRank {
		c.MaskRank = slot.MaskRank
	}
	c.Name = a.flavor.Name(a.stream, slot.Faction, rankName)
	c.Lore = a.flavor.Lore(a.stream, c)
	c.ArtPrompt = a.flavor.ArtPrompt(c)
	return c, nil
}

// SynergyTags derives a card's tags: detonation tags, build tags, faction
// hints while fewer than six tags are held, the lowercase row, "engine"
// when a build ability is present and "legendary" for LEGENDARY cards.
// Duplicates are dropped and the result holds at most eight tags.
func SynergyTags(c *card.Card) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0, maxSynergyTags+4)
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	for _, t := range c.Abilities.Detonation.Tags {
		add(t)
	}
	if c.Abilities.BuildPhase != nil {
		for _, t := range c.Abilities.BuildPhase.Tags {
			add(t)
		}
	}
	for _, t := range c.Faction.SynergyHints() {
		if len(tags) >= hintFillLimit {
			break
		}
		add(t)
	}
	add(strings.ToLower(string(c.RowRole)))
	if c.Abilities.BuildPhase != nil {
		add("engine")
	}
	if c.Rarity == ruleset.Legendary {
		add("legendary")
	}
	if len(tags) > maxSynergyTags {
		tags = tags[:maxSynergyTags]
	}
	return tags
}
