// Package generator orchestrates a full card-forge run: per-faction plans,
// card assembly, ordering, validation, deck packs and the text artefacts.
// A run is a pure function of (seed, counts, content).
package generator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cardforge/internal/game/budget"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/deckpack"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/flavor"
	"github.com/cory-johannsen/cardforge/internal/game/forge"
	"github.com/cory-johannsen/cardforge/internal/game/plan"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
	"github.com/cory-johannsen/cardforge/internal/report"
)

var _ forge.Flavor = (*flavor.Builder)(nil)

// Result is the output of one run.
type Result struct {
	Seed           dice.Seed
	Version        string
	Counts         map[ruleset.Faction]int
	Cards          []*card.Card
	DeckPacks      *deckpack.Bundle
	Warnings       []string
	PromptsText    string
	ReportMarkdown string
}

// Generator runs the card forge against fixed content.
type Generator struct {
	content *Content
	ledger  *budget.Ledger
	logger  *zap.Logger
}

// New returns a Generator.
//
// Precondition: content and logger must be non-nil.
func New(content *Content, logger *zap.Logger) *Generator {
	return &Generator{content: content, ledger: budget.DefaultLedger(), logger: logger}
}

// Generate runs the forge with a no-op logger.
func Generate(seed dice.Seed, counts map[ruleset.Faction]int, content *Content) (*Result, error) {
	return New(content, zap.NewNop()).Generate(seed, counts)
}

// Generate produces the full card set, deck packs and text artefacts.
// Factions missing from counts use their default count.
//
// Postcondition: the same (seed, counts, content) always yields the same
// Result; on error nothing partial is returned.
func (g *Generator) Generate(seed dice.Seed, counts map[ruleset.Faction]int) (*Result, error) {
	start := time.Now()
	logger := g.logger.With(zap.String("run_id", uuid.NewString()), zap.String("seed", seed.String()))

	merged := ruleset.DefaultTargetCounts()
	for f, n := range counts {
		if _, ok := merged[f]; ok && n > 0 {
			merged[f] = n
		}
	}

	root := dice.NewStream(seed)
	assembler := forge.NewAssembler(root.Fork("cards"), g.content.Abilities, g.ledger, flavor.NewBuilder(g.content.Templates), logger)

	var cards []*card.Card
	for _, f := range ruleset.Factions {
		count := merged[f]
		factionStream := root.Fork("faction:" + string(f))
		slots, err := planFaction(factionStream, f, count)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			c, err := assembler.Assemble(slot)
			if err != nil {
				return nil, fmt.Errorf("assembling %s card %d: %w", f, slot.Serial, err)
			}
			cards = append(cards, c)
		}
		logger.Debug("faction assembled", zap.String("faction", string(f)), zap.Int("count", count))
	}

	SortCards(cards)
	if err := card.Validate(cards); err != nil {
		return nil, fmt.Errorf("generated cards: %w", err)
	}

	warnings := append([]string(nil), assembler.Warnings()...)
	warnings = append(warnings, softChecks(cards)...)
	for _, w := range warnings {
		logger.Warn("generation warning", zap.String("warning", w))
	}

	packs, err := deckpack.Build(root.Fork("deckpacks"), seed, cards)
	if err != nil {
		return nil, err
	}
	if err := deckpack.Validate(packs); err != nil {
		return nil, fmt.Errorf("generated deck packs: %w", err)
	}

	res := &Result{
		Seed:      seed,
		Version:   ruleset.Version,
		Counts:    merged,
		Cards:     cards,
		DeckPacks: packs,
		Warnings:  warnings,
	}
	res.PromptsText = report.Prompts(cards)
	res.ReportMarkdown = report.Markdown(report.Input{Seed: seed, Counts: merged, Cards: cards, Warnings: warnings})

	logger.Info("generation complete",
		zap.Int("cards", len(cards)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// planFaction builds the shuffled rank, row and rarity plans for a faction,
// forking "ranks:", "rows:" and "rarity:" (and "mask" for Jokers) from s in
// that order, and zips them into slots with serials 1..count.
func planFaction(s *dice.Stream, f ruleset.Faction, count int) ([]forge.Slot, error) {
	ranksLinear, err := plan.Ranks(f, count)
	if err != nil {
		return nil, err
	}
	rowsLinear := plan.RowRoles(count, ruleset.DefaultRowRoleWeights())
	raritiesLinear := plan.Rarities(count, ruleset.DefaultRarityWeights(), f == ruleset.Jokers)

	ranks := plan.Shuffled(s.Fork("ranks:"+string(f)), ranksLinear)
	rows := plan.Shuffled(s.Fork("rows:"+string(f)), rowsLinear)
	rarities := plan.Shuffled(s.Fork("rarity:"+string(f)), raritiesLinear)
	var masks []int
	if f == ruleset.Jokers {
		masks = plan.MaskRanks(count, s.Fork("mask"))
	}

	slots := make([]forge.Slot, count)
	for i := range slots {
		slots[i] = forge.Slot{
			Faction: f,
			Rank:    ranks[i],
			RowRole: rows[i],
			Rarity:  rarities[i],
			Serial:  i + 1,
		}
		if masks != nil {
			slots[i].MaskRank = masks[i]
		}
	}
	return slots, nil
}

// SortCards orders cards by faction, rank, row role and id.
func SortCards(cards []*card.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Faction.Order() != b.Faction.Order() {
			return a.Faction.Order() < b.Faction.Order()
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.RowRole.Order() != b.RowRole.Order() {
			return a.RowRole.Order() < b.RowRole.Order()
		}
		return a.ID < b.ID
	})
}

// softChecks re-verifies the budget window after assembly. Assembly already
// guarantees it, so any hit here points at a bug rather than bad content.
func softChecks(cards []*card.Card) []string {
	var out []string
	for _, c := range cards {
		if c.Costs.PowerBudgetSpent > c.Costs.BudgetCap {
			out = append(out, "Over-budget card detected unexpectedly: "+c.ID)
		}
		if c.Costs.Underspend > budget.MaxUnderspend {
			out = append(out, "High underspend (>1) detected unexpectedly: "+c.ID)
		}
		if c.Abilities.Detonation.ID == "" {
			out = append(out, "Missing detonation ability on "+c.ID)
		}
	}
	return out
}
