package forge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cardforge/content"
	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/budget"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/forge"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// stubFlavor returns fixed text and never draws.
type stubFlavor struct{}

func (stubFlavor) Name(_ *dice.Stream, f ruleset.Faction, rankName string) string {
	return string(f) + " " + rankName
}

func (stubFlavor) Lore(_ *dice.Stream, c *card.Card) string { return "lore of " + c.Name }

func (stubFlavor) ArtPrompt(c *card.Card) string { return "prompt for " + c.ID }

func embeddedLibrary(t testing.TB) *ability.Library {
	t.Helper()
	data, err := content.FS.ReadFile(content.AbilitiesFile)
	require.NoError(t, err)
	lib, err := ability.LoadBytes(data, "yaml")
	require.NoError(t, err)
	return lib
}

func newAssembler(seed int64, lib *ability.Library) *forge.Assembler {
	return forge.NewAssembler(dice.NewStream(dice.NumericSeed(seed)), lib, budget.DefaultLedger(), stubFlavor{}, zap.NewNop())
}

func TestMinStats(t *testing.T) {
	assert.Equal(t, 3, forge.MinStatCost(ruleset.Front))
	assert.Equal(t, 2, forge.MinStatCost(ruleset.Middle))
	assert.Equal(t, 2, forge.MinStatCost(ruleset.Back))
	assert.Equal(t, card.Stats{HP: 1, ChargeCap: 1}, forge.MinStats(ruleset.Back))
}

func TestRollStats_BelowFloorDrawsNothing(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(5))
	_, ok := forge.RollStats(s, ruleset.Jokers, ruleset.Front, 14, 2)
	assert.False(t, ok)
	assert.Equal(t, dice.NewStream(dice.NumericSeed(5)).Float(), s.Float())
}

func TestRollStats_ExactFloor(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(5))
	stats, ok := forge.RollStats(s, ruleset.Hearts, ruleset.Middle, 2, 2)
	require.True(t, ok)
	assert.Equal(t, forge.MinStats(ruleset.Middle), stats)
}

func TestRollStats_SpendsPastHardCaps(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(11))
	stats, ok := forge.RollStats(s, ruleset.Spades, ruleset.Front, 14, 60)
	require.True(t, ok)
	assert.Equal(t, 60, stats.Total())
}

func TestProperty_RollStats_SpendsExactTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		faction := rapid.SampledFrom(ruleset.Factions).Draw(rt, "faction")
		row := rapid.SampledFrom(ruleset.RowRoles).Draw(rt, "row")
		rank := rapid.IntRange(ruleset.MinRank, ruleset.MaxRank).Draw(rt, "rank")
		floor := forge.MinStats(row)
		total := rapid.IntRange(floor.Total(), 30).Draw(rt, "total")
		s := dice.NewStream(dice.NumericSeed(rapid.Int64().Draw(rt, "seed")))

		stats, ok := forge.RollStats(s, faction, row, rank, total)
		if !ok {
			rt.Fatalf("RollStats refused total %d for %s", total, row)
		}
		if stats.Total() != total {
			rt.Fatalf("total %d, want %d", stats.Total(), total)
		}
		if stats.HP < floor.HP || stats.Atk < floor.Atk || stats.ShieldCap < floor.ShieldCap || stats.ChargeCap < floor.ChargeCap {
			rt.Fatalf("stats %+v below floor %+v", stats, floor)
		}
	})
}

func TestSynergyTags(t *testing.T) {
	c := &card.Card{
		Faction: ruleset.Hearts,
		RowRole: ruleset.Front,
		Rarity:  ruleset.Legendary,
		Abilities: card.Abilities{
			Detonation: ability.Ref{Tags: []string{"pressure", "ritual"}},
			BuildPhase: &ability.Ref{Tags: []string{"shield"}},
		},
	}
	assert.Equal(t, []string{"pressure", "ritual", "shield", "loyalty", "formation", "bloodline", "front", "engine"}, forge.SynergyTags(c))

	c.Abilities.BuildPhase = nil
	c.Rarity = ruleset.Common
	c.Abilities.Detonation.Tags = []string{"pressure"}
	assert.Equal(t, []string{"pressure", "ritual", "shield", "loyalty", "formation", "bloodline", "front"}, forge.SynergyTags(c))

	c.Faction = ruleset.Jokers
	c.Rarity = ruleset.Legendary
	c.RowRole = ruleset.Back
	c.Abilities.Detonation.Tags = []string{"chaos", "chaos"}
	assert.Equal(t, []string{"chaos", "distortion", "betrayal", "shard", "madness", "back", "legendary"}, forge.SynergyTags(c))
}

func TestAssemble_FitsBudget(t *testing.T) {
	lib := embeddedLibrary(t)
	a := newAssembler(1337, lib)
	serial := 0
	for _, f := range ruleset.PlayableFactions {
		for _, row := range ruleset.RowRoles {
			for _, rarity := range ruleset.Rarities {
				for _, rank := range []int{2, 7, 11, 14} {
					serial++
					c, err := a.Assemble(forge.Slot{Faction: f, Rank: rank, RowRole: row, Rarity: rarity, Serial: serial})
					require.NoError(t, err)
					assert.True(t, budget.Fits(c.Costs), "%s costs %+v", c.ID, c.Costs)
					assert.Equal(t, c.Costs.BaseStatCost, c.Stats.Total())
					assert.NotEmpty(t, c.Abilities.Detonation.ID)
					assert.Equal(t, ruleset.Version, c.Version)
					assert.Equal(t, string(f)+" "+ruleset.RankName(rank), c.Name)
					assert.Contains(t, f.Archetypes(row), c.Archetype)
					assert.Zero(t, c.MaskRank)
				}
			}
		}
	}
	assert.Empty(t, a.Warnings())
}

func TestAssemble_Joker(t *testing.T) {
	a := newAssembler(3, embeddedLibrary(t))
	c, err := a.Assemble(forge.Slot{Faction: ruleset.Jokers, Rank: 0, MaskRank: 13, RowRole: ruleset.Back, Rarity: ruleset.Legendary, Serial: 4})
	require.NoError(t, err)
	assert.Equal(t, "JKR-00-BACK-004", c.ID)
	assert.Equal(t, "JOKER", c.RankName)
	assert.Equal(t, 13, c.MaskRank)
	assert.Equal(t, 20, c.Costs.BudgetCap)
	assert.True(t, budget.Fits(c.Costs))
	assert.Contains(t, c.SynergyTags, "legendary")
}

func TestAssemble_Deterministic(t *testing.T) {
	lib := embeddedLibrary(t)
	slot := forge.Slot{Faction: ruleset.Diamonds, Rank: 12, RowRole: ruleset.Middle, Rarity: ruleset.Epic, Serial: 9}
	first, err := newAssembler(77, lib).Assemble(slot)
	require.NoError(t, err)
	second, err := newAssembler(77, lib).Assemble(slot)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssemble_NoDetonation(t *testing.T) {
	lib, err := ability.LoadBytes([]byte(`
- id: SPD-ONLY
  name: Spades Only
  timing: detonation
  cost: 1
  text: x
  tags: [pressure]
  factions: [Spades]
  row_roles: [ANY]
  complexity: 1
`), "yaml")
	require.NoError(t, err)
	_, err = newAssembler(1, lib).Assemble(forge.Slot{Faction: ruleset.Hearts, Rank: 5, RowRole: ruleset.Front, Rarity: ruleset.Common, Serial: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, forge.ErrNoDetonation))
	assert.Contains(t, err.Error(), "Hearts FRONT COMMON")
}

func TestAssemble_UnknownRank(t *testing.T) {
	_, err := newAssembler(1, embeddedLibrary(t)).Assemble(forge.Slot{Faction: ruleset.Hearts, Rank: 1, RowRole: ruleset.Front, Rarity: ruleset.Common, Serial: 1})
	assert.True(t, errors.Is(err, budget.ErrUnknownRank))
}

func TestAssemble_FallsBackWhenNothingFits(t *testing.T) {
	lib, err := ability.LoadBytes([]byte(`
- id: ANY-HEAVY
  name: Heavy Blow
  timing: detonation
  cost: 8
  text: x
  tags: [pressure]
  factions: [Any]
  row_roles: [ANY]
  complexity: 1
`), "yaml")
	require.NoError(t, err)
	a := newAssembler(2, lib)
	c, err := a.Assemble(forge.Slot{Faction: ruleset.Hearts, Rank: 2, RowRole: ruleset.Front, Rarity: ruleset.Common, Serial: 3})
	require.NoError(t, err)

	assert.Equal(t, "FALLBACK-DET", c.Abilities.Detonation.ID)
	assert.Nil(t, c.Abilities.BuildPhase)
	assert.Equal(t, 5, c.Stats.Total())
	assert.Equal(t, card.Costs{BudgetCap: 6, BaseStatCost: 5, AbilityCostTotal: 1, PowerBudgetSpent: 6}, c.Costs)
	assert.Equal(t, []string{"front", "pressure"}, c.SynergyTags)
	assert.Equal(t, "lore of Hearts 2", c.Lore)
	assert.Equal(t, []string{"Fallback card assembly used for Hearts FRONT COMMON rank 2"}, a.Warnings())
}
