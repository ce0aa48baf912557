package budget_test

import (
	"errors"
	"testing"

	"github.com/cory-johannsen/cardforge/internal/game/ability"
	"github.com/cory-johannsen/cardforge/internal/game/budget"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func abilities(build, det int) card.Abilities {
	a := card.Abilities{Detonation: ability.Ref{Cost: det}}
	if build > 0 {
		a.BuildPhase = &ability.Ref{Cost: build}
	}
	return a
}

func TestLedger_CanonCaps(t *testing.T) {
	l := budget.DefaultLedger()
	for rank, want := range map[int]int{2: 6, 10: 14, 11: 16, 14: 22} {
		got, err := l.Cap(rank, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got, "rank %d", rank)
	}
	joker, err := l.Cap(0, 13)
	require.NoError(t, err)
	assert.Equal(t, 20, joker, "Jokers use the mask rank's cap")
}

func TestLedger_UnknownRank(t *testing.T) {
	_, err := budget.DefaultLedger().Cap(15, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, budget.ErrUnknownRank))

	_, err = budget.DefaultLedger().Cap(0, 0)
	assert.True(t, errors.Is(err, budget.ErrUnknownRank), "Joker without mask rank")
}

func TestNewLedger_RejectsNonMonotonic(t *testing.T) {
	_, err := budget.NewLedger(map[int]int{2: 6, 3: 6})
	assert.Error(t, err)
	_, err = budget.NewLedger(nil)
	assert.Error(t, err)
	l, err := budget.NewLedger(map[int]int{2: 3, 14: 30})
	require.NoError(t, err)
	c, err := l.Cap(14, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, c)
}

func TestCostCalculators(t *testing.T) {
	stats := card.Stats{HP: 4, Atk: 3, ShieldCap: 2, ChargeCap: 1}
	ab := abilities(2, 3)
	assert.Equal(t, 10, budget.StatCost(stats))
	assert.Equal(t, 5, budget.AbilityCost(ab))

	costs, err := budget.DefaultLedger().Summarize(10, 0, stats, ab)
	require.NoError(t, err)
	assert.Equal(t, card.Costs{
		BudgetCap:        14,
		BaseStatCost:     10,
		AbilityCostTotal: 5,
		PowerBudgetSpent: 15,
		Underspend:       -1,
	}, costs)
	assert.False(t, budget.Fits(costs))
}

func TestFits_Window(t *testing.T) {
	l := budget.DefaultLedger()

	valid, err := l.Summarize(8, 0, card.Stats{HP: 4, Atk: 3, ShieldCap: 2}, abilities(0, 2))
	require.NoError(t, err)
	assert.Equal(t, 12, valid.BudgetCap)
	assert.Equal(t, 11, valid.PowerBudgetSpent)
	assert.Equal(t, 1, valid.Underspend)
	assert.True(t, budget.Fits(valid))

	over, err := l.Summarize(8, 0, card.Stats{HP: 5, Atk: 4, ShieldCap: 2, ChargeCap: 1}, abilities(0, 2))
	require.NoError(t, err)
	assert.False(t, budget.Fits(over))

	slack, err := l.Summarize(6, 0, card.Stats{HP: 2, Atk: 2, ShieldCap: 1}, abilities(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 4, slack.Underspend)
	assert.False(t, budget.Fits(slack))
}

func TestProperty_Fits_MatchesWindow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rank := rapid.IntRange(2, 14).Draw(rt, "rank")
		stats := card.Stats{
			HP:        rapid.IntRange(0, 10).Draw(rt, "hp"),
			Atk:       rapid.IntRange(0, 10).Draw(rt, "atk"),
			ShieldCap: rapid.IntRange(0, 5).Draw(rt, "shield"),
			ChargeCap: rapid.IntRange(0, 5).Draw(rt, "charge"),
		}
		ab := abilities(rapid.IntRange(0, 8).Draw(rt, "build"), rapid.IntRange(1, 8).Draw(rt, "det"))
		costs, err := budget.DefaultLedger().Summarize(rank, 0, stats, ab)
		require.NoError(rt, err)
		assert.Equal(rt, costs.BaseStatCost+costs.AbilityCostTotal, costs.PowerBudgetSpent)
		gap := costs.BudgetCap - costs.PowerBudgetSpent
		assert.Equal(rt, gap == 0 || gap == 1, budget.Fits(costs))
	})
}
