package deckpack

import "github.com/cory-johannsen/cardforge/internal/game/ruleset"

// RankBias orders candidates by rank: low favours cheap cards, high favours
// the top of the ladder.
type RankBias int

const (
	BiasLow RankBias = iota
	BiasHigh
)

// Profile steers one balanced pick.
type Profile struct {
	Label          string
	Count          int
	ExcludeLegend  bool
	RowTargets     map[ruleset.RowRole]int
	RarityTargets  map[ruleset.Rarity]int
	RowWeights     map[ruleset.RowRole]float64
	RarityWeights  map[ruleset.Rarity]float64
	RankBias       RankBias
	AvoidLegendary bool
	PreferCommons  bool
	PreferBuild    bool
	RequireBuild   bool
}

// Pick priority bonuses and penalties.
const (
	rowQuotaBonus     = 500
	rarityQuotaBonus  = 300
	requireBuildBonus = 40
	preferBuildBonus  = 10
	legendaryPenalty  = 400
	commonBonus       = 20
)

// StarterProfile picks the six-card starting core: no legendaries, even
// rows, commons and low ranks first.
func StarterProfile() Profile {
	return Profile{
		Label:         "starter6",
		Count:         6,
		ExcludeLegend: true,
		RowTargets:    map[ruleset.RowRole]int{ruleset.Front: 2, ruleset.Middle: 2, ruleset.Back: 2},
		RarityTargets: map[ruleset.Rarity]int{ruleset.Common: 4, ruleset.Rare: 2, ruleset.Epic: 0, ruleset.Legendary: 0},
		RowWeights:    map[ruleset.RowRole]float64{ruleset.Front: 1.0, ruleset.Middle: 1.0, ruleset.Back: 1.0},
		RarityWeights: map[ruleset.Rarity]float64{
			ruleset.Common: 1.0, ruleset.Rare: 0.8, ruleset.Epic: 0.2, ruleset.Legendary: -2.0,
		},
		RankBias:       BiasLow,
		AvoidLegendary: true,
		PreferCommons:  true,
	}
}

// RecruitProfile picks the fifteen recruitables that complete Starter-21.
func RecruitProfile() Profile {
	return Profile{
		Label:         "recruit15",
		Count:         15,
		RowTargets:    map[ruleset.RowRole]int{ruleset.Front: 5, ruleset.Middle: 7, ruleset.Back: 3},
		RarityTargets: map[ruleset.Rarity]int{ruleset.Common: 8, ruleset.Rare: 5, ruleset.Epic: 2, ruleset.Legendary: 0},
		RowWeights:    map[ruleset.RowRole]float64{ruleset.Front: 0.8, ruleset.Middle: 1.2, ruleset.Back: 0.7},
		RarityWeights: map[ruleset.Rarity]float64{
			ruleset.Common: 1.0, ruleset.Rare: 0.9, ruleset.Epic: 0.6, ruleset.Legendary: 0.1,
		},
		RankBias:       BiasLow,
		AvoidLegendary: true,
		PreferBuild:    true,
	}
}

// ExpansionProfile picks the twenty cards that grow Starter-21 into
// Expansion-41, leaning on high ranks and the upper rarities.
func ExpansionProfile() Profile {
	return Profile{
		Label:         "exp20",
		Count:         20,
		RowTargets:    map[ruleset.RowRole]int{ruleset.Front: 7, ruleset.Middle: 9, ruleset.Back: 4},
		RarityTargets: map[ruleset.Rarity]int{ruleset.Common: 6, ruleset.Rare: 8, ruleset.Epic: 5, ruleset.Legendary: 1},
		RowWeights:    map[ruleset.RowRole]float64{ruleset.Front: 0.9, ruleset.Middle: 1.1, ruleset.Back: 1.0},
		RarityWeights: map[ruleset.Rarity]float64{
			ruleset.Common: 0.5, ruleset.Rare: 1.0, ruleset.Epic: 1.4, ruleset.Legendary: 1.2,
		},
		RankBias: BiasHigh,
	}
}
