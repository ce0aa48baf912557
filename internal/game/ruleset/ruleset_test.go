package ruleset_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

func TestFaction_Codes(t *testing.T) {
	want := map[ruleset.Faction]string{
		ruleset.Hearts:   "HRT",
		ruleset.Spades:   "SPD",
		ruleset.Diamonds: "DIA",
		ruleset.Clubs:    "CLB",
		ruleset.Jokers:   "JKR",
	}
	for f, code := range want {
		if got := f.Code(); got != code {
			t.Errorf("%s.Code() = %q, want %q", f, got, code)
		}
	}
	if got := ruleset.Faction("Stars").Code(); got != "" {
		t.Errorf("unknown faction code = %q, want empty", got)
	}
}

func TestFaction_Playable(t *testing.T) {
	for _, f := range ruleset.PlayableFactions {
		if !f.Playable() {
			t.Errorf("%s must be playable", f)
		}
	}
	if ruleset.Jokers.Playable() {
		t.Error("Jokers must not be playable")
	}
	if ruleset.AnyFaction.Valid() {
		t.Error("the wildcard is not a concrete faction")
	}
}

func TestFaction_SynergyHintsIsCopy(t *testing.T) {
	hints := ruleset.Hearts.SynergyHints()
	hints[0] = "mutated"
	if ruleset.Hearts.SynergyHints()[0] == "mutated" {
		t.Fatal("SynergyHints must return a copy")
	}
}

func TestFaction_ArchetypesForEveryRow(t *testing.T) {
	for _, f := range ruleset.Factions {
		for _, r := range ruleset.RowRoles {
			if len(f.Archetypes(r)) == 0 {
				t.Errorf("%s %s has no archetypes", f, r)
			}
		}
	}
}

func TestOrders(t *testing.T) {
	if ruleset.Hearts.Order() != 0 || ruleset.Jokers.Order() != 4 {
		t.Error("faction order must follow Hearts..Jokers")
	}
	if ruleset.Front.Order() != 0 || ruleset.Back.Order() != 2 || ruleset.AnyRow.Valid() {
		t.Error("row order must follow FRONT, MIDDLE, BACK")
	}
	if ruleset.Common.Order() != 0 || ruleset.Legendary.Order() != 3 || ruleset.Rarity("MYTHIC").Valid() {
		t.Error("rarity order must follow COMMON..LEGENDARY")
	}
}

func TestBuildPhaseChance_BackHighest(t *testing.T) {
	if !(ruleset.Back.BuildPhaseChance() > ruleset.Middle.BuildPhaseChance() &&
		ruleset.Middle.BuildPhaseChance() > ruleset.Front.BuildPhaseChance()) {
		t.Error("build-phase chance must rise from FRONT to BACK")
	}
}

func TestBaseRankCounts_TotalSixty(t *testing.T) {
	total := 0
	for _, n := range ruleset.BaseRankCounts() {
		total += n
	}
	if total != 60 {
		t.Fatalf("canonical rank counts sum to %d, want 60", total)
	}
}

func TestRankName(t *testing.T) {
	cases := map[int]string{0: "JOKER", 2: "2", 10: "10", 11: "J", 12: "Q", 13: "K", 14: "A"}
	for rank, want := range cases {
		if got := ruleset.RankName(rank); got != want {
			t.Errorf("RankName(%d) = %q, want %q", rank, got, want)
		}
	}
}

func TestProperty_RankName_NonEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rank := rapid.SampledFrom(append([]int{ruleset.JokerRank}, ruleset.RanksAsc...)).Draw(t, "rank")
		if ruleset.RankName(rank) == "" {
			t.Fatalf("RankName(%d) must not be empty", rank)
		}
	})
}
