package preview_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/deckpack"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/preview"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
	"github.com/cory-johannsen/cardforge/internal/generator"
)

var (
	once   sync.Once
	genRes *generator.Result
	genErr error
)

func generated(t testing.TB) *generator.Result {
	t.Helper()
	once.Do(func() {
		content, err := generator.DefaultContent()
		if err != nil {
			genErr = err
			return
		}
		genRes, genErr = generator.Generate(dice.NumericSeed(1337), nil, content)
	})
	require.NoError(t, genErr)
	return genRes
}

func TestText_Seed1337_Reference(t *testing.T) {
	res := generated(t)
	text, err := preview.Text(res.Cards, res.DeckPacks, preview.DefaultOptions())
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Deck Realms Card Forge Preview (Prototype)", lines[0])
	assert.Equal(t, "Hearts pool: 60 cards | Rows F/M/B 21/27/12", lines[4])
	assert.Equal(t, "Rarity: COMMON:33 RARE:18 LEGENDARY:2 EPIC:7", lines[5])
	assert.Equal(t, "HRT-12-FRONT-002 | Heir Marguerite of House Oathmark", lines[7])
	assert.Equal(t, "Hearts Q | FRONT | EPIC | Vanguard Knight", lines[8])
	assert.Equal(t, "HP 6 / ATK 4 / SHD 3 / CHG 1 | Budget 18/18", lines[9])
	assert.Equal(t, "Build: Consecrate (C2)", lines[10])
	assert.Equal(t, "Detonate: Oath Strike (C2)", lines[11])

	assert.Contains(t, text, "Skirmish Demo: Hearts vs Spades (seed 1337, turns 8)\n\nHearts draws opening hand (5 in hand).\nSpades draws opening hand (5 in hand).\nTurn 1\n")
	assert.Contains(t, text, "Spades Sentinel Lindqvist, Bastion-300 hits Hearts Castellan Sabine of House Ravelle, the Unbowed on MIDDLE for 6 (shield 2->0), HP 0 left.\n")
	assert.True(t, strings.HasSuffix(text, "Result\nWinner: Spades\nNexus: Hearts -2 | Spades 18\nKO: Hearts 5 | Spades 2\nScore: Hearts 8 | Spades 33"))

	sum := sha256.Sum256([]byte(text))
	assert.Equal(t, "082570cd2952ba6d3b6519c7bd9b147956005abdd49bb03ca7598a4783652a1a", hex.EncodeToString(sum[:]))
}

func TestSkirmish_TextSeedReference(t *testing.T) {
	res := generated(t)
	out, err := preview.Skirmish(res.Cards, res.DeckPacks, preview.Options{
		Left:  ruleset.Diamonds,
		Right: ruleset.Clubs,
		Seed:  dice.ParseSeed("deck-realms"),
		Turns: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, "Diamonds", out.Winner)
	assert.Equal(t, preview.SideResult{Faction: ruleset.Diamonds, Nexus: 18, KOs: 1, BoardPower: 9, Score: 29}, out.Left)
	assert.Equal(t, preview.SideResult{Faction: ruleset.Clubs, Nexus: -2, KOs: 5, BoardPower: 0, Score: 8}, out.Right)
	// Two opening draws plus five turns before the Clubs nexus falls.
	assert.Len(t, out.Logs, 7)
}

func TestSkirmish_ClampsTurns(t *testing.T) {
	res := generated(t)
	opts := preview.DefaultOptions()
	opts.Turns = 0
	out, err := preview.Skirmish(res.Cards, res.DeckPacks, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Options.Turns)
	require.Len(t, out.Logs, 3)
	assert.True(t, strings.HasPrefix(out.Logs[2], "Turn 1\n"))
	assert.Contains(t, out.Logs[2], "Board snapshot:")
}

func TestSkirmish_MissingPack(t *testing.T) {
	res := generated(t)

	_, err := preview.Skirmish(res.Cards, nil, preview.DefaultOptions())
	assert.ErrorIs(t, err, preview.ErrMissingPack)

	opts := preview.DefaultOptions()
	opts.Right = ruleset.Jokers
	_, err = preview.Skirmish(res.Cards, res.DeckPacks, opts)
	assert.ErrorIs(t, err, preview.ErrMissingPack)

	// Dropping one Hearts card leaves its Starter-21 unresolvable.
	missing := res.DeckPacks.Packs[ruleset.Hearts].Starter.All[0]
	var cards []*card.Card
	for _, c := range res.Cards {
		if c.ID != missing {
			cards = append(cards, c)
		}
	}
	_, err = preview.Skirmish(cards, res.DeckPacks, preview.DefaultOptions())
	require.ErrorIs(t, err, preview.ErrMissingPack)
	assert.Contains(t, err.Error(), "Hearts "+deckpack.StarterName+" resolves 20 of 21 cards")
}

func TestText_RejectsJokers(t *testing.T) {
	res := generated(t)
	opts := preview.DefaultOptions()
	opts.Left = ruleset.Jokers
	_, err := preview.Text(res.Cards, res.DeckPacks, opts)
	assert.Error(t, err)
}

func TestShowcase(t *testing.T) {
	res := generated(t)
	var spades []*card.Card
	for _, c := range res.Cards {
		if c.Faction == ruleset.Spades {
			spades = append(spades, c)
		}
	}
	picks := preview.Showcase(spades)
	ids := make([]string, 0, len(picks))
	for _, c := range picks {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"SPD-05-FRONT-025", "SPD-03-MIDDLE-060", "SPD-11-BACK-059", "SPD-14-FRONT-040"}, ids)
	assert.Empty(t, preview.Showcase(nil))
}

func TestFormatCard_Joker(t *testing.T) {
	res := generated(t)
	joker := res.Cards[len(res.Cards)-1]
	require.True(t, joker.IsJoker())
	block := preview.FormatCard(joker)
	assert.Contains(t, block, "Jokers JOKER mask:12 | BACK")
	assert.Len(t, strings.Split(block, "\n"), 6)
}

func TestPropertySkirmishDeterministic(t *testing.T) {
	res := generated(t)
	rapid.Check(t, func(t *rapid.T) {
		factions := ruleset.PlayableFactions
		opts := preview.Options{
			Left:  rapid.SampledFrom(factions).Draw(t, "left"),
			Right: rapid.SampledFrom(factions).Draw(t, "right"),
			Seed:  dice.NumericSeed(rapid.Int64Range(0, 1<<31).Draw(t, "seed")),
			Turns: rapid.IntRange(1, 20).Draw(t, "turns"),
		}
		a, err := preview.Skirmish(res.Cards, res.DeckPacks, opts)
		if err != nil {
			t.Fatalf("skirmish: %v", err)
		}
		b, err := preview.Skirmish(res.Cards, res.DeckPacks, opts)
		if err != nil {
			t.Fatalf("skirmish: %v", err)
		}
		if a.Winner != b.Winner || a.Left != b.Left || a.Right != b.Right || len(a.Logs) != len(b.Logs) {
			t.Fatalf("skirmish not deterministic for %+v", opts)
		}
		if len(a.Logs) > opts.Turns+2 {
			t.Fatalf("%d log entries for %d turns", len(a.Logs), opts.Turns)
		}
		for _, s := range []preview.SideResult{a.Left, a.Right} {
			if s.Nexus > 18 || s.BoardPower < 0 || s.KOs < 0 {
				t.Fatalf("implausible tally %+v", s)
			}
		}
	})
}
