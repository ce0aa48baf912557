package dice_test

import (
	"encoding/json"
	"testing"

	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Reference vectors below were produced by the JavaScript prototype of the
// forge so that both implementations stay interchangeable for ASCII seeds.

func TestHashString_KnownVectors(t *testing.T) {
	assert.Equal(t, uint32(1335831723), dice.HashString("hello"))
	assert.Equal(t, uint32(1027155043), dice.HashString("deck-realms"))
	assert.Equal(t, uint32(2166136261), dice.HashString(""))
}

func TestParseSeed_NumericAndText(t *testing.T) {
	s := dice.ParseSeed("1337")
	assert.True(t, s.Numeric)
	assert.Equal(t, uint32(1337), s.Value)

	neg := dice.ParseSeed("-1")
	assert.True(t, neg.Numeric)
	assert.Equal(t, uint32(4294967295), neg.Value)

	txt := dice.ParseSeed("hello")
	assert.False(t, txt.Numeric)
	assert.Equal(t, uint32(1335831723), txt.Value)
	assert.Equal(t, "hello", txt.String())
}

func TestSeed_JSONRoundTrip(t *testing.T) {
	num, err := json.Marshal(dice.ParseSeed("1337"))
	require.NoError(t, err)
	assert.Equal(t, "1337", string(num))

	txt, err := json.Marshal(dice.ParseSeed("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(txt))

	var back dice.Seed
	require.NoError(t, json.Unmarshal(num, &back))
	assert.Equal(t, dice.ParseSeed("1337"), back)

	require.NoError(t, json.Unmarshal([]byte(`"42"`), &back))
	assert.False(t, back.Numeric, "a quoted number stays textual")

	assert.Error(t, json.Unmarshal([]byte(`1.5`), &back))
}

func TestStream_KnownSequence(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(1337))
	assert.Equal(t, 0.1844118325971067, s.Float())
	assert.Equal(t, 0.18998925131745636, s.Float())
	assert.Equal(t, 0.8104719922412187, s.Float())
}

func TestStream_IntKnownSequence(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(1337))
	assert.Equal(t, []int{2, 2, 81}, []int{s.Int(1, 6), s.Int(1, 6), s.Int(0, 100)})
}

func TestStream_ForkConsumesOneDraw(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(1337))
	child := s.Fork("cards")
	assert.Equal(t, uint32(1136576492), child.Seed())
	// The parent's next float is the second value of the root sequence.
	assert.Equal(t, 0.18998925131745636, s.Float())
}

func TestStream_ForkLabelsDiverge(t *testing.T) {
	a := dice.NewStream(dice.NumericSeed(9)).Fork("rows:Hearts")
	b := dice.NewStream(dice.NumericSeed(9)).Fork("ranks:Hearts")
	assert.NotEqual(t, a.Seed(), b.Seed())
}

func TestShuffle_KnownPermutation(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(42))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := dice.Shuffle(s, in)
	assert.Equal(t, []int{3, 8, 2, 1, 7, 6, 4, 5}, out)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, in, "input must not be mutated")
}

func TestWeightedPick_KnownSequence(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(7))
	entries := []dice.Weighted[string]{{"a", 1}, {"b", 0}, {"c", 3}}
	got := make([]string, 5)
	for i := range got {
		got[i] = dice.WeightedPick(s, entries)
	}
	assert.Equal(t, []string{"a", "a", "c", "c", "c"}, got)
}

func TestWeightedPick_PanicsOnZeroTotal(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(1))
	assert.Panics(t, func() {
		dice.WeightedPick(s, []dice.Weighted[int]{{1, 0}, {2, -1}})
	})
}

func TestPick_PanicsOnEmpty(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(1))
	assert.Panics(t, func() { dice.Pick(s, []int{}) })
}

func TestIntn_PanicsOnZero(t *testing.T) {
	s := dice.NewStream(dice.NumericSeed(1))
	assert.Panics(t, func() { s.Intn(0) })
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestRandomSeed_IsNumeric(t *testing.T) {
	s := dice.RandomSeed(dice.NewCryptoSource())
	assert.True(t, s.Numeric)
	assert.Equal(t, s, dice.ParseSeed(s.Text))
}

func TestProperty_Stream_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.String().Draw(rt, "seed")
		a := dice.NewStream(dice.ParseSeed(seed))
		b := dice.NewStream(dice.ParseSeed(seed))
		for i := 0; i < 20; i++ {
			assert.Equal(rt, a.Float(), b.Float())
		}
		assert.Equal(rt, a.Fork("x").Seed(), b.Fork("x").Seed())
	})
}

func TestProperty_Int_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-1000, 1000).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+1000).Draw(rt, "hi")
		s := dice.NewStream(dice.NumericSeed(rapid.Int64().Draw(rt, "seed")))
		for i := 0; i < 50; i++ {
			v := s.Int(lo, hi)
			assert.GreaterOrEqual(rt, v, lo)
			assert.LessOrEqual(rt, v, hi)
		}
	})
}

func TestProperty_Shuffle_IsPermutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		items := rapid.SliceOf(rapid.IntRange(0, 50)).Draw(rt, "items")
		s := dice.NewStream(dice.NumericSeed(rapid.Int64().Draw(rt, "seed")))
		out := dice.Shuffle(s, items)
		assert.ElementsMatch(rt, items, out)
	})
}
