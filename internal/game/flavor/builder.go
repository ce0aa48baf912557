package flavor

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Starting serials for the factions whose names carry one.
const (
	spadesSerialStart   = 100
	diamondsSerialStart = 300
)

const (
	defaultMotive   = "seeks leverage in the next conflict"
	defaultVisual   = "marked by practical battlefield wear"
	defaultIdeology = "their creed shapes every choice"
	defaultQuirk    = "They keep a private ritual before each detonation."
	defaultTag      = "discipline"
)

// Builder is the template-driven card flavour generator. It remembers every
// name it has issued and the running Spades and Diamonds serials, so one
// Builder must be used per generation run.
type Builder struct {
	t       *Templates
	used    map[string]bool
	serials map[ruleset.Faction]int
}

// NewBuilder returns a Builder with an empty name history.
func NewBuilder(t *Templates) *Builder {
	return &Builder{
		t:    t,
		used: make(map[string]bool),
		serials: map[ruleset.Faction]int{
			ruleset.Spades:   spadesSerialStart,
			ruleset.Diamonds: diamondsSerialStart,
		},
	}
}

// Name draws a faction-styled name. A repeated name gets a faction-specific
// suffix instead of being redrawn.
func (b *Builder) Name(s *dice.Stream, faction ruleset.Faction, rankName string) string {
	t, ok := b.t.Names[faction]
	if !ok {
		return fmt.Sprintf("%s Operative %s", faction, rankName)
	}
	switch faction {
	case ruleset.Hearts:
		title := dice.Pick(s, t.Titles)
		given := dice.Pick(s, t.Given)
		house := dice.Pick(s, t.Houses)
		epithet := ""
		if s.Chance(0.35) {
			epithet = ", " + dice.Pick(s, t.Epithets)
		}
		return b.claim(fmt.Sprintf("%s %s of House %s%s", title, given, house, epithet), " II")
	case ruleset.Spades:
		role := dice.Pick(s, t.Titles)
		surname := dice.Pick(s, t.Surnames)
		b.serials[ruleset.Spades] += s.Int(1, 7)
		callsign := dice.Pick(s, t.Callsigns)
		return b.claim(fmt.Sprintf("%s %s, %s-%d", role, surname, callsign, b.serials[ruleset.Spades]), "A")
	case ruleset.Diamonds:
		prefix := dice.Pick(s, t.Designators)
		surname := dice.Pick(s, t.Surnames)
		b.serials[ruleset.Diamonds] += s.Int(2, 11)
		suffix := ""
		if s.Chance(0.45) {
			suffix = " // " + dice.Pick(s, t.Epithets)
		}
		return b.claim(fmt.Sprintf("%s %s Node-%d%s", prefix, surname, b.serials[ruleset.Diamonds], suffix), "-B")
	case ruleset.Clubs:
		given := dice.Pick(s, t.Given)
		epithet := dice.Pick(s, t.Epithets)
		crew := dice.Pick(s, t.Crews)
		return b.claim(fmt.Sprintf("%s \"%s\" %s", given, epithet, crew), " Jr.")
	case ruleset.Jokers:
		persona := b.unique(s, t.Personas, "Fragment")
		return persona + ", " + dice.Pick(s, t.ShardTitles)
	}
	generic := fmt.Sprintf("%s %s %d", faction, rankName, s.Int(1, 999))
	if b.used[generic] {
		return fmt.Sprintf("%s-%d", generic, s.Int(1, 9))
	}
	b.used[generic] = true
	return generic
}

// claim records name, or returns name+suffix when it was already issued.
// The suffixed form is not recorded.
func (b *Builder) claim(name, suffix string) string {
	if b.used[name] {
		return name + suffix
	}
	b.used[name] = true
	return name
}

// unique draws from list until it finds an unused entry, giving up after
// max(6, 2*len(list)) tries and minting "<prefix> NN" instead.
func (b *Builder) unique(s *dice.Stream, list []string, prefix string) string {
	tries := max(6, len(list)*2)
	for i := 0; i < tries; i++ {
		choice := dice.Pick(s, list)
		if !b.used[choice] {
			b.used[choice] = true
			return choice
		}
	}
	minted := fmt.Sprintf("%s %02d", prefix, len(b.used)+1)
	b.used[minted] = true
	return minted
}

// Lore writes three sentences: motive, look and creed, then either a quirk
// (plain commons) or a line about how the card plays.
//
// Precondition: c.Name and c.SynergyTags are set.
func (b *Builder) Lore(s *dice.Stream, c *card.Card) string {
	set := b.t.Lore[c.Faction]
	motive := pickOr(s, set.Motives, defaultMotive)
	visual := pickOr(s, set.VisualCues, defaultVisual)
	ideology := pickOr(s, set.Ideology, defaultIdeology)
	quirk := pickOr(s, set.Quirks, defaultQuirk)

	tag := defaultTag
	if len(c.SynergyTags) > 0 {
		tag = c.SynergyTags[0]
	}
	short, _, _ := strings.Cut(c.Name, ",")
	var third string
	switch {
	case c.Rarity == ruleset.Common && c.Abilities.BuildPhase == nil:
		third = quirk
	case c.Abilities.BuildPhase != nil:
		third = fmt.Sprintf("In the build phase, %s leans on %s to prepare the line before the strike lands.", short, tag)
	default:
		third = fmt.Sprintf("%s favors immediate pressure over elaborate setup, turning %s into a blunt threat.", short, tag)
	}
	text := fmt.Sprintf("%s %s. They are known for %s, and %s. %s", c.Name, motive, visual, ideology, third)
	return strings.Join(strings.Fields(text), " ")
}

func pickOr(s *dice.Stream, list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return dice.Pick(s, list)
}

// ArtPrompt joins the base style, faction palette and visuals, row gear,
// character concept, the first four synergy tags and the faction extra.
// It draws nothing.
func (b *Builder) ArtPrompt(c *card.Card) string {
	p := b.t.Prompts
	tags := c.SynergyTags
	if len(tags) > 4 {
		tags = tags[:4]
	}
	parts := []string{
		p.BaseStyle,
		fmt.Sprintf("faction palette %s, %s", c.Faction.Palette(), p.FactionVisuals[c.Faction]),
		p.RowGear[c.RowRole],
		fmt.Sprintf("character concept: %s, %s", c.Archetype, c.Name),
		"combat cues: " + strings.Join(tags, ", "),
		p.FactionExtras[c.Faction],
	}
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}
