package ruleset

// Faction is one of the five suits a card belongs to.
type Faction string

// Factions in canonical output order.
const (
	Hearts   Faction = "Hearts"
	Spades   Faction = "Spades"
	Diamonds Faction = "Diamonds"
	Clubs    Faction = "Clubs"
	Jokers   Faction = "Jokers"
)

// AnyFaction is the wildcard an ability uses to apply to every faction.
const AnyFaction Faction = "Any"

// Factions lists every faction in canonical order.
var Factions = []Faction{Hearts, Spades, Diamonds, Clubs, Jokers}

// PlayableFactions lists the four core factions that receive deck packs.
var PlayableFactions = []Faction{Hearts, Spades, Diamonds, Clubs}

type factionInfo struct {
	code       string
	palette    string
	hints      []string
	archetypes map[RowRole][]string
}

var factionTable = map[Faction]factionInfo{
	Hearts: {
		code:    "HRT",
		palette: "ivory, crimson, muted gold",
		hints:   []string{"ritual", "shield", "loyalty", "formation", "bloodline"},
		archetypes: map[RowRole][]string{
			Front:  {"Vanguard Knight", "Blood Oath Sentinel", "Covenant Duelist"},
			Middle: {"Ritual Marshal", "Banner Warden", "Choir Shieldbearer"},
			Back:   {"Bloodline Scribe", "Relic Cantor", "Aegis Liturgist"},
		},
	},
	Spades: {
		code:    "SPD",
		palette: "gunmetal, deep navy, steel white",
		hints:   []string{"discipline", "suppress", "intercept", "counter", "armor"},
		archetypes: map[RowRole][]string{
			Front:  {"Breach Constable", "Suppression Trooper", "Shieldline Enforcer"},
			Middle: {"Intercept Officer", "Countermeasure Sergeant", "Formation Tactician"},
			Back:   {"Signals Arbiter", "Overwatch Magistrate", "Doctrine Analyst"},
		},
	},
	Diamonds: {
		code:    "DIA",
		palette: "teal, silver, prism cyan",
		hints:   []string{"foresight", "precision", "probability", "mark", "charge"},
		archetypes: map[RowRole][]string{
			Front:  {"Precision Harrier", "Probability Fencer", "Shardline Duelist"},
			Middle: {"Forecast Operator", "Vector Savant", "Outcome Broker"},
			Back:   {"Augury Director", "Fragment Auditor", "Continuum Cartographer"},
		},
	},
	Clubs: {
		code:    "CLB",
		palette: "rust, grime green, soot black",
		hints:   []string{"scrap", "steal", "corrosion", "sacrifice", "salvage"},
		archetypes: map[RowRole][]string{
			Front:  {"Scrap Bruiser", "Rivet Butcher", "Tunnel Reaver"},
			Middle: {"Cutpurse Engineer", "Corrosion Runner", "Salvage Raider"},
			Back:   {"Jury-Rig Alchemist", "Underhollow Tinkerer", "Black Market Spotter"},
		},
	},
	Jokers: {
		code:    "JKR",
		palette: "iridescent shard violet, sickly neon, fractured white",
		hints:   []string{"chaos", "distortion", "betrayal", "shard", "madness"},
		archetypes: map[RowRole][]string{
			Front:  {"Shard Berserker", "Maskbreaker", "Laughing Rupture"},
			Middle: {"Rift Juggler", "False Herald", "Chaos Broker"},
			Back:   {"Whisper Splitter", "Fracture Oracle", "Persona Parasite"},
		},
	},
}

// Valid reports whether f is one of the five concrete factions.
func (f Faction) Valid() bool {
	_, ok := factionTable[f]
	return ok
}

// Playable reports whether f receives Starter-21/Expansion-41 packs.
func (f Faction) Playable() bool {
	return f.Valid() && f != Jokers
}

// Order returns f's position in the canonical output order, or len(Factions)
// for an unknown faction.
func (f Faction) Order() int {
	for i, x := range Factions {
		if x == f {
			return i
		}
	}
	return len(Factions)
}

// Code returns the three-letter id prefix, or "" for an unknown faction.
func (f Faction) Code() string {
	return factionTable[f].code
}

// Palette returns the art-direction colour palette.
func (f Faction) Palette() string {
	return factionTable[f].palette
}

// SynergyHints returns a copy of the faction's preferred synergy tags.
func (f Faction) SynergyHints() []string {
	return append([]string(nil), factionTable[f].hints...)
}

// Archetypes returns the archetype titles available to f in row.
// The returned slice must not be modified.
func (f Faction) Archetypes(row RowRole) []string {
	return factionTable[f].archetypes[row]
}

// DefaultTargetCounts are the per-faction card counts used when no override is given.
func DefaultTargetCounts() map[Faction]int {
	return map[Faction]int{
		Hearts:   60,
		Spades:   60,
		Diamonds: 60,
		Clubs:    60,
		Jokers:   16,
	}
}
