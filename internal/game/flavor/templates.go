// Package flavor builds the descriptive text of a card (name, lore, art
// prompt) from YAML template files.
package flavor

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Template file names inside a templates directory.
const (
	NamesFile   = "names.yaml"
	LoreFile    = "lore.yaml"
	PromptsFile = "prompts.yaml"
)

// NameSet holds the word lists one faction's names are composed from. Which
// lists are required depends on the faction.
type NameSet struct {
	Titles      []string `yaml:"titles,omitempty"`
	Given       []string `yaml:"given,omitempty"`
	Houses      []string `yaml:"houses,omitempty"`
	Epithets    []string `yaml:"epithets,omitempty"`
	Surnames    []string `yaml:"surnames,omitempty"`
	Callsigns   []string `yaml:"callsigns,omitempty"`
	Designators []string `yaml:"designators,omitempty"`
	Crews       []string `yaml:"crews,omitempty"`
	Personas    []string `yaml:"personas,omitempty"`
	ShardTitles []string `yaml:"shard_titles,omitempty"`
}

// LoreSet holds one faction's lore fragments. Empty lists fall back to
// generic defaults.
type LoreSet struct {
	Motives    []string `yaml:"motives"`
	VisualCues []string `yaml:"visual_cues"`
	Ideology   []string `yaml:"ideology"`
	Quirks     []string `yaml:"quirks"`
}

// PromptSet holds the art-prompt fragments.
type PromptSet struct {
	BaseStyle      string                     `yaml:"base_style"`
	FactionVisuals map[ruleset.Faction]string `yaml:"faction_visuals"`
	FactionExtras  map[ruleset.Faction]string `yaml:"faction_extras"`
	RowGear        map[ruleset.RowRole]string `yaml:"row_gear"`
}

// Templates bundles every flavour template.
type Templates struct {
	Names   map[ruleset.Faction]NameSet `yaml:"names"`
	Lore    map[ruleset.Faction]LoreSet `yaml:"lore"`
	Prompts PromptSet                   `yaml:"prompts"`
}

type namesFile struct {
	Factions map[ruleset.Faction]NameSet `yaml:"factions"`
}

type loreFile struct {
	Factions map[ruleset.Faction]LoreSet `yaml:"factions"`
}

// LoadTemplates reads names.yaml, lore.yaml and prompts.yaml from dir in fsys.
//
// Precondition: fsys must contain the three files under dir.
// Postcondition: Returns validated Templates or a non-nil error.
func LoadTemplates(fsys fs.FS, dir string) (*Templates, error) {
	var names namesFile
	if err := decodeFile(fsys, path.Join(dir, NamesFile), &names); err != nil {
		return nil, err
	}
	var lore loreFile
	if err := decodeFile(fsys, path.Join(dir, LoreFile), &lore); err != nil {
		return nil, err
	}
	var prompts PromptSet
	if err := decodeFile(fsys, path.Join(dir, PromptsFile), &prompts); err != nil {
		return nil, err
	}
	t := &Templates{Names: names.Factions, Lore: lore.Factions, Prompts: prompts}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	return nil
}

// Validate checks that every word list a faction's name pattern draws from
// is non-empty, and that the prompt fragments cover every faction and row.
func (t *Templates) Validate() error {
	for _, f := range ruleset.Factions {
		set, ok := t.Names[f]
		if !ok {
			// A faction without templates gets a generic name.
			continue
		}
		for _, l := range requiredLists(f, set) {
			if len(l.words) == 0 {
				return fmt.Errorf("name templates for %s: %s must not be empty", f, l.name)
			}
		}
	}
	if t.Prompts.BaseStyle == "" {
		return fmt.Errorf("prompt templates: base_style must not be empty")
	}
	for _, f := range ruleset.Factions {
		if t.Prompts.FactionVisuals[f] == "" {
			return fmt.Errorf("prompt templates: faction_visuals missing %s", f)
		}
	}
	for _, r := range ruleset.RowRoles {
		if t.Prompts.RowGear[r] == "" {
			return fmt.Errorf("prompt templates: row_gear missing %s", r)
		}
	}
	return nil
}

type wordList struct {
	name  string
	words []string
}

func requiredLists(f ruleset.Faction, n NameSet) []wordList {
	switch f {
	case ruleset.Hearts:
		return []wordList{{"titles", n.Titles}, {"given", n.Given}, {"houses", n.Houses}, {"epithets", n.Epithets}}
	case ruleset.Spades:
		return []wordList{{"titles", n.Titles}, {"surnames", n.Surnames}, {"callsigns", n.Callsigns}}
	case ruleset.Diamonds:
		return []wordList{{"designators", n.Designators}, {"surnames", n.Surnames}, {"epithets", n.Epithets}}
	case ruleset.Clubs:
		return []wordList{{"given", n.Given}, {"epithets", n.Epithets}, {"crews", n.Crews}}
	case ruleset.Jokers:
		return []wordList{{"personas", n.Personas}, {"shard_titles", n.ShardTitles}}
	}
	return nil
}
