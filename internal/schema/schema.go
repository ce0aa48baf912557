// Package schema checks written card-forge outputs: the card array and the
// deck-pack bundle against their JSON Schemas plus the typed structural
// validators, and the prompts listing against the card order.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/cory-johannsen/cardforge/content"
	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/deckpack"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// ErrInvalid is returned (wrapped) when an output fails any check.
var ErrInvalid = errors.New("output failed validation")

// Schema file names inside a schemas directory.
const (
	CardsSchema     = "cards.schema.json"
	DeckPacksSchema = "deckpacks.schema.json"
)

// promptLinesChecked bounds how many prompt lines are compared field by field.
const promptLinesChecked = 10

var lineBreak = regexp.MustCompile(`\r?\n`)

// Validator holds the resolved output schemas.
type Validator struct {
	cards     *jsonschema.Resolved
	deckpacks *jsonschema.Resolved
}

// New returns a Validator over the embedded schemas.
func New() (*Validator, error) {
	return Load(content.FS, content.SchemasDir)
}

// Load resolves CardsSchema and DeckPacksSchema from dir in fsys.
//
// Postcondition: Returns a usable Validator or a non-nil error.
func Load(fsys fs.FS, dir string) (*Validator, error) {
	cards, err := resolve(fsys, path.Join(dir, CardsSchema))
	if err != nil {
		return nil, err
	}
	deckpacks, err := resolve(fsys, path.Join(dir, DeckPacksSchema))
	if err != nil {
		return nil, err
	}
	return &Validator{cards: cards, deckpacks: deckpacks}, nil
}

func resolve(fsys fs.FS, name string) (*jsonschema.Resolved, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", name, err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving schema %s: %w", name, err)
	}
	return resolved, nil
}

// Cards checks a cards JSON document and returns the decoded cards with
// every violation found. Decoded cards are nil when data is not a card array.
func (v *Validator) Cards(data []byte) ([]*card.Card, []string) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, []string{"invalid JSON: " + err.Error()}
	}
	var errs []string
	if err := v.cards.Validate(instance); err != nil {
		errs = append(errs, "schema: "+err.Error())
	}
	var cards []*card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, append(errs, "decoding cards: "+err.Error())
	}
	return cards, append(errs, card.Violations(cards)...)
}

// DeckPacks checks a deck-pack JSON document. When cards is non-nil every
// packed id must name one of them.
func (v *Validator) DeckPacks(data []byte, cards []*card.Card) []string {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return []string{"invalid JSON: " + err.Error()}
	}
	var errs []string
	if err := v.deckpacks.Validate(instance); err != nil {
		errs = append(errs, "schema: "+err.Error())
	}
	var b deckpack.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return append(errs, "decoding deck packs: "+err.Error())
	}
	errs = append(errs, deckpack.Violations(&b)...)
	if cards != nil {
		errs = append(errs, unknownIDs(&b, card.Index(cards))...)
	}
	return errs
}

func unknownIDs(b *deckpack.Bundle, index map[string]*card.Card) []string {
	var errs []string
	for _, f := range ruleset.PlayableFactions {
		fp := b.Packs[f]
		if fp == nil {
			continue
		}
		for _, id := range fp.Expansion.TotalWithStarter {
			if c, ok := index[id]; !ok || c.Faction != f {
				errs = append(errs, fmt.Sprintf("deckpacks.packs.%s references unknown %s card %s", f, f, id))
			}
		}
	}
	for _, id := range b.JokerPool.CardIDs {
		if _, ok := index[id]; !ok {
			errs = append(errs, "deckpacks.jokerPool references unknown card "+id)
		}
	}
	return errs
}

// Prompts checks the prompts listing: one line per card, and the first ten
// lines carry tab-separated id, name and prompt with ids in card order.
func Prompts(text string, cards []*card.Card) []string {
	var lines []string
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		lines = lineBreak.Split(trimmed, -1)
	}
	var errs []string
	if len(lines) != len(cards) {
		errs = append(errs, fmt.Sprintf("prompts line count (%d) does not match cards (%d)", len(lines), len(cards)))
	}
	n := min(len(lines), len(cards), promptLinesChecked)
	for i := 0; i < n; i++ {
		fields := strings.Split(lines[i], "\t")
		if len(fields) < 3 || fields[0] == "" || fields[1] == "" || fields[2] == "" {
			errs = append(errs, fmt.Sprintf("prompt line %d must contain tab-separated id, name, prompt", i+1))
			break
		}
		if fields[0] != cards[i].ID {
			errs = append(errs, fmt.Sprintf("prompt line %d id mismatch (%s != %s)", i+1, fields[0], cards[i].ID))
			break
		}
	}
	return errs
}
