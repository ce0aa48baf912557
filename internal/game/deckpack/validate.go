package deckpack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// ErrInvalid is returned (wrapped) when a bundle fails structural validation.
var ErrInvalid = errors.New("deck pack bundle failed validation")

// Validate checks a bundle: version present, every core faction packed,
// Starter-21.all holding 21 unique ids, Expansion-41 adding 20 and totalling
// 41 unique ids that contain the whole starter.
func Validate(b *Bundle) error {
	if b == nil {
		return fmt.Errorf("%w: bundle is nil", ErrInvalid)
	}
	errs := Violations(b)
	if len(errs) == 0 {
		return nil
	}
	total := len(errs)
	if total > 20 {
		errs = errs[:20]
	}
	return fmt.Errorf("%w (%d violations):\n%s", ErrInvalid, total, strings.Join(errs, "\n"))
}

// Violations returns every violation Validate would report for a non-nil b.
func Violations(b *Bundle) []string {
	var errs []string
	if b.Version == "" {
		errs = append(errs, "deckpacks.version must not be empty")
	}
	if b.Seed.Text == "" {
		errs = append(errs, "deckpacks.seed must not be empty")
	}
	for _, f := range ruleset.PlayableFactions {
		p := fmt.Sprintf("deckpacks.packs.%s", f)
		fp, ok := b.Packs[f]
		if !ok || fp == nil {
			errs = append(errs, p+" must be present")
			continue
		}
		st, ex := fp.Starter, fp.Expansion
		if len(st.Starting)+len(st.Recruitables) != len(st.All) {
			errs = append(errs, fmt.Sprintf("%s.%s.all must be starting+recruitables", p, StarterName))
		}
		errs = append(errs, checkIDs(fmt.Sprintf("%s.%s.all", p, StarterName), st.All, StarterSize)...)
		if len(ex.Additional) != ExpansionSize-StarterSize {
			errs = append(errs, fmt.Sprintf("%s.%s.additional must have %d ids, got %d",
				p, ExpansionName, ExpansionSize-StarterSize, len(ex.Additional)))
		}
		errs = append(errs, checkIDs(fmt.Sprintf("%s.%s.totalWithStarter", p, ExpansionName), ex.TotalWithStarter, ExpansionSize)...)
		total := make(map[string]bool, len(ex.TotalWithStarter))
		for _, id := range ex.TotalWithStarter {
			total[id] = true
		}
		for _, id := range st.All {
			if !total[id] {
				errs = append(errs, fmt.Sprintf("%s.%s.totalWithStarter is missing starter id %s", p, ExpansionName, id))
				break
			}
		}
	}
	if b.JokerPool.Count != len(b.JokerPool.CardIDs) {
		errs = append(errs, "deckpacks.jokerPool.count must equal len(cardIds)")
	}
	return errs
}

func checkIDs(path string, ids []string, want int) []string {
	var errs []string
	if len(ids) != want {
		errs = append(errs, fmt.Sprintf("%s must have %d ids, got %d", path, want, len(ids)))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			errs = append(errs, path+" must not contain empty ids")
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Sprintf("%s has duplicate id %s", path, id))
		}
		seen[id] = true
	}
	return errs
}
