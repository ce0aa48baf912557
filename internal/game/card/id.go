package card

import (
	"fmt"

	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// NewID builds the stable card id "<CODE>-<RR>-<ROW>-<SSS>", e.g. "HRT-11-FRONT-007".
// Jokers use rank "00".
//
// Precondition: serial >= 1.
// Postcondition: ids are unique per (faction, serial).
func NewID(faction ruleset.Faction, rank int, row ruleset.RowRole, serial int) (string, error) {
	code := faction.Code()
	if code == "" {
		return "", fmt.Errorf("unknown faction %q", faction)
	}
	return fmt.Sprintf("%s-%02d-%s-%03d", code, rank, row, serial), nil
}
