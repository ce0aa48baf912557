// Package budget implements the per-rank power budget and the cost/fit
// arithmetic every card must satisfy.
package budget

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// ErrUnknownRank is returned when a rank has no budget entry.
var ErrUnknownRank = errors.New("no power budget for rank")

// MaxUnderspend is the largest permitted gap between cap and spend.
const MaxUnderspend = 1

// Ledger maps effective rank to power-budget cap.
//
// Invariant: caps increase monotonically with rank.
type Ledger struct {
	caps map[int]int
}

// DefaultLedger returns the canonical rank table: 2→6 .. 10→14, then
// J=16, Q=18, K=20, A=22.
func DefaultLedger() *Ledger {
	return &Ledger{caps: map[int]int{
		2: 6, 3: 7, 4: 8, 5: 9, 6: 10, 7: 11, 8: 12, 9: 13, 10: 14,
		11: 16, 12: 18, 13: 20, 14: 22,
	}}
}

// NewLedger builds a Ledger from an explicit table.
//
// Postcondition: returns an error if caps is empty or not strictly increasing by rank.
func NewLedger(caps map[int]int) (*Ledger, error) {
	if len(caps) == 0 {
		return nil, fmt.Errorf("budget table must not be empty")
	}
	prev, prevCap := 0, 0
	for _, r := range ruleset.RanksAsc {
		c, ok := caps[r]
		if !ok {
			continue
		}
		if prev != 0 && c <= prevCap {
			return nil, fmt.Errorf("budget for rank %d (%d) must exceed rank %d (%d)", r, c, prev, prevCap)
		}
		prev, prevCap = r, c
	}
	cp := make(map[int]int, len(caps))
	for k, v := range caps {
		cp[k] = v
	}
	return &Ledger{caps: cp}, nil
}

// Cap returns the budget cap for rank; Jokers (rank 0) use maskRank.
func (l *Ledger) Cap(rank, maskRank int) (int, error) {
	effective := rank
	if rank == ruleset.JokerRank {
		effective = maskRank
	}
	c, ok := l.caps[effective]
	if !ok {
		return 0, fmt.Errorf("%w %d (maskRank=%d)", ErrUnknownRank, rank, maskRank)
	}
	return c, nil
}

// StatCost returns hp+atk+shieldCap+chargeCap.
func StatCost(s card.Stats) int {
	return s.Total()
}

// AbilityCost returns the build-phase cost (0 when absent) plus the detonation cost.
func AbilityCost(a card.Abilities) int {
	total := a.Detonation.Cost
	if a.BuildPhase != nil {
		total += a.BuildPhase.Cost
	}
	return total
}

// Summarize computes the full cost summary for a card's rank, stats and abilities.
func (l *Ledger) Summarize(rank, maskRank int, stats card.Stats, abilities card.Abilities) (card.Costs, error) {
	capacity, err := l.Cap(rank, maskRank)
	if err != nil {
		return card.Costs{}, err
	}
	statCost := StatCost(stats)
	abilityCost := AbilityCost(abilities)
	spent := statCost + abilityCost
	return card.Costs{
		BudgetCap:        capacity,
		BaseStatCost:     statCost,
		AbilityCostTotal: abilityCost,
		PowerBudgetSpent: spent,
		Underspend:       capacity - spent,
	}, nil
}

// Fits reports whether costs respect the budget window: no overspend and at
// most MaxUnderspend points of slack.
func Fits(costs card.Costs) bool {
	return costs.PowerBudgetSpent <= costs.BudgetCap &&
		costs.Underspend >= 0 &&
		costs.Underspend <= MaxUnderspend
}
