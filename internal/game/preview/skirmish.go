package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/deckpack"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

const (
	startingNexus = 18
	openingHand   = 5
	maxFocus      = 3
	maxLoyalty    = 3
	maxCorrosion  = 2
	// snapshotTurns is how many opening turns always print a board snapshot.
	snapshotTurns = 3
)

// ErrMissingPack is returned when a faction has no Starter-21 pack or the
// pack references cards that are not in the card list.
var ErrMissingPack = errors.New("preview: starter pack unavailable")

// Options configures a skirmish.
type Options struct {
	Left  ruleset.Faction
	Right ruleset.Faction
	Seed  dice.Seed
	// Turns is clamped to at least 1.
	Turns int
}

// DefaultOptions is Hearts against Spades on seed 1337 for eight turns.
func DefaultOptions() Options {
	return Options{Left: ruleset.Hearts, Right: ruleset.Spades, Seed: dice.NumericSeed(1337), Turns: 8}
}

// Unit is a card on the board together with its transient combat state.
type Unit struct {
	Card       *card.Card
	HP         int
	Shield     int
	Charge     int
	Focus      int
	Counter    int
	Corrosion  int
	Suppressed int
	Loyalty    int
}

func newUnit(c *card.Card) *Unit {
	return &Unit{Card: c, HP: c.Stats.HP}
}

func (u *Unit) alive() bool {
	return u != nil && u.HP > 0
}

// Side is one player in a skirmish.
type Side struct {
	Faction ruleset.Faction
	Nexus   int
	KOs     int
	Hand    []*card.Card
	Discard []*card.Card
	Board   map[ruleset.RowRole]*Unit

	rng      *dice.Stream
	drawPile []*card.Card
}

func newSide(f ruleset.Faction, cards []*card.Card, rng *dice.Stream) *Side {
	return &Side{
		Faction:  f,
		Nexus:    startingNexus,
		Board:    make(map[ruleset.RowRole]*Unit, len(ruleset.RowRoles)),
		rng:      rng,
		drawPile: dice.Shuffle(rng, cards),
	}
}

// BoardPower sums hp, shield, charge and attack over living units.
func (s *Side) BoardPower() int {
	total := 0
	for _, row := range ruleset.RowRoles {
		if u := s.Board[row]; u.alive() {
			total += u.HP + u.Shield + u.Charge + u.Card.Stats.Atk
		}
	}
	return total
}

// Score is nexus + board power + two per KO.
func (s *Side) Score() int {
	return s.Nexus + s.BoardPower() + s.KOs*2
}

func (s *Side) draw(n int, label string, logs *[]string) {
	for i := 0; i < n; i++ {
		if len(s.drawPile) == 0 {
			return
		}
		s.Hand = append(s.Hand, s.drawPile[0])
		s.drawPile = s.drawPile[1:]
	}
	if n > 0 {
		*logs = append(*logs, fmt.Sprintf("%s %s (%d in hand).", s.Faction, label, len(s.Hand)))
	}
}

// playIndex scores every hand card and returns the best, or -1 for an
// empty hand. Cards whose row is free score far above blocked ones.
func (s *Side) playIndex() int {
	best := -1
	bestScore := 0.0
	for i, c := range s.Hand {
		score := 200.0
		if s.Board[c.RowRole].alive() {
			score = -200
		}
		score += float64(rarityScore(c.Rarity) * 8)
		score += float64(rankWeight(c) * 2)
		score += float64(cardPower(c)) * 0.4
		if c.Abilities.BuildPhase != nil {
			score += 4
		}
		if c.RowRole == ruleset.Middle {
			score += 3
		}
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (s *Side) deploy(logs *[]string) {
	idx := s.playIndex()
	if idx < 0 {
		return
	}
	c := s.Hand[idx]
	if s.Board[c.RowRole].alive() {
		return
	}
	s.Hand = append(s.Hand[:idx:idx], s.Hand[idx+1:]...)
	s.Board[c.RowRole] = newUnit(c)
	*logs = append(*logs, fmt.Sprintf("%s deploys %s to %s.", s.Faction, c.Name, c.RowRole))
}

type tagSet map[string]bool

func unionTags(groups ...[]string) tagSet {
	out := make(tagSet)
	for _, g := range groups {
		for _, t := range g {
			out[t] = true
		}
	}
	return out
}

func (t tagSet) any(names ...string) bool {
	for _, n := range names {
		if t[n] {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// build resolves every living unit's build-phase ability.
func (s *Side) build(logs *[]string) {
	for _, row := range ruleset.RowRoles {
		u := s.Board[row]
		if !u.alive() {
			continue
		}
		u.Suppressed = 0
		u.Counter = 0

		ab := u.Card.Abilities.BuildPhase
		if ab == nil {
			continue
		}
		tags := unionTags(ab.Tags, u.Card.SynergyTags)
		var changes []string

		if tags["shield"] {
			gain := 1
			if tags["formation"] {
				gain = 2
			}
			u.Shield = clamp(u.Shield+gain, 0, u.Card.Stats.ShieldCap)
			changes = append(changes, fmt.Sprintf("shield +%d", gain))
		}
		if tags["charge"] {
			gain := 1
			if tags.any("probability", "ritual") {
				gain = 2
			}
			u.Charge = clamp(u.Charge+gain, 0, u.Card.Stats.ChargeCap)
			changes = append(changes, fmt.Sprintf("charge +%d", gain))
		}
		if tags.any("info", "mark", "precision") {
			u.Focus = clamp(u.Focus+1, 0, maxFocus)
			changes = append(changes, "focus +1")
		}
		if tags.any("loyalty", "formation") {
			u.Loyalty = clamp(u.Loyalty+1, 0, maxLoyalty)
			changes = append(changes, "loyalty +1")
		}
		if tags.any("counter", "intercept") {
			u.Counter = 1
			changes = append(changes, "counter ready")
		}
		if tags.any("chaos", "distortion") {
			switch s.rng.Int(0, 2) {
			case 0:
				u.Focus = clamp(u.Focus+1, 0, maxFocus)
				changes = append(changes, "chaos focus +1")
			case 1:
				u.Charge = clamp(u.Charge+1, 0, u.Card.Stats.ChargeCap)
				changes = append(changes, "chaos charge +1")
			default:
				u.Shield = clamp(u.Shield+1, 0, u.Card.Stats.ShieldCap)
				changes = append(changes, "chaos shield +1")
			}
		}

		if len(changes) > 0 {
			*logs = append(*logs, fmt.Sprintf("%s %s builds: %s.", s.Faction, u.Card.Name, strings.Join(changes, ", ")))
		}
	}
}

// targetRow is the enemy's unit facing row, else its first living unit in
// row order; ok is false when the enemy board is empty.
func targetRow(enemy *Side, facing ruleset.RowRole) (ruleset.RowRole, bool) {
	if enemy.Board[facing].alive() {
		return facing, true
	}
	for _, row := range ruleset.RowRoles {
		if enemy.Board[row].alive() {
			return row, true
		}
	}
	return "", false
}

// act makes the unit in row detonate against the enemy.
func (s *Side) act(enemy *Side, row ruleset.RowRole, logs *[]string) {
	u := s.Board[row]
	if !u.alive() {
		return
	}
	det := u.Card.Abilities.Detonation
	tags := unionTags(det.Tags, u.Card.SynergyTags)

	damage := max(0, u.Card.Stats.Atk-u.Suppressed)
	damage += det.Cost / 2
	damage += (rarityScore(u.Card.Rarity) - 1) / 2

	if tags["charge"] && u.Charge > 0 {
		damage++
		u.Charge--
	}
	if tags.any("precision", "mark", "foresight") && u.Focus > 0 {
		damage++
		u.Focus--
	}
	if tags.any("loyalty", "formation") && u.Loyalty > 0 {
		damage++
		u.Loyalty = max(0, u.Loyalty-1)
	}
	if tags.any("chaos", "distortion") {
		damage += s.rng.Int(-1, 2)
	}
	damage = max(0, damage)

	tr, ok := targetRow(enemy, row)
	if !ok {
		enemy.Nexus -= damage
		*logs = append(*logs, fmt.Sprintf("%s %s strikes the nexus for %d. (%s nexus %d)",
			s.Faction, u.Card.Name, damage, enemy.Faction, max(0, enemy.Nexus)))
		return
	}
	s.hit(enemy, row, tr, damage, tags, logs)
}

// hit applies damage from the unit in row to the enemy unit in tr, then
// resolves counters and knockouts on both sides.
func (s *Side) hit(enemy *Side, row, tr ruleset.RowRole, damage int, tags tagSet, logs *[]string) {
	attacker := s.Board[row]
	target := enemy.Board[tr]

	actual := max(0, damage)
	if target.Corrosion > 0 {
		actual += target.Corrosion
		target.Corrosion = max(0, target.Corrosion-1)
	}

	beforeShield := target.Shield
	absorbed := min(target.Shield, actual)
	target.Shield -= absorbed
	actual -= absorbed
	if actual > 0 {
		target.HP -= actual
	}

	if tags["suppress"] {
		target.Suppressed = 1
	}
	if tags["corrosion"] {
		target.Corrosion = clamp(target.Corrosion+1, 0, maxCorrosion)
	}
	if tags["steal"] {
		attacker.Charge = clamp(attacker.Charge+1, 0, attacker.Card.Stats.ChargeCap)
	}

	line := fmt.Sprintf("%s %s hits %s %s on %s for %d", s.Faction, attacker.Card.Name, enemy.Faction, target.Card.Name, tr, damage)
	if beforeShield > 0 {
		line += fmt.Sprintf(" (shield %d->%d)", beforeShield, target.Shield)
	}
	if actual > 0 {
		line += fmt.Sprintf(", HP %d left", max(0, target.HP))
	}
	*logs = append(*logs, line+".")

	if target.alive() && target.Counter > 0 {
		attacker.HP--
		*logs = append(*logs, fmt.Sprintf("%s %s counters for 1 damage.", enemy.Faction, target.Card.Name))
	}

	if target.HP <= 0 {
		enemy.Discard = append(enemy.Discard, target.Card)
		enemy.Board[tr] = nil
		enemy.KOs++
		*logs = append(*logs, fmt.Sprintf("%s %s is KO'd.", enemy.Faction, target.Card.Name))
	}

	if attacker.HP <= 0 {
		s.Discard = append(s.Discard, attacker.Card)
		s.Board[row] = nil
		*logs = append(*logs, fmt.Sprintf("%s %s falls from counterfire.", s.Faction, attacker.Card.Name))
	}
}

func rowSnapshot(s *Side, row ruleset.RowRole) string {
	u := s.Board[row]
	if !u.alive() {
		return fmt.Sprintf("%s: [empty]", row)
	}
	return fmt.Sprintf("%s: %s (HP %d, SH %d, CH %d, FC %d)", row, u.Card.Name, max(0, u.HP), u.Shield, u.Charge, u.Focus)
}

func boardSnapshot(left, right *Side) string {
	lines := []string{"Board snapshot:"}
	for _, row := range ruleset.RowRoles {
		lines = append(lines, fmt.Sprintf("- %s %s", left.Faction, rowSnapshot(left, row)))
		lines = append(lines, fmt.Sprintf("- %s %s", right.Faction, rowSnapshot(right, row)))
	}
	lines = append(lines, fmt.Sprintf("- Nexus: %s %d | %s %d", left.Faction, left.Nexus, right.Faction, right.Nexus))
	return strings.Join(lines, "\n")
}

// SideResult is one side's end-of-skirmish tally.
type SideResult struct {
	Faction    ruleset.Faction
	Nexus      int
	KOs        int
	BoardPower int
	Score      int
}

// Result is the outcome of a skirmish.
type Result struct {
	Options Options
	// Logs holds the opening draws followed by one multi-line entry per turn.
	Logs   []string
	Left   SideResult
	Right  SideResult
	Winner string
}

// Draw is the Winner value when neither side wins.
const Draw = "Draw"

func starterCards(index map[string]*card.Card, bundle *deckpack.Bundle, f ruleset.Faction) ([]*card.Card, error) {
	fp, ok := bundle.Packs[f]
	if !ok || fp == nil {
		return nil, fmt.Errorf("%w: no packs for %s", ErrMissingPack, f)
	}
	var out []*card.Card
	for _, id := range fp.Starter.All {
		if c, ok := index[id]; ok {
			out = append(out, c)
		}
	}
	if len(out) != deckpack.StarterSize {
		return nil, fmt.Errorf("%w: %s %s resolves %d of %d cards", ErrMissingPack, f, deckpack.StarterName, len(out), deckpack.StarterSize)
	}
	return out, nil
}

// Skirmish plays the two factions' Starter-21 packs against each other.
// Each side draws from its own fork ("left", "right") of a stream rooted at
// opts.Seed; the side with the odd turn number acts first.
//
// Precondition: bundle must be non-nil.
// Postcondition: the same inputs always produce the same Result.
func Skirmish(cards []*card.Card, bundle *deckpack.Bundle, opts Options) (*Result, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: no deck packs", ErrMissingPack)
	}
	turns := max(1, opts.Turns)
	opts.Turns = turns

	index := card.Index(cards)
	leftCards, err := starterCards(index, bundle, opts.Left)
	if err != nil {
		return nil, err
	}
	rightCards, err := starterCards(index, bundle, opts.Right)
	if err != nil {
		return nil, err
	}

	root := dice.NewStream(opts.Seed)
	left := newSide(opts.Left, leftCards, root.Fork("left"))
	right := newSide(opts.Right, rightCards, root.Fork("right"))
	over := func() bool { return left.Nexus <= 0 || right.Nexus <= 0 }

	var logs []string
	left.draw(openingHand, "draws opening hand", &logs)
	right.draw(openingHand, "draws opening hand", &logs)

	for turn := 1; turn <= turns; turn++ {
		turnLogs := []string{fmt.Sprintf("Turn %d", turn)}

		left.draw(1, "draws", &turnLogs)
		right.draw(1, "draws", &turnLogs)
		left.deploy(&turnLogs)
		right.deploy(&turnLogs)
		left.build(&turnLogs)
		right.build(&turnLogs)

		order := [2][2]*Side{{left, right}, {right, left}}
		if turn%2 == 0 {
			order = [2][2]*Side{{right, left}, {left, right}}
		}
	actors:
		for _, pair := range order {
			for _, row := range ruleset.RowRoles {
				pair[0].act(pair[1], row, &turnLogs)
				if over() {
					break actors
				}
			}
		}

		if turn <= snapshotTurns || turn == turns || over() {
			turnLogs = append(turnLogs, boardSnapshot(left, right))
		}
		logs = append(logs, strings.Join(turnLogs, "\n"))

		if over() {
			break
		}
	}

	res := &Result{
		Options: opts,
		Logs:    logs,
		Left:    tally(left),
		Right:   tally(right),
	}
	res.Winner = winner(res.Left, res.Right)
	return res, nil
}

func tally(s *Side) SideResult {
	return SideResult{Faction: s.Faction, Nexus: s.Nexus, KOs: s.KOs, BoardPower: s.BoardPower(), Score: s.Score()}
}

// winner prefers a nexus knockout, then the higher score.
func winner(l, r SideResult) string {
	switch {
	case l.Nexus <= 0 && r.Nexus > 0:
		return string(r.Faction)
	case r.Nexus <= 0 && l.Nexus > 0:
		return string(l.Faction)
	case l.Score > r.Score:
		return string(l.Faction)
	case r.Score > l.Score:
		return string(r.Faction)
	}
	return Draw
}
