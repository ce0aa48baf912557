// Package report renders the human-readable run report and the art-prompt
// listing that accompany a generated card set.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/cardforge/internal/game/card"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
)

// Title heads every report.
const Title = "# Deck Realms Card Forge Report"

const topN = 10

// Input is everything a report summarises.
type Input struct {
	Seed     dice.Seed
	Counts   map[ruleset.Faction]int
	Cards    []*card.Card
	Warnings []string
}

// Markdown renders the report: totals, counts by faction, rarity and row,
// a per-faction rank breakdown, budget spend, the ten strongest cards by
// ATK+HP and the warnings.
func Markdown(in Input) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(Title)
	line("")
	line(fmt.Sprintf("- Seed: `%s`", in.Seed))
	line(p.Sprintf("- Total cards: **%d**", len(in.Cards)))
	line(fmt.Sprintf("- Configured target counts: `%s`", countsJSON(in.Counts)))
	line("")

	byFaction := make(map[ruleset.Faction]int)
	byRarity := make(map[ruleset.Rarity]int)
	byRow := make(map[ruleset.RowRole]int)
	for _, c := range in.Cards {
		byFaction[c.Faction]++
		byRarity[c.Rarity]++
		byRow[c.RowRole]++
	}

	line("## Counts by Faction")
	line("")
	var rows [][]string
	for _, f := range ruleset.Factions {
		target := "-"
		if n, ok := in.Counts[f]; ok {
			target = p.Sprintf("%d", n)
		}
		rows = append(rows, []string{string(f), p.Sprintf("%d", byFaction[f]), target})
	}
	line(table([]string{"Faction", "Count", "Target"}, rows))
	line("")

	line("## Counts by Rarity")
	line("")
	rows = rows[:0]
	for _, r := range ruleset.Rarities {
		rows = append(rows, []string{string(r), p.Sprintf("%d", byRarity[r])})
	}
	line(table([]string{"Rarity", "Count"}, rows))
	line("")

	line("## Counts by Row Role")
	line("")
	rows = rows[:0]
	for _, r := range ruleset.RowRoles {
		rows = append(rows, []string{string(r), p.Sprintf("%d", byRow[r])})
	}
	line(table([]string{"Row Role", "Count"}, rows))
	line("")

	line("## Faction Rank Breakdown")
	line("")
	for _, f := range ruleset.Factions {
		ranks := make(map[int]int)
		for _, c := range in.Cards {
			if c.Faction == f {
				ranks[c.Rank]++
			}
		}
		rows = rows[:0]
		if f == ruleset.Jokers {
			rows = append(rows, []string{ruleset.RankName(ruleset.JokerRank), p.Sprintf("%d", ranks[ruleset.JokerRank])})
		} else {
			for _, r := range ruleset.RanksAsc {
				rows = append(rows, []string{ruleset.RankName(r), p.Sprintf("%d", ranks[r])})
			}
		}
		line("### " + string(f))
		line("")
		line(table([]string{"Rank", "Count"}, rows))
		line("")
	}

	line("## Budget Spend")
	line("")
	lo, hi, avg := spend(in.Cards)
	line(table([]string{"Metric", "Value"}, [][]string{
		{"Min", p.Sprintf("%d", lo)},
		{"Max", p.Sprintf("%d", hi)},
		{"Avg", p.Sprintf("%.2f", avg)},
	}))
	line("")

	line(fmt.Sprintf("## Top %d Highest ATK+HP", topN))
	line("")
	rows = rows[:0]
	for _, c := range Strongest(in.Cards, topN) {
		rows = append(rows, []string{
			c.ID, c.Name, string(c.Faction), c.RankName,
			fmt.Sprint(c.Stats.Atk), fmt.Sprint(c.Stats.HP),
			string(c.RowRole), string(c.Rarity),
			fmt.Sprintf("%d/%d", c.Costs.PowerBudgetSpent, c.Costs.BudgetCap),
		})
	}
	line(table([]string{"Card ID", "Name", "Faction", "Rank", "ATK", "HP", "Row", "Rarity", "Budget"}, rows))
	line("")

	line("## Validation Warnings")
	line("")
	if len(in.Warnings) == 0 {
		line("- None")
	} else {
		for _, w := range in.Warnings {
			line("- " + w)
		}
	}
	return b.String()
}

// Strongest returns up to n cards ordered by ATK+HP, then ATK, then id.
func Strongest(cards []*card.Card, n int) []*card.Card {
	sorted := append([]*card.Card(nil), cards...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if sa, sb := a.Stats.Atk+a.Stats.HP, b.Stats.Atk+b.Stats.HP; sa != sb {
			return sa > sb
		}
		if a.Stats.Atk != b.Stats.Atk {
			return a.Stats.Atk > b.Stats.Atk
		}
		return a.ID < b.ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Prompts renders one "id<TAB>name<TAB>artPrompt" line per card.
func Prompts(cards []*card.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.ID)
		b.WriteByte('\t')
		b.WriteString(c.Name)
		b.WriteByte('\t')
		b.WriteString(c.ArtPrompt)
		b.WriteByte('\n')
	}
	if len(cards) == 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

func spend(cards []*card.Card) (lo, hi int, avg float64) {
	if len(cards) == 0 {
		return 0, 0, 0
	}
	lo, hi = cards[0].Costs.PowerBudgetSpent, cards[0].Costs.PowerBudgetSpent
	total := 0
	for _, c := range cards {
		s := c.Costs.PowerBudgetSpent
		lo = min(lo, s)
		hi = max(hi, s)
		total += s
	}
	return lo, hi, float64(total) / float64(len(cards))
}

func countsJSON(counts map[ruleset.Faction]int) string {
	parts := make([]string, 0, len(counts))
	for _, f := range ruleset.Factions {
		if n, ok := counts[f]; ok {
			parts = append(parts, fmt.Sprintf("%q:%d", f, n))
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func table(headers []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, "| "+strings.Join(headers, " | ")+" |")
	dividers := make([]string, len(headers))
	for i := range dividers {
		dividers[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(dividers, " | ")+" |")
	for _, r := range rows {
		lines = append(lines, "| "+strings.Join(r, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}
