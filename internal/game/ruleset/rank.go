package ruleset

import "strconv"

// Version is stamped onto every generated card and deck-pack bundle.
const Version = "1.0.0"

// Rank bounds. Jokers carry rank 0 and a concealed mask rank in [MinRank, MaxRank].
const (
	JokerRank = 0
	MinRank   = 2
	MaxRank   = 14
)

// RanksAsc lists the numeric ranks in ascending order.
var RanksAsc = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

// BaseRankCounts is the canonical per-rank distribution of a 60-card faction.
func BaseRankCounts() map[int]int {
	return map[int]int{
		2: 4, 3: 4, 4: 4, 5: 4, 6: 4, 7: 4, 8: 4, 9: 4, 10: 4,
		11: 6, 12: 6, 13: 6, 14: 6,
	}
}

// RankName returns the display name for rank: "J", "Q", "K", "A", "JOKER",
// or the decimal number.
func RankName(rank int) string {
	switch rank {
	case JokerRank:
		return "JOKER"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	case 14:
		return "A"
	}
	return strconv.Itoa(rank)
}
