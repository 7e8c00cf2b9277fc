package standings

import (
	"strings"

	"cuebook-api/packages/core/models"
)

// Comparator returns a negative value when a ranks above b, a positive value
// when b ranks above a and zero when it cannot tell them apart.
type Comparator func(a, b models.Standing) int

// CombineComparators chains comparators left to right. The first non-zero
// result wins.
func CombineComparators(cs ...Comparator) Comparator {
	return func(a, b models.Standing) int {
		for _, c := range cs {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

func desc(a, b int) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func ByPoints(a, b models.Standing) int {
	return desc(a.Points, b.Points)
}

func ByRackDifference(a, b models.Standing) int {
	return desc(a.RackDifference(), b.RackDifference())
}

func ByRacksWon(a, b models.Standing) int {
	return desc(a.MatchesWins, b.MatchesWins)
}

func ByPlayerID(a, b models.Standing) int {
	return strings.Compare(a.PlayerID, b.PlayerID)
}

// ByHeadToHead ranks tied players by the number of wins each one collected
// against the other players sharing its points total. Only meaningful after
// ByPoints in a chain.
func ByHeadToHead(rows []models.Standing, winsAgainst map[string]map[string]int) Comparator {
	score := make(map[string]int, len(rows))
	for _, a := range rows {
		for _, b := range rows {
			if a.PlayerID != b.PlayerID && a.Points == b.Points {
				score[a.PlayerID] += winsAgainst[a.PlayerID][b.PlayerID]
			}
		}
	}
	return func(a, b models.Standing) int {
		return desc(score[a.PlayerID], score[b.PlayerID])
	}
}

// RankingComparator is the order used for group tables: points, head to
// head among tied players, rack difference, racks won, then player id.
func RankingComparator(rows []models.Standing, winsAgainst map[string]map[string]int) Comparator {
	return CombineComparators(
		ByPoints,
		ByHeadToHead(rows, winsAgainst),
		ByRackDifference,
		ByRacksWon,
		ByPlayerID,
	)
}

// CrossGroupComparator ranks players from different groups, where head to
// head results do not exist.
var CrossGroupComparator = CombineComparators(
	ByPoints,
	ByRackDifference,
	ByRacksWon,
	ByPlayerID,
)
