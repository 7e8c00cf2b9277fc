// Package rating computes Elo ratings from scratch out of an ordered match
// history. Nothing is persisted: the same history always yields the same
// ratings.
package rating

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"cuebook-api/packages/core/models"
)

const (
	// InitialRating is the rating every player starts from.
	InitialRating = 1500.0
	// KFactor bounds how much a single match can move a rating.
	KFactor = 32.0
)

var (
	ErrIncompleteMatch = errors.New("match is not completed")
	ErrUnknownPlayer   = errors.New("player is not part of the rated population")
)

// Expected returns the probability that a player rated a beats a player
// rated b.
func Expected(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400))
}

// CalculateEloChange returns the rating changes of the winner and the loser.
func CalculateEloChange(winnerElo, loserElo float64) (float64, float64) {
	expectedWinner := Expected(winnerElo, loserElo)
	expectedLoser := Expected(loserElo, winnerElo)

	return KFactor * (1.0 - expectedWinner), KFactor * (0.0 - expectedLoser)
}

// ComputeRatings replays matches in the given order. matches must already be
// sorted chronologically (see SortChronologically); every match must be
// completed and decisive.
func ComputeRatings(playerIDs []string, matches []models.Match) (map[string]float64, error) {
	ratings, _, err := replay(playerIDs, matches, false)
	return ratings, err
}

// ComputeHistory replays matches like ComputeRatings and also returns one
// RatingChange per player per match, in replay order.
func ComputeHistory(playerIDs []string, matches []models.Match) (map[string]float64, []models.RatingChange, error) {
	return replay(playerIDs, matches, true)
}

// PreviousRatings computes the ratings as they were before the last n
// matches of the sequence. The n most recent matches are dropped globally,
// not per player.
func PreviousRatings(playerIDs []string, matches []models.Match, n int) (map[string]float64, error) {
	if n < 0 {
		n = 0
	}
	cut := len(matches) - n
	if cut < 0 {
		cut = 0
	}
	return ComputeRatings(playerIDs, matches[:cut])
}

func replay(playerIDs []string, matches []models.Match, withHistory bool) (map[string]float64, []models.RatingChange, error) {
	ratings := make(map[string]float64, len(playerIDs))
	for _, id := range playerIDs {
		ratings[id] = InitialRating
	}

	var history []models.RatingChange
	if withHistory {
		history = make([]models.RatingChange, 0, 2*len(matches))
	}

	for _, m := range matches {
		if !m.HasDefinedPlayers() || !m.IsCompleted() {
			return nil, nil, fmt.Errorf("match %s: %w", m.ID, ErrIncompleteMatch)
		}
		if m.IsSelfMatch() {
			return nil, nil, fmt.Errorf("match %s: %w", m.ID, models.ErrSelfMatch)
		}
		if *m.Score1 == *m.Score2 {
			return nil, nil, fmt.Errorf("match %s: %w", m.ID, models.ErrDrawnMatch)
		}

		winnerID, loserID := *m.Player1ID, *m.Player2ID
		if *m.Score2 > *m.Score1 {
			winnerID, loserID = loserID, winnerID
		}

		winnerElo, ok := ratings[winnerID]
		if !ok {
			return nil, nil, fmt.Errorf("match %s, player %s: %w", m.ID, winnerID, ErrUnknownPlayer)
		}
		loserElo, ok := ratings[loserID]
		if !ok {
			return nil, nil, fmt.Errorf("match %s, player %s: %w", m.ID, loserID, ErrUnknownPlayer)
		}

		winnerChange, loserChange := CalculateEloChange(winnerElo, loserElo)
		ratings[winnerID] = winnerElo + winnerChange
		ratings[loserID] = loserElo + loserChange

		if withHistory {
			history = append(history,
				models.RatingChange{
					PlayerID:     winnerID,
					MatchID:      m.ID,
					TournamentID: m.TournamentID,
					OpponentID:   loserID,
					Won:          true,
					EloBefore:    winnerElo,
					EloAfter:     ratings[winnerID],
					EloChange:    winnerChange,
					PlayedAt:     m.ScheduledAt,
				},
				models.RatingChange{
					PlayerID:     loserID,
					MatchID:      m.ID,
					TournamentID: m.TournamentID,
					OpponentID:   winnerID,
					Won:          false,
					EloBefore:    loserElo,
					EloAfter:     ratings[loserID],
					EloChange:    loserChange,
					PlayedAt:     m.ScheduledAt,
				},
			)
		}
	}

	return ratings, history, nil
}

// SortChronologically orders matches by time, ascending. Unscheduled matches
// take the time returned by fallback. Matches with the same time keep their
// relative input order.
func SortChronologically(matches []models.Match, fallback func(models.Match) time.Time) {
	sort.SliceStable(matches, func(i, j int) bool {
		ti := matches[i].When(fallback(matches[i]))
		tj := matches[j].When(fallback(matches[j]))
		return ti.Before(tj)
	})
}

type Ranked struct {
	PlayerID string
	Rating   float64
	Rank     int
}

// Rank sorts ratings descending and numbers them 1, 2, 3... Ranks are never
// shared: equal ratings are ordered by player id.
func Rank(ratings map[string]float64) []Ranked {
	out := make([]Ranked, 0, len(ratings))
	for id, r := range ratings {
		out = append(out, Ranked{PlayerID: id, Rating: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// RankIndex maps player id to rank.
func RankIndex(ranked []Ranked) map[string]int {
	idx := make(map[string]int, len(ranked))
	for _, r := range ranked {
		idx[r.PlayerID] = r.Rank
	}
	return idx
}
