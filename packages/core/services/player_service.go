package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/rating"
	"cuebook-api/packages/core/standings"
	"cuebook-api/packages/core/store"
)

// ErrPlayerNotRanked means a player of the current ranking is missing from
// the previous one.
var ErrPlayerNotRanked = errors.New("player missing from previous ranking")

type PlayerService struct {
	reader         store.TournamentReader
	previousWindow int
}

// NewPlayerService builds the service. previousWindow is the number of most
// recent matches left out when computing the previous rank.
func NewPlayerService(reader store.TournamentReader, previousWindow int) *PlayerService {
	return &PlayerService{
		reader:         reader,
		previousWindow: previousWindow,
	}
}

type leaderboard struct {
	rows    []models.PlayerStats
	index   map[string]int
	history []models.RatingChange
}

// ratedMatches collects every completed match of every tournament, oldest
// first. Unscheduled matches take the start time of their tournament.
func ratedMatches(tournaments []models.Tournament) []models.Match {
	starts := make(map[string]time.Time, len(tournaments))
	var matches []models.Match
	for _, t := range tournaments {
		starts[t.ID] = t.StartsAt
		for _, m := range t.Matches {
			if m.HasDefinedPlayers() && m.IsCompleted() {
				matches = append(matches, m)
			}
		}
	}

	rating.SortChronologically(matches, func(m models.Match) time.Time {
		return starts[m.TournamentID]
	})
	return matches
}

func (s *PlayerService) leaderboard(ctx context.Context) (*leaderboard, error) {
	players, err := s.reader.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	tournaments, err := s.reader.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(players))
	byID := make(map[string]models.Player, len(players))
	for i, p := range players {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	matches := ratedMatches(tournaments)

	ratings, history, err := rating.ComputeHistory(ids, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ratings: %w", err)
	}
	previous, err := rating.PreviousRatings(ids, matches, s.previousWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to compute previous ratings: %w", err)
	}
	previousRanks := rating.RankIndex(rating.Rank(previous))

	board := &leaderboard{
		index:   make(map[string]int, len(players)),
		history: history,
	}
	for _, r := range rating.Rank(ratings) {
		prev, ok := previousRanks[r.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotRanked, r.PlayerID)
		}
		board.index[r.PlayerID] = len(board.rows)
		board.rows = append(board.rows, models.PlayerStats{
			Player:       byID[r.PlayerID],
			Rating:       r.Rating,
			Rank:         r.Rank,
			PreviousRank: prev,
			RankDelta:    prev - r.Rank,
		})
	}

	for _, m := range matches {
		for _, id := range []string{*m.Player1ID, *m.Player2ID} {
			i, ok := board.index[id]
			if !ok {
				continue
			}
			row := &board.rows[i]
			won, lost, err := m.ScoresFor(id)
			if err != nil {
				return nil, err
			}
			row.Played++
			row.RacksWon += won
			row.RacksLost += lost
			if won > lost {
				row.Wins++
			} else {
				row.Losses++
			}
		}
	}

	return board, nil
}

func (s *PlayerService) GetAllPlayers(ctx context.Context, page, pageSize int) (*models.PaginatedPlayersResponse, error) {
	board, err := s.leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	start, end, totalPages := paginate(len(board.rows), page, pageSize)

	data := board.rows[start:end]
	if data == nil {
		data = []models.PlayerStats{}
	}

	return &models.PaginatedPlayersResponse{
		Data:       data,
		Total:      int64(len(board.rows)),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *PlayerService) GetPlayerStats(ctx context.Context, id string) (*models.PlayerStats, error) {
	if _, err := s.reader.GetPlayer(ctx, id); err != nil {
		return nil, err
	}

	board, err := s.leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := board.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotRanked, id)
	}
	stats := board.rows[i]
	return &stats, nil
}

// GetEloHistory returns the rating changes of a player, oldest first.
func (s *PlayerService) GetEloHistory(ctx context.Context, id string) ([]models.RatingChange, error) {
	if _, err := s.reader.GetPlayer(ctx, id); err != nil {
		return nil, err
	}

	board, err := s.leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	history := []models.RatingChange{}
	for _, change := range board.history {
		if change.PlayerID == id {
			history = append(history, change)
		}
	}
	return history, nil
}

// GetAchievements lists the furthest result of the player in every finished
// tournament, newest tournament first.
func (s *PlayerService) GetAchievements(ctx context.Context, id string) ([]models.Achievement, error) {
	if _, err := s.reader.GetPlayer(ctx, id); err != nil {
		return nil, err
	}

	tournaments, err := s.reader.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	achievements := []models.Achievement{}
	for _, t := range tournaments {
		found, err := standings.TournamentAchievements(t, id)
		if err != nil {
			return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
		}
		achievements = append(achievements, found...)
	}
	return achievements, nil
}
