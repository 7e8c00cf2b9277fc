package services

import (
	"context"

	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/standings"
	"cuebook-api/packages/core/store"
)

type StatsService struct {
	reader store.TournamentReader
}

func NewStatsService(reader store.TournamentReader) *StatsService {
	return &StatsService{
		reader: reader,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	players, err := s.reader.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	tournaments, err := s.reader.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalPlayers:     int64(len(players)),
		TotalTournaments: int64(len(tournaments)),
	}

	for _, t := range tournaments {
		summary := standings.Summary(t)
		stats.TotalMatches += int64(summary.TotalMatches)
		stats.CompletedMatches += int64(summary.CompletedMatches)
		if summary.Status == models.TournamentOngoing {
			stats.OngoingTournaments++
		}
	}

	return stats, nil
}
