package services

import (
	"context"
	"fmt"

	"cuebook-api/packages/core/knockout"
	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/standings"
	"cuebook-api/packages/core/store"
)

type TournamentService struct {
	reader store.TournamentReader
	policy standings.Policy
}

func NewTournamentService(reader store.TournamentReader, policy standings.Policy) *TournamentService {
	return &TournamentService{
		reader: reader,
		policy: policy,
	}
}

type TournamentDetailResponse struct {
	models.Tournament
	Summary models.Summary `json:"summary"`
}

type BracketRound struct {
	Stage   models.Stage            `json:"stage"`
	Matches []knockout.BracketMatch `json:"matches"`
}

type BracketResponse struct {
	TournamentID string         `json:"tournament_id"`
	Champion     *string        `json:"champion,omitempty"`
	RunnerUp     *string        `json:"runner_up,omitempty"`
	Rounds       []BracketRound `json:"rounds"`
}

func (s *TournamentService) GetAllTournaments(ctx context.Context, page, pageSize int) (*models.PaginatedTournamentsResponse, error) {
	tournaments, err := s.reader.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.TournamentListItem, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, models.TournamentListItem{
			ID:       t.ID,
			Name:     t.Name,
			Slug:     t.Slug,
			StartsAt: t.StartsAt,
			Summary:  standings.Summary(t),
		})
	}

	start, end, totalPages := paginate(len(items), page, pageSize)

	return &models.PaginatedTournamentsResponse{
		Data:       items[start:end],
		Total:      int64(len(items)),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id string) (*TournamentDetailResponse, error) {
	t, err := s.reader.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TournamentDetailResponse{
		Tournament: *t,
		Summary:    standings.Summary(*t),
	}, nil
}

func (s *TournamentService) GetStandings(ctx context.Context, id string) ([]models.GroupStandings, error) {
	t, err := s.reader.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	tables, err := standings.ComputeTournamentStandings(*t, s.policy)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
	}
	return tables, nil
}

func (s *TournamentService) GetQualifiers(ctx context.Context, id string) ([]knockout.Qualifier, error) {
	t, err := s.reader.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.qualifiers(*t)
}

func (s *TournamentService) qualifiers(t models.Tournament) ([]knockout.Qualifier, error) {
	tables, err := standings.ComputeTournamentStandings(t, s.policy)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
	}
	q, err := knockout.Qualifiers(tables, t.AdvancementRules)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
	}
	if q == nil {
		q = []knockout.Qualifier{}
	}
	return q, nil
}

// GetBracket returns the knockout rounds with seat labels. While seats are
// still empty the current qualifiers are projected onto the quarter-finals.
func (s *TournamentService) GetBracket(ctx context.Context, id string) (*BracketResponse, error) {
	t, err := s.reader.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := knockout.Resolve(t.KnockoutMatches())
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", t.ID, err)
	}

	qualifiers, err := s.qualifiers(*t)
	if err != nil {
		return nil, err
	}

	response := &BracketResponse{
		TournamentID: t.ID,
		Champion:     result.Champion,
		RunnerUp:     result.RunnerUp,
		Rounds:       []BracketRound{},
	}

	for _, bm := range knockout.Bracket(result.Rounds, t.QuarterFinalRules, qualifiers) {
		n := len(response.Rounds)
		if n == 0 || response.Rounds[n-1].Stage != bm.Match.Stage {
			response.Rounds = append(response.Rounds, BracketRound{Stage: bm.Match.Stage})
			n++
		}
		response.Rounds[n-1].Matches = append(response.Rounds[n-1].Matches, bm)
	}

	return response, nil
}
