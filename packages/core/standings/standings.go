// Package standings derives group tables, tournament summaries and player
// achievements from match results.
package standings

import (
	"fmt"
	"sort"

	"cuebook-api/packages/core/models"
)

// PlayedPolicy decides which matches count towards a standing.
type PlayedPolicy string

const (
	// PlayedCompleted counts completed matches only. Wins and losses then
	// partition Played.
	PlayedCompleted PlayedPolicy = "completed"
	// PlayedDefinedPlayers also counts matches with both players assigned
	// that are not finished yet.
	PlayedDefinedPlayers PlayedPolicy = "defined-players"
)

func ParsePlayedPolicy(v string) (PlayedPolicy, error) {
	switch PlayedPolicy(v) {
	case "", PlayedCompleted:
		return PlayedCompleted, nil
	case PlayedDefinedPlayers:
		return PlayedDefinedPlayers, nil
	}
	return "", fmt.Errorf("unknown played policy %q", v)
}

type Policy struct {
	WinPoints  int
	LossPoints int
	Played     PlayedPolicy
}

func DefaultPolicy() Policy {
	return Policy{WinPoints: 2, LossPoints: 0, Played: PlayedCompleted}
}

// ComputeGroupStandings builds one row per player who took part in at least
// one counted match, sorted by RankingComparator. Positions start at 1.
func ComputeGroupStandings(matches []models.Match, policy Policy) ([]models.Standing, error) {
	rows := make(map[string]*models.Standing)
	var order []string
	winsAgainst := make(map[string]map[string]int)

	row := func(playerID, groupID string) *models.Standing {
		s, ok := rows[playerID]
		if !ok {
			s = &models.Standing{PlayerID: playerID, GroupID: groupID}
			rows[playerID] = s
			order = append(order, playerID)
		}
		return s
	}

	for _, m := range matches {
		if !m.HasDefinedPlayers() {
			continue
		}
		if m.IsSelfMatch() {
			return nil, fmt.Errorf("match %s: %w", m.ID, models.ErrSelfMatch)
		}
		completed := m.IsCompleted()
		if !completed && policy.Played != PlayedDefinedPlayers {
			continue
		}

		p1 := row(*m.Player1ID, m.GroupID)
		p2 := row(*m.Player2ID, m.GroupID)
		p1.Played++
		p2.Played++

		if !completed {
			continue
		}

		winnerID, err := m.Winner()
		if err != nil {
			return nil, err
		}
		winner, loser := p1, p2
		if winnerID != p1.PlayerID {
			winner, loser = p2, p1
		}

		winner.Wins++
		winner.Points += policy.WinPoints
		loser.Losses++
		loser.Points += policy.LossPoints

		p1.MatchesWins += *m.Score1
		p1.MatchesLosses += *m.Score2
		p2.MatchesWins += *m.Score2
		p2.MatchesLosses += *m.Score1

		if winsAgainst[winner.PlayerID] == nil {
			winsAgainst[winner.PlayerID] = make(map[string]int)
		}
		winsAgainst[winner.PlayerID][loser.PlayerID]++
	}

	out := make([]models.Standing, 0, len(order))
	for _, id := range order {
		out = append(out, *rows[id])
	}

	cmp := RankingComparator(out, winsAgainst)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	for i := range out {
		out[i].Position = i + 1
	}

	return out, nil
}

// ComputeTournamentStandings returns the table of every group, in group order.
func ComputeTournamentStandings(t models.Tournament, policy Policy) ([]models.GroupStandings, error) {
	out := make([]models.GroupStandings, 0, len(t.Groups))
	for _, g := range t.Groups {
		rows, err := ComputeGroupStandings(t.GroupMatches(g.ID), policy)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", g.ID, err)
		}
		out = append(out, models.GroupStandings{
			GroupID:   g.ID,
			GroupName: g.Name,
			Standings: rows,
		})
	}
	return out, nil
}
