package standings

import (
	"cuebook-api/packages/core/models"
)

// TournamentAchievements returns the achievement of playerID in t. The list
// stays empty until every match of the tournament is completed, and for
// players who did not take part.
func TournamentAchievements(t models.Tournament, playerID string) ([]models.Achievement, error) {
	if !AllCompleted(t) {
		return []models.Achievement{}, nil
	}

	var furthest *models.Match
	for i := range t.Matches {
		m := &t.Matches[i]
		if !m.Stage.IsKnockout() || !m.Involves(playerID) {
			continue
		}
		if furthest == nil || m.Stage.Rank() > furthest.Stage.Rank() {
			furthest = m
		}
	}
	if furthest == nil && !participated(t, playerID) {
		return []models.Achievement{}, nil
	}

	achievement := models.Achievement{
		PlayerID:       playerID,
		TournamentID:   t.ID,
		TournamentName: t.Name,
		Kind:           models.AchievementGroupStage,
		Stage:          models.StageGroup,
	}

	if furthest != nil {
		achievement.Stage = furthest.Stage
		switch furthest.Stage {
		case models.StageFinal:
			winnerID, err := furthest.Winner()
			if err != nil {
				return nil, err
			}
			if winnerID == playerID {
				achievement.Kind = models.AchievementChampion
			} else {
				achievement.Kind = models.AchievementRunnerUp
			}
		case models.StageSemiFinal:
			achievement.Kind = models.AchievementSemiFinalist
		case models.StageQuarterFinal:
			achievement.Kind = models.AchievementQuarterFinalist
		}
	}

	return []models.Achievement{achievement}, nil
}

func participated(t models.Tournament, playerID string) bool {
	for _, id := range t.PlayerIDs() {
		if id == playerID {
			return true
		}
	}
	for _, m := range t.Matches {
		if m.Involves(playerID) {
			return true
		}
	}
	return false
}
