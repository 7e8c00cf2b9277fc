package standings

import (
	"cuebook-api/packages/core/models"
)

func played(id string, stage models.Stage, p1, p2 string, s1, s2 int) models.Match {
	return models.Match{
		ID:        id,
		Stage:     stage,
		Player1ID: &p1,
		Player2ID: &p2,
		Score1:    &s1,
		Score2:    &s2,
	}
}

func inGroup(groupID string, m models.Match) models.Match {
	m.GroupID = groupID
	return m
}

func pending(id string, stage models.Stage, p1, p2 string) models.Match {
	return models.Match{ID: id, Stage: stage, Player1ID: &p1, Player2ID: &p2}
}

// cupTournament has two groups, a full knockout bracket and a group-stage
// only player "I".
func cupTournament() models.Tournament {
	return models.Tournament{
		ID:   "cup",
		Name: "Spring Cup",
		Groups: []models.Group{
			{ID: "ga", Name: "Group A", PlayerIDs: []string{"A", "B", "C", "D"}},
			{ID: "gb", Name: "Group B", PlayerIDs: []string{"E", "F", "G", "H", "I"}},
		},
		Matches: []models.Match{
			inGroup("ga", played("g1", models.StageGroup, "A", "B", 5, 1)),
			inGroup("gb", played("g2", models.StageGroup, "E", "I", 5, 3)),
			played("qf1", models.StageQuarterFinal, "A", "H", 7, 2),
			played("qf2", models.StageQuarterFinal, "B", "G", 7, 6),
			played("qf3", models.StageQuarterFinal, "C", "F", 7, 0),
			played("qf4", models.StageQuarterFinal, "D", "E", 7, 5),
			played("sf1", models.StageSemiFinal, "A", "B", 9, 3),
			played("sf2", models.StageSemiFinal, "C", "D", 9, 8),
			played("f", models.StageFinal, "A", "C", 9, 11),
		},
	}
}
