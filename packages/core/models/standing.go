package models

// Standing is the group stage record of a player. MatchesWins and
// MatchesLosses count racks won and racks conceded.
type Standing struct {
	PlayerID      string `json:"player_id"`
	GroupID       string `json:"group_id,omitempty"`
	Position      int    `json:"position"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Points        int    `json:"points"`
	MatchesWins   int    `json:"matches_wins"`
	MatchesLosses int    `json:"matches_losses"`
}

// RackDifference is racks won minus racks conceded.
func (s Standing) RackDifference() int {
	return s.MatchesWins - s.MatchesLosses
}

type GroupStandings struct {
	GroupID   string     `json:"group_id"`
	GroupName string     `json:"group_name"`
	Standings []Standing `json:"standings"`
}

// AchievementKind is the furthest result a player reached in a tournament.
type AchievementKind string

const (
	AchievementChampion        AchievementKind = "champion"
	AchievementRunnerUp        AchievementKind = "runner-up"
	AchievementSemiFinalist    AchievementKind = "semi-finalist"
	AchievementQuarterFinalist AchievementKind = "quarter-finalist"
	AchievementGroupStage      AchievementKind = "group-stage"
)

type Achievement struct {
	PlayerID       string          `json:"player_id"`
	TournamentID   string          `json:"tournament_id"`
	TournamentName string          `json:"tournament_name"`
	Kind           AchievementKind `json:"kind"`
	Stage          Stage           `json:"stage"`
}
