package models

type Stats struct {
	TotalPlayers       int64 `json:"total_players"`
	TotalTournaments   int64 `json:"total_tournaments"`
	TotalMatches       int64 `json:"total_matches"`
	CompletedMatches   int64 `json:"completed_matches"`
	OngoingTournaments int64 `json:"ongoing_tournaments"`
}
