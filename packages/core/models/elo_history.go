package models

import "time"

// RatingChange records how one match moved the rating of one player.
type RatingChange struct {
	PlayerID     string     `json:"player_id"`
	MatchID      string     `json:"match_id"`
	TournamentID string     `json:"tournament_id"`
	OpponentID   string     `json:"opponent_id"`
	Won          bool       `json:"won"`
	EloBefore    float64    `json:"elo_before"`
	EloAfter     float64    `json:"elo_after"`
	EloChange    float64    `json:"elo_change"`
	PlayedAt     *time.Time `json:"played_at,omitempty"`
}
