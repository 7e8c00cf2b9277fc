package models

import (
	"time"
)

type Player struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Nickname  *string   `gorm:"size:255" json:"nickname,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Player) TableName() string {
	return "players"
}

// DisplayName prefers the nickname when one is set.
func (p Player) DisplayName() string {
	if p.Nickname != nil && *p.Nickname != "" {
		return *p.Nickname
	}
	return p.Name
}

// PlayerStats is the leaderboard row of a player, derived from the full
// match history on every read.
type PlayerStats struct {
	Player       Player  `json:"player"`
	Rating       float64 `json:"rating"`
	Rank         int     `json:"rank"`
	PreviousRank int     `json:"previous_rank"`
	RankDelta    int     `json:"rank_delta"` // positive when the player climbed
	Played       int     `json:"played"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	RacksWon     int     `json:"racks_won"`
	RacksLost    int     `json:"racks_lost"`
}

type PaginatedPlayersResponse struct {
	Data       []PlayerStats `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
