package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Tournament struct {
	ID                string            `gorm:"primaryKey;size:64" json:"id"`
	Name              string            `gorm:"size:255;not null" json:"name"`
	Slug              string            `gorm:"size:255;unique;not null" json:"slug"`
	StartsAt          time.Time         `json:"starts_at"`
	AdvancementRules  AdvancementRules  `gorm:"type:jsonb" json:"advancement_rules"`
	QuarterFinalRules QuarterFinalRules `gorm:"type:jsonb" json:"quarter_final_rules"`
	CreatedAt         time.Time         `json:"-"`
	UpdatedAt         time.Time         `json:"-"`

	// Relationships
	Groups  []Group `gorm:"foreignKey:TournamentID;references:ID" json:"groups"`
	Matches []Match `gorm:"foreignKey:TournamentID;references:ID" json:"matches"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// GroupMatches returns the group stage matches of group groupID, or of every
// group when groupID is empty.
func (t Tournament) GroupMatches(groupID string) []Match {
	var out []Match
	for _, m := range t.Matches {
		if m.Stage == StageGroup && (groupID == "" || m.GroupID == groupID) {
			out = append(out, m)
		}
	}
	return out
}

// KnockoutMatches returns the matches played after the group stage.
func (t Tournament) KnockoutMatches() []Match {
	var out []Match
	for _, m := range t.Matches {
		if m.Stage.IsKnockout() {
			out = append(out, m)
		}
	}
	return out
}

// PlayerIDs lists every player registered in one of the groups, in group order.
func (t Tournament) PlayerIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, g := range t.Groups {
		for _, id := range g.PlayerIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

type Group struct {
	ID           string   `gorm:"primaryKey;size:64" json:"id"`
	TournamentID string   `gorm:"size:64;not null;index" json:"-"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	PlayerIDs    []string `gorm:"-" json:"player_ids"`
}

func (Group) TableName() string {
	return "tournament_groups"
}

// GroupPlayer is the join row between a tournament group and a player.
type GroupPlayer struct {
	GroupID  string `gorm:"primaryKey;size:64"`
	PlayerID string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"default:0"`
}

func (GroupPlayer) TableName() string {
	return "tournament_group_players"
}

// AdvancementKind selects how players leave the group stage.
type AdvancementKind string

const (
	AdvanceTopPerGroup      AdvancementKind = "top-per-group"
	AdvanceBestAcrossGroups AdvancementKind = "best-across-groups"
)

// AdvancementRule describes one source of knockout qualifiers. TopPerGroup
// takes the first Count players of every group. BestAcrossGroups takes the
// best Count players found at standing Position across all groups.
type AdvancementRule struct {
	Kind     AdvancementKind `json:"kind"`
	Count    int             `json:"count"`
	Position int             `json:"position,omitempty"`
}

type AdvancementRules []AdvancementRule

func (r AdvancementRules) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal([]AdvancementRule{})
	}
	return json.Marshal(r)
}

func (r *AdvancementRules) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// QuarterFinalSelectionRule places qualifier number Seed into seat Slot (1 or
// 2) of the quarter-final with the given bracket order.
type QuarterFinalSelectionRule struct {
	MatchOrder int `json:"match_order"`
	Slot       int `json:"slot"`
	Seed       int `json:"seed"`
}

type QuarterFinalRules []QuarterFinalSelectionRule

func (r QuarterFinalRules) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal([]QuarterFinalSelectionRule{})
	}
	return json.Marshal(r)
}

func (r *QuarterFinalRules) Scan(value interface{}) error {
	return scanJSON(value, r)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return errors.New("type assertion to []byte failed")
}

// TournamentStatus is derived from how many matches are completed.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

type Summary struct {
	TotalGroups      int              `json:"total_groups"`
	TotalPlayers     int              `json:"total_players"`
	TotalMatches     int              `json:"total_matches"`
	CompletedMatches int              `json:"completed_matches"`
	Status           TournamentStatus `json:"status"`
}

// Responses

type TournamentListItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	StartsAt time.Time `json:"starts_at"`
	Summary  Summary   `json:"summary"`
}

type PaginatedTournamentsResponse struct {
	Data       []TournamentListItem `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
}
