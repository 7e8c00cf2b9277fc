package models

import (
	"errors"
	"fmt"
	"time"
)

// Stage identifies the phase of the tournament a match belongs to.
type Stage string

const (
	StageGroup        Stage = "group"
	StageQuarterFinal Stage = "quarter-final"
	StageSemiFinal    Stage = "semi-final"
	StageFinal        Stage = "final"
)

var (
	ErrNotCompleted     = errors.New("match is not completed")
	ErrDrawnMatch       = errors.New("match scores are equal")
	ErrPlayerNotInMatch = errors.New("player did not play this match")
	ErrSelfMatch        = errors.New("match has the same player in both seats")
)

// Valid reports whether s is one of the declared stages.
func (s Stage) Valid() bool {
	switch s {
	case StageGroup, StageQuarterFinal, StageSemiFinal, StageFinal:
		return true
	}
	return false
}

// RaceTarget returns the number of racks needed to win a match of this stage.
func (s Stage) RaceTarget() int {
	switch s {
	case StageGroup:
		return 5
	case StageQuarterFinal:
		return 7
	case StageSemiFinal:
		return 9
	case StageFinal:
		return 11
	}
	panic(fmt.Sprintf("models: unknown stage %q", string(s)))
}

// Rank orders stages from the group stage (1) to the final (4).
func (s Stage) Rank() int {
	switch s {
	case StageGroup:
		return 1
	case StageQuarterFinal:
		return 2
	case StageSemiFinal:
		return 3
	case StageFinal:
		return 4
	}
	panic(fmt.Sprintf("models: unknown stage %q", string(s)))
}

// IsKnockout is true for every stage after the group stage.
func (s Stage) IsKnockout() bool {
	return s != StageGroup
}

type Match struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	TournamentID string     `gorm:"size:64;not null;index" json:"tournament_id"`
	Stage        Stage      `gorm:"size:20;not null" json:"stage"`
	GroupID      string     `gorm:"size:64;index" json:"group_id,omitempty"` // group stage only
	Order        int        `gorm:"column:bracket_order;default:0" json:"order,omitempty"`
	Player1ID    *string    `gorm:"size:64" json:"player1_id,omitempty"`
	Player2ID    *string    `gorm:"size:64" json:"player2_id,omitempty"`
	Score1       *int       `json:"score1,omitempty"`
	Score2       *int       `json:"score2,omitempty"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
}

func (Match) TableName() string {
	return "tournament_matches"
}

// HasDefinedPlayers is true once both seats of the match are assigned.
func (m Match) HasDefinedPlayers() bool {
	return m.Player1ID != nil && m.Player2ID != nil
}

// IsSelfMatch is true when both seats hold the same player. Such a match is
// malformed.
func (m Match) IsSelfMatch() bool {
	return m.HasDefinedPlayers() && *m.Player1ID == *m.Player2ID
}

func (m Match) IsScheduled() bool {
	return m.ScheduledAt != nil
}

// IsCompleted is true when both scores are set and one of them reached the
// race target of the stage.
func (m Match) IsCompleted() bool {
	if m.Score1 == nil || m.Score2 == nil {
		return false
	}
	target := m.Stage.RaceTarget()
	return *m.Score1 == target || *m.Score2 == target
}

// Involves reports whether playerID holds one of the two seats.
func (m Match) Involves(playerID string) bool {
	return (m.Player1ID != nil && *m.Player1ID == playerID) ||
		(m.Player2ID != nil && *m.Player2ID == playerID)
}

// Winner returns the id of the player with the higher score.
func (m Match) Winner() (string, error) {
	w, _, err := m.result()
	return w, err
}

// Loser returns the id of the player with the lower score.
func (m Match) Loser() (string, error) {
	_, l, err := m.result()
	return l, err
}

func (m Match) result() (string, string, error) {
	if !m.HasDefinedPlayers() || !m.IsCompleted() {
		return "", "", fmt.Errorf("match %s: %w", m.ID, ErrNotCompleted)
	}
	switch {
	case *m.Score1 > *m.Score2:
		return *m.Player1ID, *m.Player2ID, nil
	case *m.Score2 > *m.Score1:
		return *m.Player2ID, *m.Player1ID, nil
	}
	return "", "", fmt.Errorf("match %s: %w", m.ID, ErrDrawnMatch)
}

// ScoresFor returns the racks won and conceded by playerID in this match.
func (m Match) ScoresFor(playerID string) (won, lost int, err error) {
	if m.Score1 == nil || m.Score2 == nil {
		return 0, 0, fmt.Errorf("match %s: %w", m.ID, ErrNotCompleted)
	}
	switch {
	case m.Player1ID != nil && *m.Player1ID == playerID:
		return *m.Score1, *m.Score2, nil
	case m.Player2ID != nil && *m.Player2ID == playerID:
		return *m.Score2, *m.Score1, nil
	}
	return 0, 0, fmt.Errorf("match %s, player %s: %w", m.ID, playerID, ErrPlayerNotInMatch)
}

// When returns the time used to order matches chronologically, falling back
// to the given time for unscheduled matches.
func (m Match) When(fallback time.Time) time.Time {
	if m.ScheduledAt != nil {
		return *m.ScheduledAt
	}
	return fallback
}
