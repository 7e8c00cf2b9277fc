// Package store reads tournaments and players, and persists ledger group
// memberships.
package store

import (
	"context"
	"errors"

	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGroupNotFound      = errors.New("group not found")
	// ErrInvalidTournament wraps a stored tournament that breaks the match
	// rules (scores past the race target, draws, a player facing themself).
	ErrInvalidTournament = errors.New("invalid tournament data")
	// ErrConcurrentUpdate is returned when the stored membership status is
	// no longer the one the transition was computed from.
	ErrConcurrentUpdate = errors.New("membership was changed concurrently")
)

// TournamentReader gives read access to tournaments and players.
type TournamentReader interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	// GetTournament accepts a tournament id or slug.
	GetTournament(ctx context.Context, idOrSlug string) (*models.Tournament, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
}

type MembershipRepository interface {
	// GetStatus returns idle when the user never interacted with the group.
	GetStatus(ctx context.Context, userID, groupID string) (membership.Status, error)
	// CompareAndSetStatus moves the membership from `from` to `to` only if
	// the stored status still equals `from`.
	CompareAndSetStatus(ctx context.Context, userID, groupID string, from, to membership.Status) error
	ListMembers(ctx context.Context, groupID string, statuses ...membership.Status) ([]models.GroupMember, error)
}

type GroupRepository interface {
	// CreateGroup stores the group and makes its owner an active member.
	CreateGroup(ctx context.Context, group *models.LedgerGroup) error
	GetGroup(ctx context.Context, id string) (*models.LedgerGroup, error)
}
