package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/store"
)

var ErrForbidden = errors.New("user is not allowed to perform this action")

type MembershipService struct {
	members store.MembershipRepository
	groups  store.GroupRepository
}

func NewMembershipService(members store.MembershipRepository, groups store.GroupRepository) *MembershipService {
	return &MembershipService{
		members: members,
		groups:  groups,
	}
}

// Apply performs action on the membership of userID in groupID on behalf of
// actorID. Requesting, answering an invite and leaving are done by the user
// themselves; every other action needs an active member of the group.
//
// The new status is written only if the stored one did not change since it
// was read; otherwise store.ErrConcurrentUpdate is returned and nothing is
// retried.
func (s *MembershipService) Apply(ctx context.Context, actorID, userID, groupID string, action membership.Action) (*models.MemberActionResponse, error) {
	if _, err := s.groups.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actorID, userID, groupID, action); err != nil {
		return nil, err
	}

	current, err := s.members.GetStatus(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	next, err := membership.Transition(current, action)
	if err != nil {
		return nil, err
	}

	if err := s.members.CompareAndSetStatus(ctx, userID, groupID, current, next); err != nil {
		return nil, err
	}

	log.Printf("Membership of user %s in group %s: %s -> %s (%s by %s)", userID, groupID, current, next, action, actorID)

	return &models.MemberActionResponse{
		UserID:         userID,
		GroupID:        groupID,
		Action:         string(action),
		PreviousStatus: string(current),
		Status:         string(next),
	}, nil
}

func (s *MembershipService) authorize(ctx context.Context, actorID, userID, groupID string, action membership.Action) error {
	if membership.SelfAction(action) {
		if actorID != userID {
			return fmt.Errorf("%w: only the user can %s", ErrForbidden, action)
		}
		return nil
	}

	status, err := s.members.GetStatus(ctx, actorID, groupID)
	if err != nil {
		return err
	}
	if status != membership.StatusActive {
		return fmt.Errorf("%w: %s needs an active member", ErrForbidden, action)
	}
	return nil
}
