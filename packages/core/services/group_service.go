package services

import (
	"context"
	"log"

	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/store"

	"github.com/google/uuid"
)

type GroupService struct {
	groups  store.GroupRepository
	members store.MembershipRepository
}

func NewGroupService(groups store.GroupRepository, members store.MembershipRepository) *GroupService {
	return &GroupService{
		groups:  groups,
		members: members,
	}
}

// CreateGroup creates a ledger group owned by ownerID, who becomes its first
// active member.
func (s *GroupService) CreateGroup(ctx context.Context, ownerID string, req models.CreateGroupRequest) (*models.LedgerGroup, error) {
	group := &models.LedgerGroup{
		ID:      uuid.NewString(),
		Name:    req.Name,
		OwnerID: ownerID,
	}

	if err := s.groups.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	log.Printf("Group %s created by user %s", group.ID, ownerID)
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id string) (*models.LedgerGroup, error) {
	return s.groups.GetGroup(ctx, id)
}

// GetMembers lists every user of the group whose status is not idle.
func (s *GroupService) GetMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	if _, err := s.groups.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.members.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.GroupMember{}
	}
	return members, nil
}
