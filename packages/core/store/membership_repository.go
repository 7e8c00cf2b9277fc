package store

import (
	"context"
	"errors"

	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormMembershipRepository struct {
	db *gorm.DB
}

func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) GetStatus(ctx context.Context, userID, groupID string) (membership.Status, error) {
	var member models.GroupMember

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return membership.StatusIdle, nil
		}
		return "", result.Error
	}

	return membership.ParseStatus(member.Status)
}

// CompareAndSetStatus issues a conditional UPDATE on status = from. A pair
// with no row yet gets an idle row first so the update has something to
// match.
func (r *GormMembershipRepository) CompareAndSetStatus(ctx context.Context, userID, groupID string, from, to membership.Status) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if from == membership.StatusIdle {
			row := models.GroupMember{
				UserID:  userID,
				GroupID: groupID,
				Status:  string(membership.StatusIdle),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&models.GroupMember{}).
			Where("user_id = ? AND group_id = ? AND status = ?", userID, groupID, string(from)).
			Update("status", string(to))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}
		return nil
	})
}

// ListMembers returns the membership rows of a group, optionally limited to
// the given statuses.
func (r *GormMembershipRepository) ListMembers(ctx context.Context, groupID string, statuses ...membership.Status) ([]models.GroupMember, error) {
	var members []models.GroupMember

	query := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query = query.Where("status IN ?", values)
	} else {
		query = query.Where("status <> ?", string(membership.StatusIdle))
	}

	if err := query.Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

type GormGroupRepository struct {
	db *gorm.DB
}

func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

func (r *GormGroupRepository) CreateGroup(ctx context.Context, group *models.LedgerGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		owner := models.GroupMember{
			UserID:  group.OwnerID,
			GroupID: group.ID,
			Status:  string(membership.StatusActive),
		}
		return tx.Create(&owner).Error
	})
}

func (r *GormGroupRepository) GetGroup(ctx context.Context, id string) (*models.LedgerGroup, error) {
	var group models.LedgerGroup

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}

	return &group, nil
}
