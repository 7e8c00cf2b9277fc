package models

import (
	"time"
)

// LedgerGroup is a bill-splitting group. Membership of a user in a group is
// tracked by GroupMember.
type LedgerGroup struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   string    `gorm:"size:64;not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LedgerGroup) TableName() string {
	return "ledger_groups"
}

// GroupMember holds the membership status of one user in one group. There is
// exactly one row per (user, group) pair; a missing row reads as idle.
type GroupMember struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_group_members_user_group" json:"user_id"`
	GroupID   string    `gorm:"size:64;not null;uniqueIndex:idx_group_members_user_group" json:"group_id"`
	Status    string    `gorm:"size:20;not null;default:idle" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// DTOs

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type MemberActionRequest struct {
	Action string `json:"action" binding:"required"`
}

type MemberActionResponse struct {
	UserID         string `json:"user_id"`
	GroupID        string `json:"group_id"`
	Action         string `json:"action"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
}
