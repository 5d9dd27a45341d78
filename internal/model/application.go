package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// ApprovalThreshold is the number of distinct admin votes required before a
// membership can be finalized.
const ApprovalThreshold = 2

// MemberApplication tracks one membership request through the approval
// workflow. Created at signup with status pending and an empty vote set,
// mutated only by the approval/rejection workflow, never hard-deleted.
type MemberApplication struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	DisplayName string `gorm:"size:100" json:"display_name"`
	Email       string `gorm:"size:100" json:"email"`

	Status        string `gorm:"size:20;default:pending;not null" json:"status"`
	ApprovalCount int    `gorm:"default:0;not null" json:"approval_count"`

	Votes []ApprovalVote `gorm:"foreignKey:ApplicationID" json:"votes,omitempty"`

	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedBy      *uuid.UUID `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *MemberApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ApprovalVote is one admin's vote on an application. The composite primary
// key makes the vote set a real set: inserting the same (application, admin)
// pair twice fails at the database, which is the AlreadyApproved conflict.
type ApprovalVote struct {
	ApplicationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"application_id"`
	AdminID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"admin_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
