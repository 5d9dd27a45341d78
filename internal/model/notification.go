package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"` // User who receives the notification
	EntityID   uuid.UUID `gorm:"type:uuid" json:"entity_id"`              // ID of the member application
	EntityType string    `gorm:"size:50;not null" json:"entity_type"`     // 'application'
	Type       string    `gorm:"size:50;not null" json:"type"`            // 'member_pending', 'member_approved', 'member_rejected'
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
