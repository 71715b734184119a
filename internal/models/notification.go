package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app notification addressed to a user by email.
// ResourceID/ResourceType optionally point at the entity the notification
// concerns (a task, a workspace, an invitation).
type Notification struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	UserEmail string `gorm:"not null;index" json:"user_email"`
	User      *User  `gorm:"foreignKey:UserEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title        string `gorm:"not null" json:"title"`
	Content      string `json:"content,omitempty"`
	Type         string `gorm:"not null;default:'info'" json:"type"`
	IsRead       bool   `gorm:"default:false;index" json:"is_read"`
	ResourceID   string `json:"resource_id,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
