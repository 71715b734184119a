package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a feed entry attached to a task (comment, status change,
// assignment, and similar). The actor is referenced by email and required.
type Activity struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	TaskID    string `gorm:"type:uuid;not null;index" json:"task_id"`
	Task      *Task  `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type      string `gorm:"not null" json:"type"`
	UserEmail string `gorm:"not null;index" json:"user_email"`
	User      *User  `gorm:"foreignKey:UserEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Content   string `json:"content,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Activity) TableName() string { return "activity" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
