package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the root identity entity. Email doubles as a stable foreign key:
// tasks, time entries, activities, and notifications reference users by
// email with cascading update and delete rules, so renaming an email must
// propagate through the schema rather than being treated as display data.
type User struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`
	Image         string `json:"image,omitempty"`

	IsAnonymous bool `gorm:"default:false" json:"is_anonymous"`

	Sessions    []Session         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Accounts    []Account         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Memberships []WorkspaceMember `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName pins the external table name expected by the identity layer.
func (User) TableName() string { return "user" }

// BeforeCreate ensures a UUID is present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
