package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is an authenticated browser session. Expiry is passive: rows past
// ExpiresAt are simply rejected at validation time and swept by maintenance.
type Session struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	Token             string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID            string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	IPAddress         string    `json:"ip_address"`
	UserAgent         string    `json:"user_agent"`
	ActiveWorkspaceID *string   `json:"active_workspace_id,omitempty"`
	ExpiresAt         time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (Session) TableName() string { return "session" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
