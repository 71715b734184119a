package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// WorkspaceMember joins users to workspaces. The joined_at column name is
// part of the external identity contract and must not be renamed.
type WorkspaceMember struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Role        string     `gorm:"not null;default:'member'" json:"role"`
	Status      string     `json:"status,omitempty"`
	JoinedAt    time.Time  `gorm:"column:joined_at;not null" json:"joined_at"`
}

func (WorkspaceMember) TableName() string { return "workspace_member" }

func (m *WorkspaceMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
