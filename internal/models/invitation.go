package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation statuses. Free-form values managed by business logic, not an
// enforced state machine.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
	InvitationExpired  = "expired"
)

// Invitation is a pending offer to join a workspace, addressed by email.
type Invitation struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	WorkspaceID string     `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	Email       string     `gorm:"not null;index" json:"email"`
	Role        string     `json:"role,omitempty"`
	Status      string     `gorm:"not null;default:'pending'" json:"status"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	InviterID   string     `gorm:"type:uuid;not null" json:"inviter_id"`
	Inviter     *User      `gorm:"foreignKey:InviterID;constraint:OnDelete:CASCADE" json:"inviter,omitempty"`
}

func (Invitation) TableName() string { return "invitation" }

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
