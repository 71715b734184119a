package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Workspace is the tenant boundary grouping members, invitations, and
// projects.
//
// Deleting a workspace removes its members and invitations but deliberately
// leaves projects untouched: the schema declares no workspace->project
// cascade, so orphaned projects survive and must be handled by the caller.
type Workspace struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        *string        `gorm:"uniqueIndex" json:"slug,omitempty"`
	Logo        string         `json:"logo,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`

	Members     []WorkspaceMember `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invitations []Invitation      `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Workspace) TableName() string { return "workspace" }

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
