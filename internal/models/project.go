package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project groups tasks inside a workspace.
//
// WorkspaceID is indexed but carries no foreign-key constraint: the declared
// schema does not cascade workspace deletion into projects, and no constraint
// may be added silently. See the workspace model and DESIGN.md.
type Project struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	WorkspaceID string `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Slug        string `gorm:"not null;index" json:"slug"`
	Icon        string `gorm:"default:'Layout'" json:"icon"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`

	Tasks       []Task             `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tasks,omitempty"`
	Integration *GithubIntegration `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"integration,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
