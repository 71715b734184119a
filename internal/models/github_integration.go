package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GithubIntegration links a project to a GitHub repository. The unique index
// on ProjectID enforces at most one integration per project.
type GithubIntegration struct {
	BaseModel

	ProjectID string   `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	RepositoryOwner string `gorm:"not null" json:"repository_owner"`
	RepositoryName  string `gorm:"not null" json:"repository_name"`
	InstallationID  *int64 `json:"installation_id,omitempty"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
}

func (GithubIntegration) TableName() string { return "github_integration" }

func (g *GithubIntegration) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
