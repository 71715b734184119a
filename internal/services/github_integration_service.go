package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// ErrIntegrationExists rejects linking a second repository to a project.
var ErrIntegrationExists = errors.New("github integration service: project already has an integration")

// ConnectRepositoryInput links a project to a GitHub repository.
type ConnectRepositoryInput struct {
	ProjectID       string
	RepositoryOwner string
	RepositoryName  string
	InstallationID  *int64
}

// UpdateIntegrationInput carries a partial integration edit.
type UpdateIntegrationInput struct {
	RepositoryOwner *string
	RepositoryName  *string
	InstallationID  *int64
	IsActive        *bool
}

// GithubIntegrationService manages the one-per-project repository links.
type GithubIntegrationService struct {
	store *store.Store
}

// NewGithubIntegrationService constructs a GithubIntegrationService.
func NewGithubIntegrationService(st *store.Store) (*GithubIntegrationService, error) {
	if st == nil {
		return nil, errors.New("github integration service: store is required")
	}
	return &GithubIntegrationService{store: st}, nil
}

// Connect links a repository to a project. At most one integration may exist
// per project; the unique index turns a second attempt into
// ErrIntegrationExists.
func (s *GithubIntegrationService) Connect(ctx context.Context, input ConnectRepositoryInput) (*models.GithubIntegration, error) {
	ctx = ensureContext(ctx)

	owner := strings.TrimSpace(input.RepositoryOwner)
	name := strings.TrimSpace(input.RepositoryName)
	if input.ProjectID == "" || owner == "" || name == "" {
		return nil, errors.New("github integration service: project id, owner, and repository name are required")
	}

	integration := &models.GithubIntegration{
		ProjectID:       input.ProjectID,
		RepositoryOwner: owner,
		RepositoryName:  name,
		InstallationID:  input.InstallationID,
		IsActive:        true,
	}
	if err := s.store.Create(ctx, models.KindGithubIntegration, integration); err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return nil, ErrIntegrationExists
		}
		return nil, fmt.Errorf("github integration service: connect repository: %w", err)
	}
	return integration, nil
}

// GetForProject returns the project's integration, or store.ErrNotFound.
func (s *GithubIntegrationService) GetForProject(ctx context.Context, projectID string) (*models.GithubIntegration, error) {
	ctx = ensureContext(ctx)

	var integration models.GithubIntegration
	err := s.store.DB().WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&integration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("github integration service: %w", store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("github integration service: load integration: %w", err)
	}
	return &integration, nil
}

// Update applies a partial edit to an integration.
func (s *GithubIntegrationService) Update(ctx context.Context, integrationID string, input UpdateIntegrationInput) (*models.GithubIntegration, error) {
	ctx = ensureContext(ctx)

	updates := map[string]any{}
	if input.RepositoryOwner != nil {
		owner := strings.TrimSpace(*input.RepositoryOwner)
		if owner == "" {
			return nil, errors.New("github integration service: repository owner cannot be empty")
		}
		updates["repository_owner"] = owner
	}
	if input.RepositoryName != nil {
		name := strings.TrimSpace(*input.RepositoryName)
		if name == "" {
			return nil, errors.New("github integration service: repository name cannot be empty")
		}
		updates["repository_name"] = name
	}
	if input.InstallationID != nil {
		updates["installation_id"] = *input.InstallationID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.store.Update(ctx, models.KindGithubIntegration, integrationID, updates); err != nil {
			return nil, fmt.Errorf("github integration service: update integration: %w", err)
		}
	}

	var integration models.GithubIntegration
	if err := s.store.Get(ctx, models.KindGithubIntegration, integrationID, &integration); err != nil {
		return nil, fmt.Errorf("github integration service: reload integration: %w", err)
	}
	return &integration, nil
}

// Disconnect removes the project's repository link.
func (s *GithubIntegrationService) Disconnect(ctx context.Context, integrationID string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindGithubIntegration, integrationID); err != nil {
		return fmt.Errorf("github integration service: disconnect: %w", err)
	}
	return nil
}
