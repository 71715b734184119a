package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// ErrProjectNotPublic guards the unauthenticated public-project endpoint.
var ErrProjectNotPublic = errors.New("project service: project is not public")

// CreateProjectInput captures the attributes required to create a project.
type CreateProjectInput struct {
	WorkspaceID string
	Name        string
	Slug        string
	Icon        string
	Description string
	IsPublic    bool
}

// UpdateProjectInput represents mutable project fields.
type UpdateProjectInput struct {
	Name        *string
	Slug        *string
	Icon        *string
	Description *string
	IsPublic    *bool
}

// ProjectService manages projects within workspaces.
type ProjectService struct {
	store *store.Store
}

// NewProjectService constructs a ProjectService.
func NewProjectService(st *store.Store) (*ProjectService, error) {
	if st == nil {
		return nil, errors.New("project service: store is required")
	}
	return &ProjectService{store: st}, nil
}

// Create registers a project in a workspace.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("project service: name is required")
	}
	if input.WorkspaceID == "" {
		return nil, errors.New("project service: workspace id is required")
	}

	project := &models.Project{
		WorkspaceID: input.WorkspaceID,
		Name:        name,
		Slug:        slugify(defaultIfEmpty(input.Slug, name)),
		Icon:        defaultIfEmpty(strings.TrimSpace(input.Icon), "Layout"),
		Description: strings.TrimSpace(input.Description),
		IsPublic:    input.IsPublic,
	}

	if err := s.store.Create(ctx, models.KindProject, project); err != nil {
		return nil, fmt.Errorf("project service: create project: %w", err)
	}
	return project, nil
}

// GetByID loads a project.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	ctx = ensureContext(ctx)

	var project models.Project
	if err := s.store.Get(ctx, models.KindProject, id, &project); err != nil {
		return nil, fmt.Errorf("project service: get project: %w", err)
	}
	return &project, nil
}

// GetPublic loads a project only when it is marked public. Used by the
// unauthenticated share endpoint.
func (s *ProjectService) GetPublic(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.IsPublic {
		return nil, ErrProjectNotPublic
	}
	return project, nil
}

// ListForWorkspace returns the projects of a workspace.
func (s *ProjectService) ListForWorkspace(ctx context.Context, workspaceID string) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	var projects []models.Project
	err := s.store.DB().WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("project service: list projects: %w", err)
	}
	return projects, nil
}

// Update applies a partial update.
func (s *ProjectService) Update(ctx context.Context, id string, input UpdateProjectInput) (*models.Project, error) {
	ctx = ensureContext(ctx)

	patch := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("project service: name cannot be empty")
		}
		patch["name"] = name
	}
	if input.Slug != nil {
		patch["slug"] = slugify(*input.Slug)
	}
	if input.Icon != nil {
		patch["icon"] = defaultIfEmpty(strings.TrimSpace(*input.Icon), "Layout")
	}
	if input.Description != nil {
		patch["description"] = strings.TrimSpace(*input.Description)
	}
	if input.IsPublic != nil {
		patch["is_public"] = *input.IsPublic
	}

	if len(patch) > 0 {
		if err := s.store.Update(ctx, models.KindProject, id, patch); err != nil {
			return nil, fmt.Errorf("project service: update project: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the project and cascades into its tasks (with their time
// entries, activities, labels) and its GitHub integration.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindProject, id); err != nil {
		return fmt.Errorf("project service: delete project: %w", err)
	}
	return nil
}
