package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// CreateWorkspaceInput captures the attributes required to open a workspace.
type CreateWorkspaceInput struct {
	Name        string
	Slug        string
	Logo        string
	Description string
	Metadata    map[string]any
	CreatorID   string
}

// UpdateWorkspaceInput represents mutable workspace fields.
type UpdateWorkspaceInput struct {
	Name        *string
	Slug        *string
	Logo        *string
	Description *string
}

// WorkspaceService manages workspace lifecycle and membership views.
type WorkspaceService struct {
	store    *store.Store
	provider identity.Provider
	bus      *events.Bus
}

// NewWorkspaceService constructs a WorkspaceService.
func NewWorkspaceService(st *store.Store, provider identity.Provider, bus *events.Bus) (*WorkspaceService, error) {
	if st == nil {
		return nil, errors.New("workspace service: store is required")
	}
	if provider == nil {
		return nil, errors.New("workspace service: identity provider is required")
	}
	return &WorkspaceService{store: st, provider: provider, bus: bus}, nil
}

// Create opens a workspace, grants the creator the owner role, and publishes
// the workspace.created event for downstream collaborators.
func (s *WorkspaceService) Create(ctx context.Context, input CreateWorkspaceInput) (*models.Workspace, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("workspace service: name is required")
	}
	if input.CreatorID == "" {
		return nil, errors.New("workspace service: creator id is required")
	}

	workspace := &models.Workspace{
		Name:        name,
		Logo:        strings.TrimSpace(input.Logo),
		Description: strings.TrimSpace(input.Description),
	}

	slug := slugify(defaultIfEmpty(input.Slug, name))
	if slug != "" {
		workspace.Slug = &slug
	}

	if input.Metadata != nil {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("workspace service: marshal metadata: %w", err)
		}
		workspace.Metadata = datatypes.JSON(data)
	}

	if err := s.store.Create(ctx, models.KindWorkspace, workspace); err != nil {
		return nil, fmt.Errorf("workspace service: create workspace: %w", err)
	}

	if _, err := s.provider.EnsureMembership(ctx, workspace.ID, input.CreatorID, models.RoleOwner); err != nil {
		return nil, fmt.Errorf("workspace service: grant owner membership: %w", err)
	}

	if s.bus != nil {
		var creator models.User
		_ = s.store.Get(ctx, models.KindUser, input.CreatorID, &creator)
		s.bus.Publish(ctx, events.WorkspaceCreated, events.WorkspaceCreatedPayload{
			WorkspaceID:   workspace.ID,
			WorkspaceName: workspace.Name,
			OwnerID:       input.CreatorID,
			OwnerEmail:    creator.Email,
		})
	}

	return workspace, nil
}

// GetByID loads a workspace with its members.
func (s *WorkspaceService) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	ctx = ensureContext(ctx)

	var workspace models.Workspace
	err := s.store.DB().WithContext(ctx).Preload("Members").First(&workspace, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("workspace service: get workspace: %w", store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("workspace service: get workspace: %w", err)
	}
	return &workspace, nil
}

// ListForUser returns every workspace the user is a member of.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID string) ([]models.Workspace, error) {
	ctx = ensureContext(ctx)

	var workspaces []models.Workspace
	err := s.store.DB().WithContext(ctx).
		Joins("JOIN workspace_member ON workspace_member.workspace_id = workspace.id").
		Where("workspace_member.user_id = ?", userID).
		Order("workspace.created_at").
		Find(&workspaces).Error
	if err != nil {
		return nil, fmt.Errorf("workspace service: list workspaces: %w", err)
	}
	return workspaces, nil
}

// Update applies a partial update to workspace fields.
func (s *WorkspaceService) Update(ctx context.Context, id string, input UpdateWorkspaceInput) (*models.Workspace, error) {
	ctx = ensureContext(ctx)

	patch := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("workspace service: name cannot be empty")
		}
		patch["name"] = name
	}
	if input.Slug != nil {
		slug := slugify(*input.Slug)
		if slug == "" {
			patch["slug"] = nil
		} else {
			patch["slug"] = slug
		}
	}
	if input.Logo != nil {
		patch["logo"] = strings.TrimSpace(*input.Logo)
	}
	if input.Description != nil {
		patch["description"] = strings.TrimSpace(*input.Description)
	}

	if len(patch) > 0 {
		if err := s.store.Update(ctx, models.KindWorkspace, id, patch); err != nil {
			return nil, fmt.Errorf("workspace service: update workspace: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the workspace. Members and invitations cascade away, but
// projects deliberately survive as orphans: the schema declares no
// workspace->project cascade and this layer must not invent one. Callers that
// want project cleanup must delete projects explicitly first.
func (s *WorkspaceService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindWorkspace, id); err != nil {
		return fmt.Errorf("workspace service: delete workspace: %w", err)
	}
	return nil
}

// Members lists the memberships of a workspace.
func (s *WorkspaceService) Members(ctx context.Context, workspaceID string) ([]models.WorkspaceMember, error) {
	ctx = ensureContext(ctx)

	var members []models.WorkspaceMember
	err := s.store.DB().WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("joined_at").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("workspace service: list members: %w", err)
	}
	return members, nil
}

// IsMember reports whether the user belongs to the workspace.
func (s *WorkspaceService) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	count, err := s.store.Count(ctx, models.KindWorkspaceMember,
		"workspace_id = ? AND user_id = ?", workspaceID, userID)
	if err != nil {
		return false, fmt.Errorf("workspace service: check membership: %w", err)
	}
	return count > 0, nil
}
