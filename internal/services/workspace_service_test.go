package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

func TestWorkspaceCreateGrantsOwnerAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Launch Pad", owner)

	require.NotNil(t, workspace.Slug)
	assert.Equal(t, "launch-pad", *workspace.Slug)

	members, err := env.workspaces.Members(ctx, workspace.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, models.RoleOwner, members[0].Role)

	// workspace.created fans out to a welcome notification for the owner.
	notifications, err := env.notifications.ListForUser(ctx, owner.Email, false)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, NotificationTypeWelcome, notifications[0].Type)
	assert.Equal(t, workspace.ID, notifications[0].ResourceID)
}

func TestWorkspaceListForUserScopesByMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ada := env.signUp(t, "Ada", "ada@example.com")
	bob := env.signUp(t, "Bob", "bob@example.com")

	mine := env.createWorkspace(t, "Mine", ada)
	env.createWorkspace(t, "Theirs", bob)

	workspaces, err := env.workspaces.ListForUser(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, mine.ID, workspaces[0].ID)
}

func TestWorkspaceUpdateAndSlugCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	first := env.createWorkspace(t, "First", owner)
	second := env.createWorkspace(t, "Second", owner)

	name := "Renamed"
	updated, err := env.workspaces.Update(ctx, second.ID, UpdateWorkspaceInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	// Slugs are unique across workspaces.
	slug := "first"
	_, err = env.workspaces.Update(ctx, second.ID, UpdateWorkspaceInput{Slug: &slug})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))
	_ = first
}

func TestWorkspaceDeleteLeavesProjectsBehind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Doomed", owner)
	project := env.createProject(t, workspace.ID, "Survivor")

	require.NoError(t, env.workspaces.Delete(ctx, workspace.ID))

	_, err := env.workspaces.GetByID(ctx, workspace.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	// Projects keep their workspace id even after the workspace is gone.
	survivor, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, workspace.ID, survivor.WorkspaceID)

	// Memberships do cascade away with the workspace.
	members, err := env.workspaces.Members(ctx, workspace.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
