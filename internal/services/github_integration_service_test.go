package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/store"
)

func TestGithubIntegrationOnePerProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	integration, err := env.integrations.Connect(ctx, ConnectRepositoryInput{
		ProjectID:       project.ID,
		RepositoryOwner: "stackboard",
		RepositoryName:  "stackboard",
	})
	require.NoError(t, err)
	assert.True(t, integration.IsActive)

	_, err = env.integrations.Connect(ctx, ConnectRepositoryInput{
		ProjectID:       project.ID,
		RepositoryOwner: "stackboard",
		RepositoryName:  "other-repo",
	})
	assert.True(t, errors.Is(err, ErrIntegrationExists))

	got, err := env.integrations.GetForProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.ID, got.ID)
}

func TestGithubIntegrationUpdateAndDisconnect(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	integration, err := env.integrations.Connect(ctx, ConnectRepositoryInput{
		ProjectID:       project.ID,
		RepositoryOwner: "stackboard",
		RepositoryName:  "stackboard",
	})
	require.NoError(t, err)

	active := false
	installation := int64(42)
	updated, err := env.integrations.Update(ctx, integration.ID, UpdateIntegrationInput{
		IsActive:       &active,
		InstallationID: &installation,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.InstallationID)
	assert.Equal(t, int64(42), *updated.InstallationID)

	require.NoError(t, env.integrations.Disconnect(ctx, integration.ID))
	_, err = env.integrations.GetForProject(ctx, project.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGithubIntegrationFollowsProjectDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	_, err := env.integrations.Connect(ctx, ConnectRepositoryInput{
		ProjectID:       project.ID,
		RepositoryOwner: "stackboard",
		RepositoryName:  "stackboard",
	})
	require.NoError(t, err)

	require.NoError(t, env.projects.Delete(ctx, project.ID))
	_, err = env.integrations.GetForProject(ctx, project.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
