package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/store"
)

func TestProjectCreateAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)

	project, err := env.projects.Create(ctx, CreateProjectInput{
		WorkspaceID: workspace.ID,
		Name:        "Mobile App",
	})
	require.NoError(t, err)
	assert.Equal(t, "mobile-app", project.Slug)
	assert.Equal(t, "Layout", project.Icon)
	assert.False(t, project.IsPublic)
}

func TestProjectGetPublicHidesPrivateProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)

	private := env.createProject(t, workspace.ID, "Private")
	public, err := env.projects.Create(ctx, CreateProjectInput{
		WorkspaceID: workspace.ID,
		Name:        "Public",
		IsPublic:    true,
	})
	require.NoError(t, err)

	got, err := env.projects.GetPublic(ctx, public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)

	_, err = env.projects.GetPublic(ctx, private.ID)
	assert.True(t, errors.Is(err, ErrProjectNotPublic))

	_, err = env.projects.GetPublic(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestProjectUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")
	task := env.createTask(t, project.ID, "Doomed with project")

	public := true
	updated, err := env.projects.Update(ctx, project.ID, UpdateProjectInput{IsPublic: &public})
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	require.NoError(t, env.projects.Delete(ctx, project.ID))

	_, err = env.projects.GetByID(ctx, project.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	_, err = env.tasks.GetByID(ctx, task.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
