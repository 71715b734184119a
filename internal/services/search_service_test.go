package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesAcrossEntities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Billing Engine")
	task := env.createTask(t, project.ID, "Fix billing rounding")
	_, err := env.labels.Create(ctx, CreateLabelInput{TaskID: task.ID, Name: "billing"})
	require.NoError(t, err)

	results, err := env.search.Search(ctx, workspace.ID, "BILLING")
	require.NoError(t, err)
	require.Len(t, results.Projects, 1)
	require.Len(t, results.Tasks, 1)
	require.Len(t, results.Labels, 1)
	assert.Equal(t, project.ID, results.Projects[0].ID)
	assert.Equal(t, task.ID, results.Tasks[0].ID)
}

func TestSearchScopesToWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	mine := env.createWorkspace(t, "Mine", owner)
	other := env.createWorkspace(t, "Other", owner)

	env.createProject(t, mine.ID, "Shared Name")
	env.createProject(t, other.ID, "Shared Name")

	results, err := env.search.Search(ctx, mine.ID, "shared")
	require.NoError(t, err)
	assert.Len(t, results.Projects, 1)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	env.createProject(t, workspace.ID, "Anything")

	results, err := env.search.Search(ctx, workspace.ID, "   ")
	require.NoError(t, err)
	assert.Empty(t, results.Projects)
	assert.Empty(t, results.Tasks)
	assert.Empty(t, results.Labels)
}
