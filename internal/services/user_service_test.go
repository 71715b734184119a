package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/store"
)

func TestUserUpdateEmailCascadesToReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	workspace := env.createWorkspace(t, "Board", owner)
	project := env.createProject(t, workspace.ID, "Backend")

	task, err := env.tasks.Create(ctx, CreateTaskInput{
		ProjectID:     project.ID,
		Title:         "Owned work",
		AssigneeEmail: owner.Email,
		ActorEmail:    owner.Email,
	})
	require.NoError(t, err)

	email := "ada.lovelace@example.com"
	updated, err := env.users.Update(ctx, owner.ID, UpdateUserInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)

	// The rename propagates to every email-keyed reference.
	reloaded, err := env.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.AssigneeEmail)
	assert.Equal(t, email, *reloaded.AssigneeEmail)

	feed, err := env.activities.ListForTask(ctx, task.ID)
	require.NoError(t, err)
	require.NotEmpty(t, feed)
	assert.Equal(t, email, feed[0].UserEmail)

	notifications, err := env.notifications.ListForUser(ctx, email, false)
	require.NoError(t, err)
	assert.NotEmpty(t, notifications)
}

func TestUserUpdateEmailRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ada := env.signUp(t, "Ada", "ada@example.com")
	env.signUp(t, "Bob", "bob@example.com")

	email := "bob@example.com"
	_, err := env.users.Update(ctx, ada.ID, UpdateUserInput{Email: &email})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrConstraintViolation))
}

func TestUserLookupsAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ada := env.signUp(t, "Ada", "ada@example.com")

	byEmail, err := env.users.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, byEmail.ID)

	require.NoError(t, env.users.Delete(ctx, ada.ID))

	_, err = env.users.GetByID(ctx, ada.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
