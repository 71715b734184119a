package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationReadLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.signUp(t, "Ada", "ada@example.com")

	first, err := env.notifications.Create(ctx, CreateNotificationInput{
		UserEmail: user.Email,
		Title:     "First",
	})
	require.NoError(t, err)
	assert.Equal(t, NotificationTypeInfo, first.Type)

	_, err = env.notifications.Create(ctx, CreateNotificationInput{
		UserEmail: user.Email,
		Title:     "Second",
	})
	require.NoError(t, err)

	count, err := env.notifications.UnreadCount(ctx, user.Email)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, env.notifications.MarkRead(ctx, first.ID))

	unread, err := env.notifications.ListForUser(ctx, user.Email, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Second", unread[0].Title)

	require.NoError(t, env.notifications.MarkUnread(ctx, first.ID))
	count, err = env.notifications.UnreadCount(ctx, user.Email)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, env.notifications.MarkAllRead(ctx, user.Email))
	count, err = env.notifications.UnreadCount(ctx, user.Email)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, env.notifications.Delete(ctx, first.ID))
	all, err := env.notifications.ListForUser(ctx, user.Email, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNotificationCreateValidatesRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notifications.Create(ctx, CreateNotificationInput{Title: "No recipient"})
	require.Error(t, err)

	user := env.signUp(t, "Ada", "ada@example.com")
	_, err = env.notifications.Create(ctx, CreateNotificationInput{UserEmail: user.Email})
	require.Error(t, err)
}
