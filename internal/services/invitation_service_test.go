package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackboard/stackboard/internal/models"
)

func TestInvitationAcceptGrantsMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	invitee := env.signUp(t, "Bob", "bob@example.com")
	workspace := env.createWorkspace(t, "Shared", owner)

	invitation, err := env.invitations.Invite(ctx, InviteInput{
		WorkspaceID: workspace.ID,
		Email:       invitee.Email,
		Role:        models.RoleAdmin,
		InviterID:   owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, invitation.Status)

	// The invite fans out to an in-app notification.
	notifications, err := env.notifications.ListForUser(ctx, invitee.Email, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, NotificationTypeInvitation, notifications[0].Type)

	member, err := env.invitations.Accept(ctx, invitation.ID, invitee)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)

	isMember, err := env.workspaces.IsMember(ctx, workspace.ID, invitee.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	// Accepting twice fails once the invitation is settled.
	_, err = env.invitations.Accept(ctx, invitation.ID, invitee)
	assert.True(t, errors.Is(err, ErrInvitationNotPending))
}

func TestInvitationAcceptRejectsWrongEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	stranger := env.signUp(t, "Eve", "eve@example.com")
	workspace := env.createWorkspace(t, "Shared", owner)

	invitation, err := env.invitations.Invite(ctx, InviteInput{
		WorkspaceID: workspace.ID,
		Email:       "bob@example.com",
		InviterID:   owner.ID,
	})
	require.NoError(t, err)

	_, err = env.invitations.Accept(ctx, invitation.ID, stranger)
	assert.True(t, errors.Is(err, ErrInvitationEmailMismatch))
}

func TestInvitationExpiryBlocksAcceptance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	invitee := env.signUp(t, "Bob", "bob@example.com")
	workspace := env.createWorkspace(t, "Shared", owner)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.invitations.WithClock(func() time.Time { return now })

	invitation, err := env.invitations.Invite(ctx, InviteInput{
		WorkspaceID: workspace.ID,
		Email:       invitee.Email,
		InviterID:   owner.ID,
		TTL:         time.Hour,
	})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = env.invitations.Accept(ctx, invitation.ID, invitee)
	assert.True(t, errors.Is(err, ErrInvitationExpired))
}

func TestInvitationDeclineAndPendingListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.signUp(t, "Ada", "ada@example.com")
	invitee := env.signUp(t, "Bob", "bob@example.com")
	workspace := env.createWorkspace(t, "Shared", owner)

	invitation, err := env.invitations.Invite(ctx, InviteInput{
		WorkspaceID: workspace.ID,
		Email:       invitee.Email,
		InviterID:   owner.ID,
	})
	require.NoError(t, err)

	pending, err := env.invitations.ListPendingForEmail(ctx, invitee.Email)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, env.invitations.Decline(ctx, invitation.ID, invitee))

	pending, err = env.invitations.ListPendingForEmail(ctx, invitee.Email)
	require.NoError(t, err)
	assert.Empty(t, pending)

	isMember, err := env.workspaces.IsMember(ctx, workspace.ID, invitee.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}
