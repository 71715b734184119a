package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/events"
	"github.com/stackboard/stackboard/internal/identity"
	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// DefaultInvitationTTL is how long an invitation stays acceptable.
const DefaultInvitationTTL = 48 * time.Hour

var (
	// ErrInvitationNotPending rejects accept/decline on a settled invitation.
	ErrInvitationNotPending = errors.New("invitation service: invitation is not pending")
	// ErrInvitationExpired rejects acceptance past the expiry timestamp.
	ErrInvitationExpired = errors.New("invitation service: invitation expired")
	// ErrInvitationEmailMismatch rejects acceptance by a different user.
	ErrInvitationEmailMismatch = errors.New("invitation service: invitation addressed to a different email")
)

// InviteInput captures an invitation request.
type InviteInput struct {
	WorkspaceID string
	Email       string
	Role        string
	InviterID   string
	TTL         time.Duration
}

// InvitationService manages workspace invitations.
type InvitationService struct {
	store    *store.Store
	provider identity.Provider
	bus      *events.Bus
	now      func() time.Time
}

// NewInvitationService constructs an InvitationService.
func NewInvitationService(st *store.Store, provider identity.Provider, bus *events.Bus) (*InvitationService, error) {
	if st == nil {
		return nil, errors.New("invitation service: store is required")
	}
	if provider == nil {
		return nil, errors.New("invitation service: identity provider is required")
	}
	return &InvitationService{store: st, provider: provider, bus: bus, now: time.Now}, nil
}

// WithClock overrides the clock, primarily for tests.
func (s *InvitationService) WithClock(now func() time.Time) *InvitationService {
	if now != nil {
		s.now = now
	}
	return s
}

// Invite records a pending invitation for the email address.
func (s *InvitationService) Invite(ctx context.Context, input InviteInput) (*models.Invitation, error) {
	ctx = ensureContext(ctx)

	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, errors.New("invitation service: email is required")
	}
	if input.WorkspaceID == "" || input.InviterID == "" {
		return nil, errors.New("invitation service: workspace and inviter are required")
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}

	invitation := &models.Invitation{
		WorkspaceID: input.WorkspaceID,
		Email:       email,
		Role:        defaultIfEmpty(input.Role, models.RoleMember),
		Status:      models.InvitationPending,
		ExpiresAt:   s.now().Add(ttl),
		InviterID:   input.InviterID,
	}

	if err := s.store.Create(ctx, models.KindInvitation, invitation); err != nil {
		return nil, fmt.Errorf("invitation service: create invitation: %w", err)
	}

	if s.bus != nil {
		var workspace models.Workspace
		_ = s.store.Get(ctx, models.KindWorkspace, invitation.WorkspaceID, &workspace)
		s.bus.Publish(ctx, events.MemberInvited, events.MemberInvitedPayload{
			InvitationID:  invitation.ID,
			WorkspaceID:   invitation.WorkspaceID,
			WorkspaceName: workspace.Name,
			Email:         invitation.Email,
			Role:          invitation.Role,
			InviterID:     invitation.InviterID,
		})
	}

	return invitation, nil
}

// Accept turns a pending invitation into a membership for the given user.
// The status change and the membership grant are not reversible separately:
// expiry is checked first and expired invitations only have their status
// updated.
func (s *InvitationService) Accept(ctx context.Context, invitationID string, user *models.User) (*models.WorkspaceMember, error) {
	ctx = ensureContext(ctx)
	if user == nil {
		return nil, errors.New("invitation service: user is required")
	}

	var invitation models.Invitation
	if err := s.store.Get(ctx, models.KindInvitation, invitationID, &invitation); err != nil {
		return nil, fmt.Errorf("invitation service: load invitation: %w", err)
	}

	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}
	if !invitation.ExpiresAt.After(s.now()) {
		_ = s.store.Update(ctx, models.KindInvitation, invitation.ID, map[string]any{
			"status": models.InvitationExpired,
		})
		return nil, ErrInvitationExpired
	}
	if normalizeEmail(user.Email) != invitation.Email {
		return nil, ErrInvitationEmailMismatch
	}

	member, err := s.provider.EnsureMembership(ctx, invitation.WorkspaceID, user.ID, invitation.Role)
	if err != nil {
		return nil, fmt.Errorf("invitation service: grant membership: %w", err)
	}

	if err := s.store.Update(ctx, models.KindInvitation, invitation.ID, map[string]any{
		"status": models.InvitationAccepted,
	}); err != nil {
		return nil, fmt.Errorf("invitation service: mark accepted: %w", err)
	}

	return member, nil
}

// Decline marks a pending invitation declined.
func (s *InvitationService) Decline(ctx context.Context, invitationID string, user *models.User) error {
	ctx = ensureContext(ctx)
	if user == nil {
		return errors.New("invitation service: user is required")
	}

	var invitation models.Invitation
	if err := s.store.Get(ctx, models.KindInvitation, invitationID, &invitation); err != nil {
		return fmt.Errorf("invitation service: load invitation: %w", err)
	}
	if invitation.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}
	if normalizeEmail(user.Email) != invitation.Email {
		return ErrInvitationEmailMismatch
	}

	if err := s.store.Update(ctx, models.KindInvitation, invitation.ID, map[string]any{
		"status": models.InvitationDeclined,
	}); err != nil {
		return fmt.Errorf("invitation service: mark declined: %w", err)
	}
	return nil
}

// ListForWorkspace returns invitations for a workspace, newest first.
func (s *InvitationService) ListForWorkspace(ctx context.Context, workspaceID string) ([]models.Invitation, error) {
	ctx = ensureContext(ctx)

	var invitations []models.Invitation
	err := s.store.DB().WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("expires_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("invitation service: list invitations: %w", err)
	}
	return invitations, nil
}

// ListPendingForEmail returns open invitations addressed to the email.
func (s *InvitationService) ListPendingForEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	ctx = ensureContext(ctx)

	var invitations []models.Invitation
	err := s.store.DB().WithContext(ctx).
		Where("email = ? AND status = ? AND expires_at > ?",
			normalizeEmail(email), models.InvitationPending, s.now()).
		Find(&invitations).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invitation service: list pending invitations: %w", err)
	}
	return invitations, nil
}
