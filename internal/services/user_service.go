package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

// UpdateUserInput represents mutable profile fields. A non-nil Email triggers
// the cascade-update of every email-keyed reference in the same transaction.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Image *string
}

// UserService manages user profiles on top of the store contract.
type UserService struct {
	store *store.Store
}

// NewUserService constructs a UserService.
func NewUserService(st *store.Store) (*UserService, error) {
	if st == nil {
		return nil, errors.New("user service: store is required")
	}
	return &UserService{store: st}, nil
}

// GetByID loads a user by identifier.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	if err := s.store.Get(ctx, models.KindUser, id, &user); err != nil {
		return nil, fmt.Errorf("user service: get user: %w", err)
	}
	return &user, nil
}

// GetByEmail loads a user by their unique email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.store.DB().WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user service: get user by email: %w", store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("user service: get user by email: %w", err)
	}
	return &user, nil
}

// Update applies a partial profile update. Renaming the email is atomic with
// its cascades: either every dependent row sees the new address or none do.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	patch := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("user service: name cannot be empty")
		}
		patch["name"] = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return nil, errors.New("user service: email cannot be empty")
		}
		patch["email"] = email
	}
	if input.Image != nil {
		patch["image"] = strings.TrimSpace(*input.Image)
	}

	if len(patch) > 0 {
		if err := s.store.Update(ctx, models.KindUser, id, patch); err != nil {
			return nil, fmt.Errorf("user service: update user: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the user and, through the declared cascades, their sessions,
// accounts, memberships, sent invitations, assigned tasks, time entries,
// activities, and notifications.
func (s *UserService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, models.KindUser, id); err != nil {
		return fmt.Errorf("user service: delete user: %w", err)
	}
	return nil
}
