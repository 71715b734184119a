package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
	"github.com/stackboard/stackboard/pkg/crypto"
)

const localProviderID = "credential"

// LocalProvider implements Provider with opaque session tokens and bcrypt
// credentials stored on account rows.
type LocalProvider struct {
	st       *store.Store
	ttl      time.Duration
	tokenLen int
	anon     bool
	mappings FieldMappings
	now      func() time.Time
	tokens   *JWTService
}

// NewLocalProvider constructs a LocalProvider from explicit configuration.
func NewLocalProvider(st *store.Store, cfg Config) (*LocalProvider, error) {
	if st == nil {
		return nil, errors.New("identity: store is required")
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	tokenLen := cfg.TokenLength
	if tokenLen <= 0 {
		tokenLen = 48
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	mappings := cfg.Mappings
	if mappings == nil {
		mappings = DefaultFieldMappings()
	}

	var tokens *JWTService
	if cfg.JWT.Secret != "" {
		jwtCfg := cfg.JWT
		if jwtCfg.Clock == nil {
			jwtCfg.Clock = now
		}
		svc, err := NewJWTService(jwtCfg)
		if err != nil {
			return nil, err
		}
		tokens = svc
	}

	return &LocalProvider{
		st:       st,
		ttl:      ttl,
		tokenLen: tokenLen,
		anon:     cfg.AllowAnonymous,
		mappings: mappings,
		now:      now,
		tokens:   tokens,
	}, nil
}

// Mappings exposes the external column-name contract for introspection.
func (p *LocalProvider) Mappings() FieldMappings {
	return p.mappings
}

// SignUp registers a new user with a hashed credential and opens a session.
func (p *LocalProvider) SignUp(ctx context.Context, input SignUpInput, meta SessionMetadata) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.New("identity: email is required")
	}
	if input.Password == "" {
		return nil, errors.New("identity: password is required")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}

	user := &models.User{
		Name:  strings.TrimSpace(input.Name),
		Email: email,
		Image: input.Image,
	}
	if user.Name == "" {
		user.Name = email
	}

	// User and credential row land in one transaction; a failure on either
	// leaves no half-registered user behind.
	err = p.st.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Account{
			AccountID:  user.ID,
			ProviderID: localProviderID,
			UserID:     user.ID,
			Password:   hash,
		}).Error
	})
	if err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return p.openSession(ctx, user, meta)
}

// SignIn validates the credential and opens a session.
func (p *LocalProvider) SignIn(ctx context.Context, creds Credentials, meta SessionMetadata) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := p.st.DB().WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("identity: load user: %w", err)
	}

	var account models.Account
	err = p.st.DB().WithContext(ctx).
		First(&account, "user_id = ? AND provider_id = ?", user.ID, localProviderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("identity: load account: %w", err)
	}

	if !crypto.VerifyPassword(account.Password, creds.Password) {
		return nil, ErrInvalidCredentials
	}

	return p.openSession(ctx, &user, meta)
}

// SignInAnonymous creates a throwaway demo user and opens a session for it.
func (p *LocalProvider) SignInAnonymous(ctx context.Context, meta SessionMetadata) (*AuthResult, error) {
	if !p.anon {
		return nil, errors.New("identity: anonymous sign-in is disabled")
	}

	name := generateDemoName()
	suffix, err := crypto.GenerateToken(6)
	if err != nil {
		return nil, fmt.Errorf("identity: generate demo suffix: %w", err)
	}

	user := &models.User{
		Name:        name,
		Email:       fmt.Sprintf("%s@anonymous.local", strings.ToLower(suffix)),
		IsAnonymous: true,
	}
	if err := p.st.Create(ctx, models.KindUser, user); err != nil {
		return nil, err
	}

	return p.openSession(ctx, user, meta)
}

// ValidateSession resolves a token to its session and user. Opaque session
// tokens are looked up directly; signed access tokens resolve through their
// session claim. Expired sessions are rejected but not deleted; cleanup is a
// maintenance concern.
func (p *LocalProvider) ValidateSession(ctx context.Context, token string) (*models.Session, *models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, ErrSessionNotFound
	}

	if p.tokens != nil && strings.Count(token, ".") == 2 {
		return p.validateAccessToken(ctx, token)
	}

	var session models.Session
	err := p.st.DB().WithContext(ctx).First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("identity: load session: %w", err)
	}

	if session.Expired(p.now()) {
		return nil, nil, ErrSessionExpired
	}

	var user models.User
	if err := p.st.Get(ctx, models.KindUser, session.UserID, &user); err != nil {
		return nil, nil, fmt.Errorf("identity: load session user: %w", err)
	}

	return &session, &user, nil
}

func (p *LocalProvider) validateAccessToken(ctx context.Context, token string) (*models.Session, *models.User, error) {
	claims, err := p.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}
	if claims.SessionID == "" {
		return nil, nil, ErrSessionNotFound
	}

	var session models.Session
	err = p.st.DB().WithContext(ctx).First(&session, "id = ?", claims.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("identity: load session: %w", err)
	}

	if session.Expired(p.now()) {
		return nil, nil, ErrSessionExpired
	}

	var user models.User
	if err := p.st.Get(ctx, models.KindUser, session.UserID, &user); err != nil {
		return nil, nil, fmt.Errorf("identity: load session user: %w", err)
	}

	return &session, &user, nil
}

// IssueAccessToken mints a short-lived signed token bound to the session.
// The session token itself stays opaque and longer lived.
func (p *LocalProvider) IssueAccessToken(ctx context.Context, session *models.Session, user *models.User) (*AccessToken, error) {
	if p.tokens == nil {
		return nil, ErrTokensDisabled
	}
	if session == nil || user == nil {
		return nil, errors.New("identity: session and user are required")
	}
	if session.Expired(p.now()) {
		return nil, ErrSessionExpired
	}

	signed, err := p.tokens.GenerateAccessToken(AccessTokenInput{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: session.ID,
	})
	if err != nil {
		return nil, err
	}

	return &AccessToken{
		Token:     signed,
		ExpiresAt: p.now().Add(p.tokens.ttl),
	}, nil
}

// RevokeSession deletes the session row for the given token.
func (p *LocalProvider) RevokeSession(ctx context.Context, token string) error {
	res := p.st.DB().WithContext(ctx).Where("token = ?", token).Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("identity: revoke session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SetActiveWorkspace records the workspace the session last operated in.
func (p *LocalProvider) SetActiveWorkspace(ctx context.Context, token, workspaceID string) error {
	session, _, err := p.ValidateSession(ctx, token)
	if err != nil {
		return err
	}
	return p.st.Update(ctx, models.KindSession, session.ID, map[string]any{
		"active_workspace_id": workspaceID,
	})
}

// EnsureMembership grants workspace membership idempotently.
func (p *LocalProvider) EnsureMembership(ctx context.Context, workspaceID, userID, role string) (*models.WorkspaceMember, error) {
	if role == "" {
		role = models.RoleMember
	}

	var existing models.WorkspaceMember
	err := p.st.DB().WithContext(ctx).
		First(&existing, "workspace_id = ? AND user_id = ?", workspaceID, userID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("identity: load membership: %w", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		Status:      "active",
	}
	if err := p.st.Create(ctx, models.KindWorkspaceMember, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMembership revokes a user's membership in a workspace.
func (p *LocalProvider) RemoveMembership(ctx context.Context, workspaceID, userID string) error {
	res := p.st.DB().WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&models.WorkspaceMember{})
	if res.Error != nil {
		return fmt.Errorf("identity: remove membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (p *LocalProvider) openSession(ctx context.Context, user *models.User, meta SessionMetadata) (*AuthResult, error) {
	token, err := crypto.GenerateToken(p.tokenLen)
	if err != nil {
		return nil, fmt.Errorf("identity: generate session token: %w", err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		ExpiresAt: p.now().Add(p.ttl),
	}
	if err := p.st.Create(ctx, models.KindSession, session); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Session: session, Token: token}, nil
}
