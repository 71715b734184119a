// Package identity owns authentication and workspace membership as a
// capability: the rest of the application talks to the Provider interface and
// never touches the auth protocol itself. The bundled implementation stores
// its state in the shared domain model.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/stackboard/stackboard/internal/models"
)

// Session and credential errors surfaced by providers.
var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrSessionNotFound    = errors.New("identity: session not found")
	ErrSessionExpired     = errors.New("identity: session expired")
	ErrEmailTaken         = errors.New("identity: email already registered")
	ErrUserNotFound       = errors.New("identity: user not found")
	ErrTokensDisabled     = errors.New("identity: access tokens are not configured")
)

// DefaultSessionTTL is the fallback session lifetime.
const DefaultSessionTTL = 7 * 24 * time.Hour

// FieldMappings preserves the external column names an unmodified identity
// library expects when it shares these tables. They are fixed by the schema;
// the map exists so the contract is explicit configuration, not folklore.
type FieldMappings map[string]string

// DefaultFieldMappings returns the renames applied to the identity tables.
func DefaultFieldMappings() FieldMappings {
	return FieldMappings{
		"organization":              "workspace",
		"member":                    "workspace_member",
		"member.organizationId":     "workspace_id",
		"member.createdAt":          "joined_at",
		"invitation.organizationId": "workspace_id",
	}
}

// Config configures a Provider explicitly at startup. No process-wide
// mutable state is involved; construct once and pass down.
type Config struct {
	SessionTTL     time.Duration
	TokenLength    int
	AllowAnonymous bool
	Mappings       FieldMappings
	Clock          func() time.Time

	// JWT enables short-lived signed access tokens alongside the opaque
	// session token when a secret is configured.
	JWT JWTConfig
}

// Credentials carries an email/password pair for local sign-in.
type Credentials struct {
	Email    string
	Password string
}

// SignUpInput registers a new local user.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// SessionMetadata captures contextual information about the client.
type SessionMetadata struct {
	IPAddress string
	UserAgent string
}

// AuthResult bundles the authenticated user with their fresh session.
type AuthResult struct {
	User    *models.User
	Session *models.Session
	Token   string
}

// AccessToken is a short-lived signed token minted from an existing session.
type AccessToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provider is the capability interface the application depends on for
// authentication and workspace membership. Implementations own session
// issuance and validation; the domain model only supplies storage.
type Provider interface {
	SignUp(ctx context.Context, input SignUpInput, meta SessionMetadata) (*AuthResult, error)
	SignIn(ctx context.Context, creds Credentials, meta SessionMetadata) (*AuthResult, error)
	SignInAnonymous(ctx context.Context, meta SessionMetadata) (*AuthResult, error)

	ValidateSession(ctx context.Context, token string) (*models.Session, *models.User, error)
	RevokeSession(ctx context.Context, token string) error
	SetActiveWorkspace(ctx context.Context, token, workspaceID string) error
	IssueAccessToken(ctx context.Context, session *models.Session, user *models.User) (*AccessToken, error)

	EnsureMembership(ctx context.Context, workspaceID, userID, role string) (*models.WorkspaceMember, error)
	RemoveMembership(ctx context.Context, workspaceID, userID string) error
}
