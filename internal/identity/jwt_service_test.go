package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	current := time.Now()
	svc, err := NewJWTService(JWTConfig{
		Secret: "test-secret",
		Issuer: "stackboard",
		Clock:  func() time.Time { return current },
	})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(AccessTokenInput{
		UserID:    "user-1",
		Email:     "ada@example.com",
		SessionID: "sess-1",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "ada@example.com", claims.Email)
	require.Equal(t, "sess-1", claims.SessionID)

	// Past expiry the token is rejected.
	current = current.Add(time.Hour)
	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTServiceRejectsBadInput(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)

	svc, err := NewJWTService(JWTConfig{Secret: "s"})
	require.NoError(t, err)

	_, err = svc.GenerateAccessToken(AccessTokenInput{})
	require.Error(t, err)

	_, err = svc.ValidateAccessToken("not-a-token")
	require.Error(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "different"})
	require.NoError(t, err)
	token, err := other.GenerateAccessToken(AccessTokenInput{UserID: "u"})
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}
