package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stencil/config"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/service"
)

func testTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testTokenService(t)
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, "alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := testTokenService(t)

	access, refresh, err := svc.GenerateTokens(uuid.New(), "alice", "alice@example.com")
	require.NoError(t, err)

	// A refresh token must not pass access validation and vice versa;
	// the two are signed with different secrets.
	_, err = svc.ValidateToken(refresh)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_RejectsGarbageToken(t *testing.T) {
	svc := testTokenService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_VerificationRoundTrip(t *testing.T) {
	svc := testTokenService(t)
	userID := uuid.New()

	token, err := svc.EncodeVerification(userID, "alice@example.com", "123456", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := svc.DecodeVerification(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "123456", claims.Code)
}

func TestJWTService_VerificationExpired(t *testing.T) {
	svc := testTokenService(t)

	token, err := svc.EncodeVerification(uuid.New(), "alice@example.com", "123456", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = svc.DecodeVerification(token)
	assert.ErrorIs(t, err, domainerrors.ErrExpiredToken)
}
