package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminators carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT bearer tokens.
type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Type     string    `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// VerificationClaims carries the OTP metadata embedded in email and
// password-reset verification tokens.
type VerificationClaims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Code   string    `json:"token"` // The 6-digit OTP code issued with this token.
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, username, email string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks the validity of an access token string.
	ValidateToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks the validity of a refresh token string,
	// including that its "type" claim marks it as a refresh token.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// EncodeVerification signs a time-limited verification token carrying
	// the OTP metadata for the email and password-reset flows.
	EncodeVerification(userID uuid.UUID, email, code string, expiresAt time.Time) (string, error)

	// DecodeVerification validates a verification token and recovers its
	// OTP metadata. Signature and expiry failures are returned as errors.
	DecodeVerification(tokenString string) (*VerificationClaims, error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
