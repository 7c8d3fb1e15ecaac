package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// TokenTypeAccess marks short-lived bearer tokens.
	TokenTypeAccess = "access"
	// TokenTypeRefresh marks long-lived session tokens.
	TokenTypeRefresh = "refresh"
)

var (
	// ErrTokenExpired means the signature is valid but exp has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures and wrong token types.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	Type  string   `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrTokenInvalid, "subject is not a uuid")
	}

	return id, nil
}

// TokenService signs and verifies tokens. It never touches the database.
type TokenService interface {
	// GenerateAccessToken mints a signed access token. Each call yields a distinct token.
	GenerateAccessToken(userID uuid.UUID, email string, roles []string) (string, error)

	// GenerateRefreshToken mints a signed, unique refresh token.
	GenerateRefreshToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken checks signature, expiry and type. Errors wrap ErrTokenExpired or ErrTokenInvalid.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken is ValidateAccessToken for refresh tokens.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken returns the one-way digest persisted instead of the token.
	HashToken(token string) string

	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
