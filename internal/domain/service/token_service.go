package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// TokenType discriminates the three token families. Each family is signed
// with its own secret and the type claim is checked on verification, so a
// token can never be replayed as another type.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
	TokenTypeReset   TokenType = "reset"
)

// Claims is the verified payload of a token. UserID is parsed from the
// registered subject during validation.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Role   string    `json:"role,omitempty"`
	Type   string    `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies the three token families.
type TokenService interface {
	GenerateAccessToken(userID uuid.UUID, role entity.Role) (string, error)
	GenerateRefreshToken(userID uuid.UUID, role entity.Role) (string, error)
	GenerateResetToken(userID uuid.UUID) (string, error)

	// ValidateToken verifies signature, expiry and structure, in that order.
	// An expired but well-signed token maps to the expired domain error;
	// everything else invalid maps to the generic invalid-token error.
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)

	// HashToken returns the sha256 hex digest used to key stored sessions.
	HashToken(token string) string

	// RefreshTokenTTL is exposed for cookie lifetimes and session expiry rows.
	RefreshTokenTTL() time.Duration
}
