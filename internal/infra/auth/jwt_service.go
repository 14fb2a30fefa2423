package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte

	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

// NewJWTService creates the HS256 token service. Each token family signs with
// its own secret; a missing secret aborts startup.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("access token secret is not configured")
	}
	if cfg.SecretKey.Refresh == "" {
		return nil, errors.New("refresh token secret is not configured")
	}
	if cfg.SecretKey.Reset == "" {
		return nil, errors.New("reset token secret is not configured")
	}

	svc := &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		resetSecret:   []byte(cfg.SecretKey.Reset),
		accessTTL:     24 * time.Hour,
		refreshTTL:    72 * time.Hour,
		resetTTL:      time.Hour,
	}

	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL != 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL != 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
		if cfg.Auth.ResetTokenTTL != 0 {
			svc.resetTTL = cfg.Auth.ResetTokenTTL
		}
	}

	return svc, nil
}

func (s *jwtService) GenerateAccessToken(userID uuid.UUID, role entity.Role) (string, error) {
	return s.generate(userID, role.String(), service.TokenTypeAccess, s.accessSecret, s.accessTTL)
}

func (s *jwtService) GenerateRefreshToken(userID uuid.UUID, role entity.Role) (string, error) {
	return s.generate(userID, role.String(), service.TokenTypeRefresh, s.refreshSecret, s.refreshTTL)
}

func (s *jwtService) GenerateResetToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, "", service.TokenTypeReset, s.resetSecret, s.resetTTL)
}

func (s *jwtService) generate(userID uuid.UUID, role string, tokenType service.TokenType, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Role: role,
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// ValidateToken verifies signature, then expiry, then structure. The parser
// checks the signature before claim validity, so a wrong-secret token always
// surfaces as invalid, never as expired.
func (s *jwtService) ValidateToken(tokenString string, tokenType service.TokenType) (*service.Claims, error) {
	claims := new(service.Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secretFor(tokenType), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.Wrap(err)
		}

		return nil, domainerrors.ErrTokenInvalid.Wrap(err)
	}
	if !token.Valid {
		return nil, domainerrors.ErrTokenInvalid
	}

	if claims.Type != string(tokenType) {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token type mismatch")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("subject is not a valid user id")
	}

	if tokenType != service.TokenTypeReset && !entity.Role(claims.Role).IsValid() {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unknown role claim")
	}

	claims.UserID = userID

	return claims, nil
}

func (s *jwtService) secretFor(tokenType service.TokenType) []byte {
	switch tokenType {
	case service.TokenTypeRefresh:
		return s.refreshSecret
	case service.TokenTypeReset:
		return s.resetSecret
	default:
		return s.accessSecret
	}
}

// HashToken returns the sha256 hex digest of the token for storage lookups.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}
