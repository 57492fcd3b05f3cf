package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// JWTManager verifies HS256 access tokens issued by the identity service.
// It can also mint them, which the CLI uses to hand operators a token.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTManager expects a secret of at least 32 bytes; config validation
// enforces that before the server starts.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken signs a token whose subject is userID and whose role
// claim decides access to the bulk routes.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	now := m.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken checks signature, issuer and expiry, and returns the
// subject and role claim.
func (m *JWTManager) ValidateAccessToken(raw string) (uuid.UUID, string, error) {
	if raw == "" {
		return uuid.Nil, "", errors.New("token is empty")
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenInvalidIssuer) {
			return uuid.Nil, "", fmt.Errorf("invalid issuer: %w", err)
		}
		return uuid.Nil, "", fmt.Errorf("parse token: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid subject: %w", err)
	}

	return userID, claims.Role, nil
}

// ValidateToken is the middleware-facing check. Every failure wraps
// domain.ErrUnauthorized, including tokens with a role this service does
// not know.
func (m *JWTManager) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := m.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", errors.Join(domain.ErrUnauthorized, err)
	}
	if !domain.UserRole(role).IsValid() {
		return uuid.Nil, "", fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, role)
	}
	return userID, role, nil
}
