// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"baito/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// tokenInspector decodes access-token claims without verifying the signature.
// The client never holds the backend's signing key; whatever it reads here is
// a hint for display and expiry checks, and the /auth/me endpoint remains the
// authority on whether a token is actually valid.
type tokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector is the constructor for tokenInspector.
func NewTokenInspector() service.TokenInspector {
	return &tokenInspector{
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// Inspect parses the token string and extracts the client-readable claims.
func (s *tokenInspector) Inspect(tokenString string) (*service.TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}

	out := &service.TokenClaims{}

	if sub, err := claims.GetSubject(); err == nil {
		// The backend issues numeric user ids in the sub claim.
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			out.UserID = id
		}
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if userType, ok := claims["user_type"].(string); ok {
		out.UserType = userType
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}

// Expired reports whether the exp claim is in the past. Tokens without an exp
// claim never expire client-side; unparsable tokens count as expired.
func (s *tokenInspector) Expired(tokenString string, now time.Time) bool {
	claims, err := s.Inspect(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return false
	}

	return claims.ExpiresAt.Before(now)
}
