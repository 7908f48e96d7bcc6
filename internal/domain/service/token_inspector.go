package service

import "time"

// TokenClaims is the client-readable subset of an access token's claims.
type TokenClaims struct {
	UserID    int64
	Email     string
	UserType  string
	ExpiresAt time.Time
}

// TokenInspector decodes a JWT's claims without verifying its signature. The
// client holds no signing key; claims are display and expiry hints only, and
// the server stays the authority on token validity.
type TokenInspector interface {
	// Inspect parses the token and returns its claims.
	Inspect(tokenString string) (*TokenClaims, error)

	// Expired reports whether the token's exp claim is in the past. An
	// unparsable token counts as expired.
	Expired(tokenString string, now time.Time) bool
}
