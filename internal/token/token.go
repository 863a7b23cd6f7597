// Package token decodes session tokens into their claims. Decoding is
// deliberately unverified: signature verification is the backend's job,
// the client only needs the role and expiry encoded in the token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when a non-empty token cannot be parsed.
var ErrMalformed = errors.New("token: malformed token")

// Claims are the fields the client reads out of a session token.
type Claims struct {
	// Role is the access role, empty when the token does not carry one.
	Role string
	// ExpiresAt is the expiry instant; zero when the token has no exp claim.
	ExpiresAt time.Time
	// Subject is the account identifier, when present.
	Subject string
}

// Decode parses the claims out of token without verifying its signature.
// An empty token yields (nil, nil); a structurally invalid token yields
// an error. Callers deciding authentication state should use IsActive
// rather than interpreting the error.
func Decode(tok string) (*Claims, error) {
	if tok == "" {
		return nil, nil
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return nil, ErrMalformed
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// IsActive reports whether tok is a decodable token whose expiry is
// strictly after now. It never fails: empty, malformed, and expired
// tokens all report false.
func IsActive(tok string, now time.Time) bool {
	claims, err := Decode(tok)
	if err != nil || claims == nil {
		return false
	}
	if claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.After(now)
}
