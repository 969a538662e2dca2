// Package token decodes LicitaDoc bearer tokens without verifying their
// signature. The output is display and routing data only; nothing decoded
// here grants access to anything; the server re-validates every call.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when the token cannot be decoded at all.
var ErrMalformed = errors.New("malformed bearer token")

// Claims is the payload shape issued by the LicitaDoc backend.
type Claims struct {
	Role   string `json:"role"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Decode parses the token payload without signature verification and
// without claim validation; expiry is the caller's decision via
// [Claims.Expired] so a clock can be injected in tests.
func Decode(raw string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Identifier returns the login identifier (the registered sub claim).
func (c *Claims) Identifier() string {
	return c.Subject
}

// Expired reports whether the exp claim is present and lies before now.
// Tokens without an exp claim never expire client-side.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now)
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
