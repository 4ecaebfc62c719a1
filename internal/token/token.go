// Package token reads the claims of a session token without verifying its signature.
//
// The backend is the only party able to verify a token. The claims read here are a local
// hint only, e.g. to skip a network round trip for a token that expired already.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when the token is no parsable JWT.
var ErrNotJWT = errors.New("token is not a jwt")

// Claims of a session token as issued by the backend.
type Claims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Inspect parses the token claims without verifying the signature.
func Inspect(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNotJWT
	}

	claims := &Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Join(ErrNotJWT, err)
	}

	return claims, nil
}

// Expired reports whether raw is a JWT carrying an exp claim before now.
// Tokens that are no JWT or carry no exp claim are never reported as expired,
// the backend decides about them.
func Expired(raw string, now time.Time) bool {
	claims, err := Inspect(raw)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}

	return !now.Before(claims.ExpiresAt.Time)
}
