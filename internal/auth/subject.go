// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package auth authenticates write requests against two possible identities:
// a static shared secret (API_SECRET) and an optional JWT, tried in priority
// order via MultiAuthenticator. GET routes are unauthenticated per the HTTP
// surface.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// AuthMode selects which authenticator(s) the middleware wires up.
type AuthMode string

const (
	// AuthModeNone disables authentication entirely (local/dev only).
	AuthModeNone AuthMode = "none"

	// AuthModeSecret requires the static API_SECRET bearer token.
	AuthModeSecret AuthMode = "secret"

	// AuthModeJWT requires a JWT validated against JWT_PUBLIC_KEY or JWT_JWKS_URL.
	AuthModeJWT AuthMode = "jwt"

	// AuthModeMulti tries the secret authenticator, then JWT.
	AuthModeMulti AuthMode = "multi"
)

// ParseAuthMode converts a string to AuthMode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "none", "":
		return AuthModeNone, nil
	case "secret":
		return AuthModeSecret, nil
	case "jwt":
		return AuthModeJWT, nil
	case "multi":
		return AuthModeMulti, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

// String returns the string representation of AuthMode.
func (m AuthMode) String() string {
	return string(m)
}

// Standard authentication errors.
var (
	// ErrNoCredentials indicates no credentials were provided.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials indicates credentials have expired.
	ErrExpiredCredentials = errors.New("credentials expired")

	// ErrAuthenticatorUnavailable indicates the auth provider is unreachable.
	ErrAuthenticatorUnavailable = errors.New("authenticator unavailable")
)

// Authenticator defines the interface for authentication providers.
type Authenticator interface {
	// Authenticate extracts and validates credentials from the request.
	Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error)

	// Name returns the authenticator's name for logging.
	Name() string

	// Priority returns the authenticator's priority for multi-mode.
	// Lower values are tried first.
	Priority() int
}

// AuthSubject is the normalized identity behind an authenticated write
// request: both authenticators (secret, JWT) produce this shape so handlers
// never need to branch on auth method.
type AuthSubject struct {
	// ID is the unique identifier for this subject: "api-secret" for the
	// shared-secret authenticator, or the JWT "sub" claim otherwise.
	ID string `json:"id"`

	// Issuer is the JWT "iss" claim, or "local" for the shared secret.
	Issuer string `json:"issuer,omitempty"`

	// AuthMethod indicates how the subject was authenticated.
	AuthMethod AuthMode `json:"auth_method"`

	// IssuedAt is when the token was issued (zero for the shared secret).
	IssuedAt int64 `json:"issued_at,omitempty"`

	// ExpiresAt is when the token expires (zero for the shared secret).
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// IsExpired checks if the authentication has expired.
func (s *AuthSubject) IsExpired() bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() > s.ExpiresAt
}
