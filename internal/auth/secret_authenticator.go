// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
)

// SecretAuthenticator implements Authenticator for a single static bearer
// secret (API_SECRET). It is the primary write-path authenticator; JWT is
// the optional alternative.
type SecretAuthenticator struct {
	secret []byte
}

// NewSecretAuthenticator creates a SecretAuthenticator comparing bearer
// tokens against secret using a constant-time comparison.
func NewSecretAuthenticator(secret string) *SecretAuthenticator {
	return &SecretAuthenticator{secret: []byte(secret)}
}

// Authenticate compares the request's bearer token against the configured secret.
func (a *SecretAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, ErrNoCredentials
	}

	if subtle.ConstantTimeCompare([]byte(token), a.secret) != 1 {
		return nil, ErrInvalidCredentials
	}

	return &AuthSubject{
		ID:         "api-secret",
		Issuer:     "local",
		AuthMethod: AuthModeSecret,
	}, nil
}

// Name returns the authenticator name.
func (a *SecretAuthenticator) Name() string {
	return string(AuthModeSecret)
}

// Priority returns the authenticator priority. The shared secret is tried
// before JWT.
func (a *SecretAuthenticator) Priority() int {
	return 10
}
