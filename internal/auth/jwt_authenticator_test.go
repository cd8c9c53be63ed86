// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthenticator_Authenticate(t *testing.T) {
	priv, pubPEM := generateTestKeyPair(t)
	manager, err := NewJWTManager(JWTManagerConfig{PublicKeyPEM: pubPEM})
	require.NoError(t, err)

	authr := NewJWTAuthenticator(manager)

	t.Run("valid bearer jwt", func(t *testing.T) {
		token := signTestToken(t, priv, jwt.RegisteredClaims{
			Subject:   "operator-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
		r.Header.Set("Authorization", "Bearer "+token)

		subject, err := authr.Authenticate(r.Context(), r)
		require.NoError(t, err)
		assert.Equal(t, "operator-1", subject.ID)
		assert.Equal(t, AuthModeJWT, subject.AuthMethod)
	})

	t.Run("no credentials", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
		_, err := authr.Authenticate(r.Context(), r)
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("malformed token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		_, err := authr.Authenticate(r.Context(), r)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
