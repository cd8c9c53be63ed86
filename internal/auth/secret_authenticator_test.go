// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretAuthenticator_Authenticate(t *testing.T) {
	authr := NewSecretAuthenticator("top-secret")

	t.Run("valid bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
		r.Header.Set("Authorization", "Bearer top-secret")

		subject, err := authr.Authenticate(r.Context(), r)
		require.NoError(t, err)
		assert.Equal(t, "api-secret", subject.ID)
		assert.Equal(t, AuthModeSecret, subject.AuthMethod)
	})

	t.Run("wrong secret", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
		r.Header.Set("Authorization", "Bearer wrong")

		_, err := authr.Authenticate(r.Context(), r)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)

		_, err := authr.Authenticate(r.Context(), r)
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("non-bearer scheme ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		_, err := authr.Authenticate(r.Context(), r)
		assert.ErrorIs(t, err, ErrNoCredentials)
	})
}

func TestSecretAuthenticator_NameAndPriority(t *testing.T) {
	authr := NewSecretAuthenticator("s")
	assert.Equal(t, "secret", authr.Name())
	assert.Equal(t, 10, authr.Priority())
}
