// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_Success(t *testing.T) {
	authr := NewSecretAuthenticator("s3cret")

	var gotSubject *AuthSubject
	handler := RequireAuth(authr, func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
	r.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()

	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotSubject)
	assert.Equal(t, "api-secret", gotSubject.ID)
}

func TestRequireAuth_Unauthorized(t *testing.T) {
	authr := NewSecretAuthenticator("s3cret")

	called := false
	handler := RequireAuth(authr, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
}
