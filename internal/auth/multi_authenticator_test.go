// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	name     string
	priority int
	subject  *AuthSubject
	err      error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error) {
	return f.subject, f.err
}

func (f *fakeAuthenticator) Name() string { return f.name }

func (f *fakeAuthenticator) Priority() int { return f.priority }

func TestMultiAuthenticator_TriesInPriorityOrder(t *testing.T) {
	secret := &fakeAuthenticator{name: "secret", priority: 10, err: ErrNoCredentials}
	jwt := &fakeAuthenticator{name: "jwt", priority: 20, subject: &AuthSubject{ID: "jwt-subject"}}

	m := NewMultiAuthenticator(jwt, secret)

	r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
	subject, err := m.Authenticate(r.Context(), r)
	require.NoError(t, err)
	assert.Equal(t, "jwt-subject", subject.ID)
}

func TestMultiAuthenticator_StopsOnFatalError(t *testing.T) {
	secret := &fakeAuthenticator{name: "secret", priority: 10, err: ErrInvalidCredentials}
	jwt := &fakeAuthenticator{name: "jwt", priority: 20, subject: &AuthSubject{ID: "jwt-subject"}}

	m := NewMultiAuthenticator(secret, jwt)

	r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
	_, err := m.Authenticate(r.Context(), r)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestMultiAuthenticator_NoAuthenticators(t *testing.T) {
	m := NewMultiAuthenticator()

	r := httptest.NewRequest(http.MethodPost, "/playlists", http.NoBody)
	_, err := m.Authenticate(r.Context(), r)
	assert.ErrorIs(t, err, ErrNoCredentials)
}
