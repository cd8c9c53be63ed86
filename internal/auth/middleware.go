// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package auth

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/logging"
)

type subjectContextKey struct{}

// RequireAuth wraps next with bearer authentication via authr. GET routes
// never receive this middleware; it guards the write surface only.
func RequireAuth(authr Authenticator, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := authr.Authenticate(r.Context(), r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Str("authenticator", authr.Name()).Msg("authentication failed")
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), subjectContextKey{}, subject)
		next(w, r.WithContext(ctx))
	}
}

// SubjectFromContext returns the authenticated subject stored by RequireAuth.
func SubjectFromContext(ctx context.Context) (*AuthSubject, bool) {
	subject, ok := ctx.Value(subjectContextKey{}).(*AuthSubject)
	return subject, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "missing or invalid bearer credentials",
	})
}
