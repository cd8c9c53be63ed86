// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/tomtom215/cartographus/internal/storage"
)

const (
	defaultLimit = 100
	maxLimit     = 100
	minLimit     = 1
)

var (
	uuidV4Pattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
	slugIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// isValidResourceID reports whether id is acceptable as a playlist or
// channel path parameter: UUIDv4, or any slug-shaped string.
func isValidResourceID(id string) bool {
	return id != "" && (uuidV4Pattern.MatchString(id) || slugIDPattern.MatchString(id))
}

// isValidItemID reports whether id is acceptable as a playlist-item path
// parameter: UUIDv4 only.
func isValidItemID(id string) bool {
	return uuidV4Pattern.MatchString(id)
}

// listOptionsFromRequest parses limit/cursor/sort query parameters into a
// storage.ListOptions, or reports an invalid_limit failure. limit ranges
// over [1,100] with a default of 100; sort defaults to ascending and any
// value other than "desc" is treated as ascending by the Storage Engine.
func listOptionsFromRequest(r *http.Request) (storage.ListOptions, bool) {
	q := r.URL.Query()

	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < minLimit || v > maxLimit {
			return storage.ListOptions{}, false
		}
		limit = v
	}

	return storage.ListOptions{
		Limit:  limit,
		Cursor: q.Get("cursor"),
		Sort:   q.Get("sort"),
	}, true
}

// respondAsync reports whether the request carries RFC 7240's
// "Prefer: respond-async", selecting the Write Coordinator's queued path.
func respondAsync(r *http.Request) bool {
	return r.Header.Get("Prefer") == "respond-async"
}
