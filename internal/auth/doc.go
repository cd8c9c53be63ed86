// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package auth authenticates the write surface of the feed operator. Two
// authenticators are available — a static shared secret and an RS256 JWT —
// and MultiAuthenticator tries them in priority order. Read routes are
// never authenticated.
package auth
