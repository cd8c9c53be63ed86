// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package models defines the DP-1 resource types exchanged across the feed
operator: Playlist, PlaylistItem, and Channel, along with the protected-field
guard, slug generator, semver gate, and the WriteOperationMessage envelope
carried over the queue port.

All identity fields (id, slug, created, signature) are server-assigned and
immutable after creation; callers may never set them directly on a write
request, enforced by CheckProtectedFields.
*/
package models
