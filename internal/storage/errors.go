// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import "errors"

var (
	ErrNotFound                = errors.New("storage: resource not found")
	ErrInvalidSelfHostedURL     = errors.New("storage: invalid self-hosted playlist url")
	ErrSelfHostedPlaylistMissing = errors.New("storage: self-hosted playlist not found locally")
	ErrExternalFetchFailed     = errors.New("storage: external playlist fetch failed")
	ErrExternalPlaylistInvalid = errors.New("storage: external playlist failed validation")
)
