// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/validation"
)

var selfHostedPlaylistPath = regexp.MustCompile(`^/api/v1/playlists/([A-Za-z0-9_\-]+)$`)

// ResolvedPlaylist is the outcome of resolving one channel playlist
// reference: its id, the hydrated record, and whether it came from an
// external fetch (as opposed to a local self-hosted short-circuit).
type ResolvedPlaylist struct {
	ID       string
	Playlist *models.Playlist
	External bool
}

// ResolvePlaylistURL implements the URL resolver: self-hosted domains
// short-circuit straight to a local lookup (no outbound call, no risk of
// recursing back into this same deployment); anything else is fetched
// over HTTP and validated against the Playlist schema.
func (e *Engine) ResolvePlaylistURL(ctx context.Context, rawURL string) (ResolvedPlaylist, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s", ErrInvalidSelfHostedURL, rawURL)
	}

	if _, ok := e.selfHostedDomains[u.Host]; ok {
		return e.resolveSelfHosted(ctx, u)
	}
	return e.resolveExternal(ctx, rawURL)
}

func (e *Engine) resolveSelfHosted(ctx context.Context, u *url.URL) (ResolvedPlaylist, error) {
	m := selfHostedPlaylistPath.FindStringSubmatch(u.Path)
	if m == nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s", ErrInvalidSelfHostedURL, u.String())
	}
	identifier := m[1]

	p, err := e.GetPlaylist(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ResolvedPlaylist{}, fmt.Errorf("%w: %s", ErrSelfHostedPlaylistMissing, identifier)
		}
		return ResolvedPlaylist{}, err
	}
	return ResolvedPlaylist{ID: p.ID, Playlist: p, External: false}, nil
}

func (e *Engine) resolveExternal(ctx context.Context, rawURL string) (ResolvedPlaylist, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s: %v", ErrExternalFetchFailed, rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.cb.Execute(func() (*http.Response, error) {
		return e.httpClient.Do(req)
	})
	if err != nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s: %v", ErrExternalFetchFailed, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s: HTTP %d", ErrExternalFetchFailed, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s: %v", ErrExternalFetchFailed, rawURL, err)
	}

	var p models.Playlist
	if err := json.Unmarshal(body, &p); err != nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s: %v", ErrExternalPlaylistInvalid, rawURL, err)
	}
	if verr := validation.ValidatePlaylist(&p); verr != nil {
		return ResolvedPlaylist{}, fmt.Errorf("%w: %s: %s", ErrExternalPlaylistInvalid, rawURL, verr.Error())
	}

	return ResolvedPlaylist{ID: p.ID, Playlist: &p, External: true}, nil
}
