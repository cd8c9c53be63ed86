// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"context"
	"fmt"

	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/models"
)

// ListOptions bounds and positions a listing call. Limit must already be
// validated to [1,100] by the caller; Sort collapses anything but "desc"
// to ascending.
type ListOptions struct {
	Limit  int
	Cursor string
	Sort   string
}

// Page is a single page of a paginated listing: Cursor is opaque and
// forwarded verbatim by the caller on the next request; HasMore is true
// iff the underlying scan reports more entries beyond this page.
type Page[T any] struct {
	Items   []T
	Cursor  string
	HasMore bool
}

func (e *Engine) scanIDs(ctx context.Context, prefix string, opts ListOptions) (ids []string, cursor string, hasMore bool, err error) {
	// The prefix already selects the order (the desc index stores inverted
	// timestamps), so the index itself is always scanned ascending.
	res, err := e.kv.List(ctx, kvstore.ListOptions{
		Prefix:    prefix,
		Limit:     opts.Limit,
		Cursor:    opts.Cursor,
		Direction: kvstore.Asc,
	})
	if err != nil {
		return nil, "", false, fmt.Errorf("storage: list %s: %w", prefix, err)
	}

	ids = make([]string, len(res.Entries))
	for i, entry := range res.Entries {
		ids[i] = string(entry.Value)
	}
	return ids, res.Cursor, !res.Complete, nil
}

// ListPlaylists serves list_playlists: scan the created-timestamp index in
// the requested direction and hydrate each id into a full Playlist.
func (e *Engine) ListPlaylists(ctx context.Context, opts ListOptions) (Page[models.Playlist], error) {
	prefix := playlistCreatedPrefix(resolveDirection(opts.Sort))
	ids, cursor, hasMore, err := e.scanIDs(ctx, prefix, opts)
	if err != nil {
		return Page[models.Playlist]{}, err
	}
	items, err := e.fetchPlaylists(ctx, ids)
	if err != nil {
		return Page[models.Playlist]{}, err
	}
	return Page[models.Playlist]{Items: items, Cursor: cursor, HasMore: hasMore}, nil
}

// ListPlaylistItems serves the unfiltered GET /playlist-items listing.
func (e *Engine) ListPlaylistItems(ctx context.Context, opts ListOptions) (Page[models.PlaylistItem], error) {
	prefix := itemCreatedPrefix(resolveDirection(opts.Sort))
	ids, cursor, hasMore, err := e.scanIDs(ctx, prefix, opts)
	if err != nil {
		return Page[models.PlaylistItem]{}, err
	}
	items, err := e.fetchItems(ctx, ids)
	if err != nil {
		return Page[models.PlaylistItem]{}, err
	}
	return Page[models.PlaylistItem]{Items: items, Cursor: cursor, HasMore: hasMore}, nil
}

// ListPlaylistsByChannel serves list_playlists_by_channel: scan the
// channel-to-playlists join, then hydrate each referenced playlist.
func (e *Engine) ListPlaylistsByChannel(ctx context.Context, channelID string, opts ListOptions) (Page[models.Playlist], error) {
	res, err := e.kv.List(ctx, kvstore.ListOptions{
		Prefix: channelToPlaylistsPrefix(channelID),
		Limit:  opts.Limit,
		Cursor: opts.Cursor,
	})
	if err != nil {
		return Page[models.Playlist]{}, fmt.Errorf("storage: list channel playlists %s: %w", channelID, err)
	}

	ids := make([]string, len(res.Entries))
	for i, entry := range res.Entries {
		ids[i] = string(entry.Value)
	}
	items, err := e.fetchPlaylists(ctx, ids)
	if err != nil {
		return Page[models.Playlist]{}, err
	}
	return Page[models.Playlist]{Items: items, Cursor: res.Cursor, HasMore: !res.Complete}, nil
}

// ListItemsByChannel serves list_items_by_channel: scan the
// playlist-item:channel join, then hydrate each item.
func (e *Engine) ListItemsByChannel(ctx context.Context, channelID string, opts ListOptions) (Page[models.PlaylistItem], error) {
	res, err := e.kv.List(ctx, kvstore.ListOptions{
		Prefix: itemChannelPrefix(channelID),
		Limit:  opts.Limit,
		Cursor: opts.Cursor,
	})
	if err != nil {
		return Page[models.PlaylistItem]{}, fmt.Errorf("storage: list channel items %s: %w", channelID, err)
	}

	ids := make([]string, len(res.Entries))
	for i, entry := range res.Entries {
		ids[i] = string(entry.Value)
	}
	items, err := e.fetchItems(ctx, ids)
	if err != nil {
		return Page[models.PlaylistItem]{}, err
	}
	return Page[models.PlaylistItem]{Items: items, Cursor: res.Cursor, HasMore: !res.Complete}, nil
}

// ListChannels serves the unfiltered GET /channels listing.
func (e *Engine) ListChannels(ctx context.Context, opts ListOptions) (Page[models.Channel], error) {
	prefix := channelCreatedPrefix(resolveDirection(opts.Sort))
	ids, cursor, hasMore, err := e.scanIDs(ctx, prefix, opts)
	if err != nil {
		return Page[models.Channel]{}, err
	}
	items, err := e.fetchChannels(ctx, ids)
	if err != nil {
		return Page[models.Channel]{}, err
	}
	return Page[models.Channel]{Items: items, Cursor: cursor, HasMore: hasMore}, nil
}
