// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/models"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// looksLikeID reports whether identifier matches the UUID shape and
// should be probed against the id index rather than the slug index.
func looksLikeID(identifier string) bool {
	return uuidPattern.MatchString(identifier)
}

// SavePlaylist persists a fully-formed, signed Playlist. When isUpdate is
// true, the previous item set is deleted first so a reader never observes
// a mix of old and new items under the parent record.
func (e *Engine) SavePlaylist(ctx context.Context, p *models.Playlist, isUpdate bool) error {
	if isUpdate {
		old, err := e.GetPlaylistByID(ctx, p.ID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if old != nil {
			for _, item := range old.Items {
				if err := e.deleteItemIndexes(ctx, item); err != nil {
					return err
				}
			}
		}
	}

	for _, item := range p.Items {
		if err := e.putJSON(ctx, itemIDKey(item.ID), item); err != nil {
			return err
		}
		if err := e.putString(ctx, itemCreatedKey(kvstore.Asc, item.Created, item.ID), item.ID); err != nil {
			return err
		}
		if err := e.putString(ctx, itemCreatedKey(kvstore.Desc, item.Created, item.ID), item.ID); err != nil {
			return err
		}
	}

	if err := e.putJSON(ctx, playlistIDKey(p.ID), p); err != nil {
		return err
	}
	if err := e.putString(ctx, playlistSlugKey(p.Slug), p.ID); err != nil {
		return err
	}
	if err := e.putString(ctx, playlistCreatedKey(kvstore.Asc, p.Created, p.ID), p.ID); err != nil {
		return err
	}
	if err := e.putString(ctx, playlistCreatedKey(kvstore.Desc, p.Created, p.ID), p.ID); err != nil {
		return err
	}

	return nil
}

func (e *Engine) deleteItemIndexes(ctx context.Context, item models.PlaylistItem) error {
	if err := e.delete(ctx, itemIDKey(item.ID)); err != nil {
		return err
	}
	if err := e.delete(ctx, itemCreatedKey(kvstore.Asc, item.Created, item.ID)); err != nil {
		return err
	}
	if err := e.delete(ctx, itemCreatedKey(kvstore.Desc, item.Created, item.ID)); err != nil {
		return err
	}
	return nil
}

// GetPlaylistByID fetches a Playlist directly by id, returning ErrNotFound
// if absent.
func (e *Engine) GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error) {
	var p models.Playlist
	if err := e.getJSON(ctx, playlistIDKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlaylist resolves identifier as a UUID against the id index, or
// otherwise as a slug against the slug index, then fetches the record.
func (e *Engine) GetPlaylist(ctx context.Context, identifier string) (*models.Playlist, error) {
	id := identifier
	if !looksLikeID(identifier) {
		resolved, err := e.getString(ctx, playlistSlugKey(identifier))
		if err != nil {
			return nil, err
		}
		id = resolved
	}
	return e.GetPlaylistByID(ctx, id)
}

// DeletePlaylist removes a playlist's primary record, slug index, created
// indexes, and all of its items' indexes.
func (e *Engine) DeletePlaylist(ctx context.Context, identifier string) error {
	p, err := e.GetPlaylist(ctx, identifier)
	if err != nil {
		return err
	}

	for _, item := range p.Items {
		if err := e.deleteItemIndexes(ctx, item); err != nil {
			return err
		}
	}

	if err := e.delete(ctx, playlistIDKey(p.ID)); err != nil {
		return err
	}
	if err := e.delete(ctx, playlistSlugKey(p.Slug)); err != nil {
		return err
	}
	if err := e.delete(ctx, playlistCreatedKey(kvstore.Asc, p.Created, p.ID)); err != nil {
		return err
	}
	if err := e.delete(ctx, playlistCreatedKey(kvstore.Desc, p.Created, p.ID)); err != nil {
		return err
	}
	return nil
}

// GetPlaylistItem fetches a PlaylistItem directly by id.
func (e *Engine) GetPlaylistItem(ctx context.Context, id string) (*models.PlaylistItem, error) {
	var item models.PlaylistItem
	if err := e.getJSON(ctx, itemIDKey(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// fetchPlaylists resolves a page of ids (already paginated by the caller)
// into full Playlist records, preserving order.
func (e *Engine) fetchPlaylists(ctx context.Context, ids []string) ([]models.Playlist, error) {
	out := make([]models.Playlist, 0, len(ids))
	for _, id := range ids {
		p, err := e.GetPlaylistByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("storage: fetch playlist %s: %w", id, err)
		}
		out = append(out, *p)
	}
	return out, nil
}

func (e *Engine) fetchItems(ctx context.Context, ids []string) ([]models.PlaylistItem, error) {
	out := make([]models.PlaylistItem, 0, len(ids))
	for _, id := range ids {
		item, err := e.GetPlaylistItem(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("storage: fetch item %s: %w", id, err)
		}
		out = append(out, *item)
	}
	return out, nil
}
