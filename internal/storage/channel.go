// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/models"
)

// SaveChannel persists a fully-formed, signed Channel. Every playlist URL
// is resolved in parallel first; any resolution failure aborts the whole
// save so no partial channel state is ever committed.
func (e *Engine) SaveChannel(ctx context.Context, c *models.Channel, isUpdate bool) error {
	resolved, err := e.resolveChannelPlaylists(ctx, c.Playlists)
	if err != nil {
		return err
	}

	if isUpdate {
		if err := e.clearChannelMappings(ctx, c.ID); err != nil {
			return err
		}
	}

	for _, r := range resolved {
		if r.External {
			if err := e.SavePlaylist(ctx, r.Playlist, true); err != nil {
				return fmt.Errorf("storage: materialize external playlist %s: %w", r.ID, err)
			}
		}

		if err := e.putString(ctx, channelToPlaylistKey(c.ID, r.ID), r.ID); err != nil {
			return err
		}
		if err := e.putString(ctx, playlistToChannelKey(r.ID, c.ID), c.ID); err != nil {
			return err
		}
		for _, item := range r.Playlist.Items {
			if err := e.putString(ctx, itemChannelKey(c.ID, r.ID, item.ID), item.ID); err != nil {
				return err
			}
		}
	}

	if err := e.putJSON(ctx, channelIDKey(c.ID), c); err != nil {
		return err
	}
	if err := e.putString(ctx, channelSlugKey(c.Slug), c.ID); err != nil {
		return err
	}
	if err := e.putString(ctx, channelCreatedKey(kvstore.Asc, c.Created, c.ID), c.ID); err != nil {
		return err
	}
	if err := e.putString(ctx, channelCreatedKey(kvstore.Desc, c.Created, c.ID), c.ID); err != nil {
		return err
	}
	return nil
}

// resolveChannelPlaylists resolves every referenced URL concurrently,
// preserving the caller's ordering in the returned slice.
func (e *Engine) resolveChannelPlaylists(ctx context.Context, urls []string) ([]ResolvedPlaylist, error) {
	out := make([]ResolvedPlaylist, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			r, err := e.ResolvePlaylistURL(gctx, u)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// clearChannelMappings deletes every existing channel-to-playlists entry
// for channelID, the mirror playlist-to-channels entry, and every
// playlist-item:channel entry, so a playlist dropped from the channel no
// longer appears in either direction of the join.
func (e *Engine) clearChannelMappings(ctx context.Context, channelID string) error {
	res, err := e.kv.List(ctx, kvstore.ListOptions{Prefix: channelToPlaylistsPrefix(channelID)})
	if err != nil {
		return fmt.Errorf("storage: list channel mappings %s: %w", channelID, err)
	}

	for _, entry := range res.Entries {
		pid := string(entry.Value)
		if err := e.delete(ctx, entry.Key); err != nil {
			return err
		}
		if err := e.delete(ctx, playlistToChannelKey(pid, channelID)); err != nil {
			return err
		}
	}

	items, err := e.kv.List(ctx, kvstore.ListOptions{Prefix: itemChannelPrefix(channelID)})
	if err != nil {
		return fmt.Errorf("storage: list channel item mappings %s: %w", channelID, err)
	}
	for _, entry := range items.Entries {
		if err := e.delete(ctx, entry.Key); err != nil {
			return err
		}
	}

	return nil
}

// GetChannelByID fetches a Channel directly by id.
func (e *Engine) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	var c models.Channel
	if err := e.getJSON(ctx, channelIDKey(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetChannel resolves identifier as an id or slug, then fetches the record.
func (e *Engine) GetChannel(ctx context.Context, identifier string) (*models.Channel, error) {
	id := identifier
	if !looksLikeID(identifier) {
		resolved, err := e.getString(ctx, channelSlugKey(identifier))
		if err != nil {
			return nil, err
		}
		id = resolved
	}
	return e.GetChannelByID(ctx, id)
}

// DeleteChannel removes a channel's primary record, slug index, created
// indexes, and every mapping referencing it.
func (e *Engine) DeleteChannel(ctx context.Context, identifier string) error {
	c, err := e.GetChannel(ctx, identifier)
	if err != nil {
		return err
	}

	if err := e.clearChannelMappings(ctx, c.ID); err != nil {
		return err
	}

	if err := e.delete(ctx, channelIDKey(c.ID)); err != nil {
		return err
	}
	if err := e.delete(ctx, channelSlugKey(c.Slug)); err != nil {
		return err
	}
	if err := e.delete(ctx, channelCreatedKey(kvstore.Asc, c.Created, c.ID)); err != nil {
		return err
	}
	if err := e.delete(ctx, channelCreatedKey(kvstore.Desc, c.Created, c.ID)); err != nil {
		return err
	}
	return nil
}

func (e *Engine) fetchChannels(ctx context.Context, ids []string) ([]models.Channel, error) {
	out := make([]models.Channel, 0, len(ids))
	for _, id := range ids {
		c, err := e.GetChannelByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("storage: fetch channel %s: %w", id, err)
		}
		out = append(out, *c)
	}
	return out, nil
}
