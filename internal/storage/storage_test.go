// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(kvstore.NewMemory(), Config{HTTPTimeout: time.Second})
	require.NoError(t, err)
	return e
}

func samplePlaylist(t *testing.T) *models.Playlist {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Playlist{
		DPVersion: "1.0.0",
		ID:        uuid.NewString(),
		Slug:      "test-playlist-0001",
		Title:     "Test Playlist",
		Created:   now,
		Signature: "ed25519:0xdeadbeef",
		Items: []models.PlaylistItem{
			{
				ID:       uuid.NewString(),
				Title:    "A",
				Source:   "https://example.com/a",
				Duration: 300,
				License:  models.LicenseOpen,
				Created:  now,
			},
		},
	}
}

func TestEngine_SaveAndGetPlaylist(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	p := samplePlaylist(t)

	require.NoError(t, e.SavePlaylist(ctx, p, false))

	byID, err := e.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Title, byID.Title)

	bySlug, err := e.GetPlaylist(ctx, p.Slug)
	require.NoError(t, err)
	require.Equal(t, p.ID, bySlug.ID)

	item, err := e.GetPlaylistItem(ctx, p.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, p.Items[0].Source, item.Source)
}

func TestEngine_UpdatePlaylistDropsOldItems(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	p := samplePlaylist(t)
	require.NoError(t, e.SavePlaylist(ctx, p, false))

	oldItemID := p.Items[0].ID
	p.Items = []models.PlaylistItem{{
		ID:      uuid.NewString(),
		Title:   "B",
		Source:  "https://example.com/b",
		License: models.LicenseOpen,
		Created: p.Created,
	}}
	require.NoError(t, e.SavePlaylist(ctx, p, true))

	_, err := e.GetPlaylistItem(ctx, oldItemID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = e.GetPlaylistItem(ctx, p.Items[0].ID)
	require.NoError(t, err)
}

func TestEngine_DeletePlaylistRemovesIndexes(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	p := samplePlaylist(t)
	require.NoError(t, e.SavePlaylist(ctx, p, false))

	require.NoError(t, e.DeletePlaylist(ctx, p.ID))

	_, err := e.GetPlaylist(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = e.GetPlaylist(ctx, p.Slug)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEngine_ListPlaylistsAscDescAreReverses(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		p := samplePlaylist(t)
		p.Created = p.Created.Add(time.Duration(i) * time.Second)
		p.Slug = uuid.NewString()
		require.NoError(t, e.SavePlaylist(ctx, p, false))
		ids = append(ids, p.ID)
	}

	asc, err := e.ListPlaylists(ctx, ListOptions{Limit: 10, Sort: "asc"})
	require.NoError(t, err)
	desc, err := e.ListPlaylists(ctx, ListOptions{Limit: 10, Sort: "desc"})
	require.NoError(t, err)

	require.Len(t, asc.Items, 3)
	require.Len(t, desc.Items, 3)
	for i := range asc.Items {
		require.Equal(t, asc.Items[i].ID, desc.Items[len(desc.Items)-1-i].ID)
	}
}

func TestEngine_ResolvePlaylistURLSelfHosted(t *testing.T) {
	e, err := New(kvstore.NewMemory(), Config{
		SelfHostedDomains: []string{"feed.example.com"},
		HTTPTimeout:       time.Second,
	})
	require.NoError(t, err)
	ctx := context.Background()

	p := samplePlaylist(t)
	require.NoError(t, e.SavePlaylist(ctx, p, false))

	r, err := e.ResolvePlaylistURL(ctx, "https://feed.example.com/api/v1/playlists/"+p.ID)
	require.NoError(t, err)
	require.False(t, r.External)
	require.Equal(t, p.ID, r.ID)
}

func TestEngine_ResolvePlaylistURLSelfHostedMissing(t *testing.T) {
	e, err := New(kvstore.NewMemory(), Config{
		SelfHostedDomains: []string{"feed.example.com"},
		HTTPTimeout:       time.Second,
	})
	require.NoError(t, err)

	_, err = e.ResolvePlaylistURL(context.Background(), "https://feed.example.com/api/v1/playlists/"+uuid.NewString())
	require.ErrorIs(t, err, ErrSelfHostedPlaylistMissing)
}

func TestEngine_SaveChannelBidirectionalMapping(t *testing.T) {
	e, err := New(kvstore.NewMemory(), Config{
		SelfHostedDomains: []string{"feed.example.com"},
		HTTPTimeout:       time.Second,
	})
	require.NoError(t, err)
	ctx := context.Background()

	p := samplePlaylist(t)
	require.NoError(t, e.SavePlaylist(ctx, p, false))

	c := &models.Channel{
		ID:        uuid.NewString(),
		Slug:      "test-channel-0001",
		Title:     "Test Channel",
		Curator:   "Curator",
		Created:   time.Now().UTC(),
		Signature: "ed25519:0xdeadbeef",
		Playlists: []string{"https://feed.example.com/api/v1/playlists/" + p.ID},
	}
	require.NoError(t, e.SaveChannel(ctx, c, false))

	page, err := e.ListPlaylistsByChannel(ctx, c.ID, ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, p.ID, page.Items[0].ID)
}

func TestEngine_UpdateChannelDropsStaleMapping(t *testing.T) {
	e, err := New(kvstore.NewMemory(), Config{
		SelfHostedDomains: []string{"feed.example.com"},
		HTTPTimeout:       time.Second,
	})
	require.NoError(t, err)
	ctx := context.Background()

	p1 := samplePlaylist(t)
	require.NoError(t, e.SavePlaylist(ctx, p1, false))
	p2 := samplePlaylist(t)
	p2.Slug = uuid.NewString()
	require.NoError(t, e.SavePlaylist(ctx, p2, false))

	c := &models.Channel{
		ID:        uuid.NewString(),
		Slug:      "test-channel-0002",
		Title:     "Test Channel",
		Curator:   "Curator",
		Created:   time.Now().UTC(),
		Signature: "ed25519:0xdeadbeef",
		Playlists: []string{"https://feed.example.com/api/v1/playlists/" + p1.ID},
	}
	require.NoError(t, e.SaveChannel(ctx, c, false))

	c.Playlists = []string{"https://feed.example.com/api/v1/playlists/" + p2.ID}
	require.NoError(t, e.SaveChannel(ctx, c, true))

	page, err := e.ListPlaylistsByChannel(ctx, c.ID, ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, p2.ID, page.Items[0].ID)
}
