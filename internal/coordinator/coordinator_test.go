// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordinator

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/queue"
	"github.com/tomtom215/cartographus/internal/signer"
	"github.com/tomtom215/cartographus/internal/storage"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	return newTestCoordinatorWithDomains(t, nil)
}

func newTestCoordinatorWithDomains(t *testing.T, selfHostedDomains []string) *Coordinator {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	seed := priv.Seed()

	s := signer.New(hex.EncodeToString(seed), "")
	engine, err := storage.New(kvstore.NewMemory(), storage.Config{
		HTTPTimeout:       time.Second,
		SelfHostedDomains: selfHostedDomains,
	})
	require.NoError(t, err)
	q := queue.NewMemory()

	return New(engine, s, q, "dp1.writes", "1.0.0")
}

func samplePlaylistInput() models.PlaylistInput {
	return models.PlaylistInput{
		DPVersion: "1.0.0",
		Title:     "Test Playlist",
		Items: []models.PlaylistItemInput{
			{Title: "A", Source: "https://example.com/a", Duration: 300, License: models.LicenseOpen},
		},
	}
}

func TestCoordinator_CreatePlaylistSync(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	p, err := c.CreatePlaylist(ctx, samplePlaylistInput(), false)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Regexp(t, `^ed25519:0x[0-9a-f]+$`, p.Signature)
	require.NotEmpty(t, p.Items[0].ID)

	stored, err := c.engine.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Title, stored.Title)
}

func TestCoordinator_CreatePlaylistRejectsZeroDuration(t *testing.T) {
	c := newTestCoordinator(t)
	input := samplePlaylistInput()
	input.Items[0].Duration = 0

	_, err := c.CreatePlaylist(context.Background(), input, false)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCoordinator_CreatePlaylistItemsHaveMonotoneCreated(t *testing.T) {
	c := newTestCoordinator(t)
	input := samplePlaylistInput()
	input.Items = []models.PlaylistItemInput{
		{Title: "A", Source: "https://example.com/a", Duration: 300, License: models.LicenseOpen},
		{Title: "B", Source: "https://example.com/b", Duration: 300, License: models.LicenseOpen},
		{Title: "C", Source: "https://example.com/c", Duration: 300, License: models.LicenseOpen},
	}

	p, err := c.CreatePlaylist(context.Background(), input, false)
	require.NoError(t, err)
	require.True(t, p.Items[0].Created.Before(p.Items[1].Created))
	require.True(t, p.Items[1].Created.Before(p.Items[2].Created))
	require.Equal(t, time.Millisecond, p.Items[1].Created.Sub(p.Items[0].Created))
	require.Equal(t, time.Millisecond, p.Items[2].Created.Sub(p.Items[1].Created))
}

func TestCoordinator_CreatePlaylistRejectsBadDPVersion(t *testing.T) {
	c := newTestCoordinator(t)
	input := samplePlaylistInput()
	input.DPVersion = "0.9.0"

	_, err := c.CreatePlaylist(context.Background(), input, false)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCoordinator_PatchPlaylistRejectsProtectedFields(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()
	p, err := c.CreatePlaylist(ctx, samplePlaylistInput(), false)
	require.NoError(t, err)

	_, err = c.PatchPlaylist(ctx, p.ID, map[string]interface{}{"id": "x"}, false)
	require.Error(t, err)
	var pferr *ProtectedFieldsError
	require.ErrorAs(t, err, &pferr)
	require.Equal(t, []string{"id"}, pferr.Fields)
}

func TestCoordinator_PatchPlaylistEmptyBodyIsNoop(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()
	p, err := c.CreatePlaylist(ctx, samplePlaylistInput(), false)
	require.NoError(t, err)

	got, err := c.PatchPlaylist(ctx, p.ID, map[string]interface{}{}, false)
	require.NoError(t, err)
	require.Equal(t, p.Signature, got.Signature)
}

func TestCoordinator_PatchPlaylistRegeneratesItemIDs(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()
	p, err := c.CreatePlaylist(ctx, samplePlaylistInput(), false)
	require.NoError(t, err)
	oldItemID := p.Items[0].ID

	patched, err := c.PatchPlaylist(ctx, p.ID, map[string]interface{}{
		"items": []map[string]interface{}{
			{"title": "B", "source": "https://example.com/b", "duration": 120, "license": "open"},
		},
	}, false)
	require.NoError(t, err)
	require.NotEqual(t, oldItemID, patched.Items[0].ID)
	require.NotEqual(t, p.Signature, patched.Signature)
}

func TestCoordinator_DeletePlaylistNotFound(t *testing.T) {
	c := newTestCoordinator(t)
	err := c.DeletePlaylist(context.Background(), "00000000-0000-4000-8000-000000000000", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCoordinator_CreatePlaylistAsyncPublishesMessage(t *testing.T) {
	c := newTestCoordinator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches, err := c.q.Subscribe(ctx, "dp1.writes", 1)
	require.NoError(t, err)

	p, err := c.CreatePlaylist(ctx, samplePlaylistInput(), true)
	require.NoError(t, err)

	select {
	case b := <-batches:
		require.Len(t, b.Deliveries, 1)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}

	_, err = c.engine.GetPlaylist(ctx, p.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func sampleChannelInput(playlistURL string) models.ChannelInput {
	return models.ChannelInput{
		Title:     "Test Channel",
		Curator:   "Curator",
		Playlists: []string{playlistURL},
	}
}

func TestCoordinator_CreateChannelSync(t *testing.T) {
	c := newTestCoordinatorWithDomains(t, []string{"dp1.example.com"})
	ctx := context.Background()

	p, err := c.CreatePlaylist(ctx, samplePlaylistInput(), false)
	require.NoError(t, err)

	ch, err := c.CreateChannel(ctx, sampleChannelInput("https://dp1.example.com/api/v1/playlists/"+p.ID), false)
	require.NoError(t, err)
	require.Regexp(t, `^ed25519:0x[0-9a-f]+$`, ch.Signature)

	page, err := c.engine.ListPlaylistsByChannel(ctx, ch.ID, storage.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, p.ID, page.Items[0].ID)
}
