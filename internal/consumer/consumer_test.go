// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/cartographus/internal/kvstore"
	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/queue"
	"github.com/tomtom215/cartographus/internal/storage"
)

func newTestConsumer(t *testing.T) (*Consumer, *storage.Engine, queue.Queue) {
	t.Helper()
	engine, err := storage.New(kvstore.NewMemory(), storage.Config{HTTPTimeout: time.Second})
	require.NoError(t, err)
	q := queue.NewMemory()
	return New(q, engine, "dp1.writes", 4, zerolog.Nop()), engine, q
}

func samplePlaylist() *models.Playlist {
	now := time.Now().UTC()
	return &models.Playlist{
		DPVersion: "1.0.0",
		ID:        uuid.NewString(),
		Slug:      "test-playlist-0001",
		Title:     "Test",
		Created:   now,
		Signature: "ed25519:0xdeadbeef",
		Items: []models.PlaylistItem{
			{ID: uuid.NewString(), Title: "A", Source: "https://example.com/a", License: models.LicenseOpen, Created: now},
		},
	}
}

func TestConsumer_DispatchCreatePlaylist(t *testing.T) {
	c, engine, _ := newTestConsumer(t)
	p := samplePlaylist()

	msg := models.NewWriteOperationMessage(models.OpCreatePlaylist, p.ID, models.WriteOperationData{Playlist: p})
	require.NoError(t, c.Dispatch(context.Background(), msg))

	stored, err := engine.GetPlaylistByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Title, stored.Title)
}

func TestConsumer_DispatchUnrecognizedOperationIsSkipNotFail(t *testing.T) {
	c, _, _ := newTestConsumer(t)
	msg := models.WriteOperationMessage{ID: "x", Operation: "rename_universe"}
	require.NoError(t, c.Dispatch(context.Background(), msg))
}

func TestConsumer_ProcessMessageInvalidJSON(t *testing.T) {
	c, _, _ := newTestConsumer(t)
	_, err := c.ProcessMessage(context.Background(), []byte("{not json"))
	require.ErrorIs(t, err, ErrInvalidMessage)
}

func TestConsumer_ProcessBatchAccumulatesErrors(t *testing.T) {
	c, _, _ := newTestConsumer(t)
	p := samplePlaylist()
	goodMsg, err := json.Marshal(models.NewWriteOperationMessage(models.OpCreatePlaylist, p.ID, models.WriteOperationData{Playlist: p}))
	require.NoError(t, err)

	badMsg, err := json.Marshal(models.WriteOperationMessage{
		ID:        "delete-missing-data",
		Operation: models.OpDeletePlaylist,
	})
	require.NoError(t, err)

	result, err := c.ProcessBatch(context.Background(), [][]byte{goodMsg, badMsg})
	require.NoError(t, err)
	require.Equal(t, 1, result.ProcessedCount)
	require.Len(t, result.Errors, 1)
	require.False(t, result.Success)
}

func TestConsumer_RunAcksCleanBatch(t *testing.T) {
	c, engine, q := newTestConsumer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = c.Run(ctx) }()

	p := samplePlaylist()
	body, err := json.Marshal(models.NewWriteOperationMessage(models.OpCreatePlaylist, p.ID, models.WriteOperationData{Playlist: p}))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_ = q.Publish(ctx, "dp1.writes", body)
		_, err := engine.GetPlaylistByID(ctx, p.ID)
		return err == nil
	}, time.Second, 10*time.Millisecond)
}
