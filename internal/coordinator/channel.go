// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/storage"
	"github.com/tomtom215/cartographus/internal/validation"
)

// CreateChannel validates input, synthesizes id/slug/created, signs the
// result, and dispatches it per async. Playlist URL resolution and the
// bidirectional mapping writes happen inside the Storage Engine's
// SaveChannel, which is invoked either directly (sync) or by the Queue
// Consumer draining the async message.
func (c *Coordinator) CreateChannel(ctx context.Context, input models.ChannelInput, async bool) (*models.Channel, error) {
	if verr := validation.ValidateChannelInput(&input); verr != nil {
		return nil, &ValidationError{Inner: verr}
	}

	slug, err := models.GenerateSlug(input.Title)
	if err != nil {
		return nil, err
	}

	ch := &models.Channel{
		ID:             uuid.NewString(),
		Slug:           slug,
		Title:          input.Title,
		Curator:        input.Curator,
		Created:        time.Now().UTC(),
		Playlists:      input.Playlists,
		Curators:       input.Curators,
		Summary:        input.Summary,
		Publisher:      input.Publisher,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
	}

	if err := c.signChannel(ch); err != nil {
		return nil, err
	}
	if err := c.dispatchChannel(ctx, models.OpCreateChannel, ch, false, async); err != nil {
		return nil, err
	}
	return ch, nil
}

// ReplaceChannel validates input, preserves id/slug/created, re-signs,
// and dispatches an update_channel operation.
func (c *Coordinator) ReplaceChannel(ctx context.Context, idOrSlug string, input models.ChannelInput, async bool) (*models.Channel, error) {
	existing, err := c.engine.GetChannel(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if verr := validation.ValidateChannelInput(&input); verr != nil {
		return nil, &ValidationError{Inner: verr}
	}

	ch := &models.Channel{
		ID:             existing.ID,
		Slug:           existing.Slug,
		Title:          input.Title,
		Curator:        input.Curator,
		Created:        existing.Created,
		Playlists:      input.Playlists,
		Curators:       input.Curators,
		Summary:        input.Summary,
		Publisher:      input.Publisher,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
	}

	if err := c.signChannel(ch); err != nil {
		return nil, err
	}
	if err := c.dispatchChannel(ctx, models.OpUpdateChannel, ch, true, async); err != nil {
		return nil, err
	}
	return ch, nil
}

// PatchChannel merges a partial JSON body over the existing resource,
// analogous to PatchPlaylist.
func (c *Coordinator) PatchChannel(ctx context.Context, idOrSlug string, body map[string]interface{}, async bool) (*models.Channel, error) {
	existing, err := c.engine.GetChannel(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if fields := models.CheckProtectedFields(body); len(fields) > 0 {
		return nil, &ProtectedFieldsError{Fields: fields}
	}
	if len(body) == 0 {
		return existing, nil
	}

	raw, err := json.Marshal(existing)
	if err != nil {
		return nil, err
	}
	var base map[string]interface{}
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	for k, v := range body {
		base[k] = v
	}
	mergedRaw, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	var merged models.Channel
	if err := json.Unmarshal(mergedRaw, &merged); err != nil {
		return nil, err
	}

	merged.ID = existing.ID
	merged.Slug = existing.Slug
	merged.Created = existing.Created

	if verr := validation.ValidateChannel(&merged); verr != nil {
		return nil, &ValidationError{Inner: verr}
	}

	if err := c.signChannel(&merged); err != nil {
		return nil, err
	}
	if err := c.dispatchChannel(ctx, models.OpUpdateChannel, &merged, true, async); err != nil {
		return nil, err
	}
	return &merged, nil
}

// DeleteChannel resolves idOrSlug to an id and dispatches a
// delete_channel operation.
func (c *Coordinator) DeleteChannel(ctx context.Context, idOrSlug string, async bool) error {
	existing, err := c.engine.GetChannel(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return &StorageError{Err: err}
	}
	return c.dispatchDeleteChannel(ctx, existing.ID, async)
}
