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

// synthesizeItems assigns a fresh UUIDv4 id to every item and a created
// timestamp monotone within this single save: item i gets
// created + i milliseconds, as required on create, full replace, and any
// patch that touches items.
func synthesizeItems(inputs []models.PlaylistItemInput, created time.Time) []models.PlaylistItem {
	items := make([]models.PlaylistItem, len(inputs))
	for i, in := range inputs {
		items[i] = models.PlaylistItem{
			ID:       uuid.NewString(),
			Title:    in.Title,
			Source:   in.Source,
			Duration: in.Duration,
			License:  in.License,
			Created:  created.Add(time.Duration(i) * time.Millisecond),
		}
	}
	return items
}

// CreatePlaylist validates input, synthesizes id/slug/created and item
// ids, signs the result, and dispatches it per async.
func (c *Coordinator) CreatePlaylist(ctx context.Context, input models.PlaylistInput, async bool) (*models.Playlist, error) {
	if verr := validation.ValidatePlaylistInput(&input, c.minDPVersion); verr != nil {
		return nil, &ValidationError{Inner: verr}
	}

	slug, err := models.GenerateSlug(input.Title)
	if err != nil {
		return nil, err
	}
	created := time.Now().UTC()

	p := &models.Playlist{
		DPVersion:      input.DPVersion,
		ID:             uuid.NewString(),
		Slug:           slug,
		Title:          input.Title,
		Created:        created,
		Items:          synthesizeItems(input.Items, created),
		Defaults:       input.Defaults,
		Curators:       input.Curators,
		Summary:        input.Summary,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
	}

	if err := c.signPlaylist(p); err != nil {
		return nil, err
	}
	if err := c.dispatchPlaylist(ctx, models.OpCreatePlaylist, p, false, async); err != nil {
		return nil, err
	}
	return p, nil
}

// ReplacePlaylist validates input, preserves id/slug/created from the
// existing resource, regenerates all item ids, re-signs, and dispatches
// an update_playlist operation.
func (c *Coordinator) ReplacePlaylist(ctx context.Context, idOrSlug string, input models.PlaylistInput, async bool) (*models.Playlist, error) {
	existing, err := c.engine.GetPlaylist(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if verr := validation.ValidatePlaylistInput(&input, c.minDPVersion); verr != nil {
		return nil, &ValidationError{Inner: verr}
	}

	created := time.Now().UTC()
	p := &models.Playlist{
		DPVersion:      input.DPVersion,
		ID:             existing.ID,
		Slug:           existing.Slug,
		Title:          input.Title,
		Created:        existing.Created,
		Items:          synthesizeItems(input.Items, created),
		Defaults:       input.Defaults,
		Curators:       input.Curators,
		Summary:        input.Summary,
		CoverImage:     input.CoverImage,
		DynamicQueries: input.DynamicQueries,
	}

	if err := c.signPlaylist(p); err != nil {
		return nil, err
	}
	if err := c.dispatchPlaylist(ctx, models.OpUpdatePlaylist, p, true, async); err != nil {
		return nil, err
	}
	return p, nil
}

// PatchPlaylist merges a partial JSON body over the existing resource. A
// body touching id/slug/created/signature is rejected before any merge
// occurs. An empty body is a no-op that still re-fetches and returns the
// current resource (§6 PATCH empty body → 200 no-op).
func (c *Coordinator) PatchPlaylist(ctx context.Context, idOrSlug string, body map[string]interface{}, async bool) (*models.Playlist, error) {
	existing, err := c.engine.GetPlaylist(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if fields := models.CheckProtectedFields(body); len(fields) > 0 {
		return nil, &ProtectedFieldsError{Fields: fields}
	}
	if len(body) == 0 {
		return existing, nil
	}

	merged, err := mergePatch(existing, body)
	if err != nil {
		return nil, err
	}

	if _, touchesItems := body["items"]; touchesItems {
		inputs := make([]models.PlaylistItemInput, len(merged.Items))
		for i, item := range merged.Items {
			inputs[i] = models.PlaylistItemInput{
				Title:    item.Title,
				Source:   item.Source,
				Duration: item.Duration,
				License:  item.License,
			}
		}
		merged.Items = synthesizeItems(inputs, time.Now().UTC())
	}

	merged.ID = existing.ID
	merged.Slug = existing.Slug
	merged.Created = existing.Created

	if verr := validation.ValidatePlaylist(merged); verr != nil {
		return nil, &ValidationError{Inner: verr}
	}
	if err := models.ValidateDPVersion(merged.DPVersion, c.minDPVersion); err != nil {
		return nil, &ValidationError{Inner: validation.NewFieldError("dpVersion", "semver", merged.DPVersion, err.Error())}
	}

	if err := c.signPlaylist(merged); err != nil {
		return nil, err
	}
	if err := c.dispatchPlaylist(ctx, models.OpUpdatePlaylist, merged, true, async); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergePatch shallow-merges a parsed JSON patch body onto the JSON
// representation of an existing resource, then decodes the result back
// into the target type.
func mergePatch(existing *models.Playlist, body map[string]interface{}) (*models.Playlist, error) {
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
	var merged models.Playlist
	if err := json.Unmarshal(mergedRaw, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// DeletePlaylist resolves idOrSlug to an id (surfacing ErrNotFound if
// absent) and dispatches a delete_playlist operation.
func (c *Coordinator) DeletePlaylist(ctx context.Context, idOrSlug string, async bool) error {
	existing, err := c.engine.GetPlaylist(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return &StorageError{Err: err}
	}
	return c.dispatchDeletePlaylist(ctx, existing.ID, async)
}
