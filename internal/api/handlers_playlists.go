// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/storage"
)

type listResponse struct {
	Items   interface{} `json:"items"`
	Cursor  string      `json:"cursor,omitempty"`
	HasMore bool        `json:"hasMore"`
}

// handleListPlaylists serves GET /playlists[?channel=] (§4.4.4 list /
// list-by-channel).
func (router *Router) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	opts, ok := listOptionsFromRequest(r)
	if !ok {
		rw.Err(http.StatusBadRequest, TagInvalidLimit, "Limit must be between 1 and 100")
		return
	}

	if channelID := r.URL.Query().Get("channel"); channelID != "" {
		if !isValidResourceID(channelID) {
			rw.Err(http.StatusBadRequest, TagInvalidChannelID, "channel is not a valid id or slug")
			return
		}
		resolved, err := resolveChannelID(r, router.engine, channelID)
		if err != nil {
			writeStorageReadError(rw, err)
			return
		}
		page, err := router.engine.ListPlaylistsByChannel(r.Context(), resolved, opts)
		if err != nil {
			writeStorageReadError(rw, err)
			return
		}
		rw.OK(listResponse{Items: page.Items, Cursor: page.Cursor, HasMore: page.HasMore})
		return
	}

	page, err := router.engine.ListPlaylists(r.Context(), opts)
	if err != nil {
		writeStorageReadError(rw, err)
		return
	}
	rw.OK(listResponse{Items: page.Items, Cursor: page.Cursor, HasMore: page.HasMore})
}

// handleGetPlaylist serves GET /playlists/:id.
func (router *Router) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	p, err := router.engine.GetPlaylist(r.Context(), id)
	if err != nil {
		writeStorageReadError(rw, err)
		return
	}
	rw.OK(p)
}

// handleGetPlaylistItem serves GET /playlist-items/:id (UUIDv4 only).
func (router *Router) handleGetPlaylistItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidItemID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID")
		return
	}

	item, err := router.engine.GetPlaylistItem(r.Context(), id)
	if err != nil {
		writeStorageReadError(rw, err)
		return
	}
	rw.OK(item)
}

// handleListPlaylistItems serves GET /playlist-items[?channel=].
func (router *Router) handleListPlaylistItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	opts, ok := listOptionsFromRequest(r)
	if !ok {
		rw.Err(http.StatusBadRequest, TagInvalidLimit, "Limit must be between 1 and 100")
		return
	}

	if channelID := r.URL.Query().Get("channel"); channelID != "" {
		if !isValidResourceID(channelID) {
			rw.Err(http.StatusBadRequest, TagInvalidChannelID, "channel is not a valid id or slug")
			return
		}
		resolved, err := resolveChannelID(r, router.engine, channelID)
		if err != nil {
			writeStorageReadError(rw, err)
			return
		}
		page, err := router.engine.ListItemsByChannel(r.Context(), resolved, opts)
		if err != nil {
			writeStorageReadError(rw, err)
			return
		}
		rw.OK(listResponse{Items: page.Items, Cursor: page.Cursor, HasMore: page.HasMore})
		return
	}

	page, err := router.engine.ListPlaylistItems(r.Context(), opts)
	if err != nil {
		writeStorageReadError(rw, err)
		return
	}
	rw.OK(listResponse{Items: page.Items, Cursor: page.Cursor, HasMore: page.HasMore})
}

// handleCreatePlaylist serves POST /playlists.
func (router *Router) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var input models.PlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		rw.Err(http.StatusBadRequest, TagInvalidJSON, "request body is not valid JSON")
		return
	}

	async := respondAsync(r)
	p, err := router.coordinator.CreatePlaylist(r.Context(), input, async)
	if err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(p)
		return
	}
	rw.Created(p)
}

// handleReplacePlaylist serves PUT /playlists/:id.
func (router *Router) handleReplacePlaylist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	var input models.PlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		rw.Err(http.StatusBadRequest, TagInvalidJSON, "request body is not valid JSON")
		return
	}

	async := respondAsync(r)
	p, err := router.coordinator.ReplacePlaylist(r.Context(), id, input, async)
	if err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(p)
		return
	}
	rw.OK(p)
}

// handlePatchPlaylist serves PATCH /playlists/:id.
func (router *Router) handlePatchPlaylist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	var body map[string]interface{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			rw.Err(http.StatusBadRequest, TagInvalidJSON, "request body is not valid JSON")
			return
		}
	}

	async := respondAsync(r)
	p, err := router.coordinator.PatchPlaylist(r.Context(), id, body, async)
	if err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(p)
		return
	}
	rw.OK(p)
}

// handleDeletePlaylist serves DELETE /playlists/:id.
func (router *Router) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	async := respondAsync(r)
	if err := router.coordinator.DeletePlaylist(r.Context(), id, async); err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(nil)
		return
	}
	rw.NoContent()
}

// resolveChannelID resolves a channel path identifier (uuid or slug) to its
// canonical id for the channel-scoped join listings.
func resolveChannelID(r *http.Request, engine *storage.Engine, idOrSlug string) (string, error) {
	ch, err := engine.GetChannel(r.Context(), idOrSlug)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

// writeStorageReadError maps a read-path storage error (GET/list routes,
// which never go through the coordinator) to not_found or storage_error.
func writeStorageReadError(rw *ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		rw.Err(http.StatusNotFound, TagNotFound, "resource not found")
		return
	}
	rw.Err(http.StatusInternalServerError, TagStorageError, "storage operation failed")
}
