// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/models"
)

// handleListChannels serves GET /channels.
func (router *Router) handleListChannels(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	opts, ok := listOptionsFromRequest(r)
	if !ok {
		rw.Err(http.StatusBadRequest, TagInvalidLimit, "Limit must be between 1 and 100")
		return
	}

	page, err := router.engine.ListChannels(r.Context(), opts)
	if err != nil {
		writeStorageReadError(rw, err)
		return
	}
	rw.OK(listResponse{Items: page.Items, Cursor: page.Cursor, HasMore: page.HasMore})
}

// handleGetChannel serves GET /channels/:id.
func (router *Router) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	ch, err := router.engine.GetChannel(r.Context(), id)
	if err != nil {
		writeStorageReadError(rw, err)
		return
	}
	rw.OK(ch)
}

// handleCreateChannel serves POST /channels.
func (router *Router) handleCreateChannel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var input models.ChannelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		rw.Err(http.StatusBadRequest, TagInvalidJSON, "request body is not valid JSON")
		return
	}

	async := respondAsync(r)
	ch, err := router.coordinator.CreateChannel(r.Context(), input, async)
	if err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(ch)
		return
	}
	rw.Created(ch)
}

// handleReplaceChannel serves PUT /channels/:id.
func (router *Router) handleReplaceChannel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	var input models.ChannelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		rw.Err(http.StatusBadRequest, TagInvalidJSON, "request body is not valid JSON")
		return
	}

	async := respondAsync(r)
	ch, err := router.coordinator.ReplaceChannel(r.Context(), id, input, async)
	if err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(ch)
		return
	}
	rw.OK(ch)
}

// handlePatchChannel serves PATCH /channels/:id.
func (router *Router) handlePatchChannel(w http.ResponseWriter, r *http.Request) {
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
	ch, err := router.coordinator.PatchChannel(r.Context(), id, body, async)
	if err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(ch)
		return
	}
	rw.OK(ch)
}

// handleDeleteChannel serves DELETE /channels/:id.
func (router *Router) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if !isValidResourceID(id) {
		rw.Err(http.StatusBadRequest, TagInvalidID, "id is not a valid UUID or slug")
		return
	}

	async := respondAsync(r)
	if err := router.coordinator.DeleteChannel(r.Context(), id, async); err != nil {
		writeCoordinatorError(rw, err)
		return
	}
	if async {
		rw.Accepted(nil)
		return
	}
	rw.NoContent()
}
