// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// handleProcessMessage serves POST /queues/process-message: the request
// body is a single WriteOperationMessage, dispatched synchronously through
// the Queue Consumer without touching the Queue Port.
func (router *Router) handleProcessMessage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rw.Err(http.StatusBadRequest, TagInvalidMessage, "failed to read request body")
		return
	}

	result, err := router.consumer.ProcessMessage(r.Context(), body)
	if err != nil {
		writeConsumerError(rw, err, false)
		return
	}
	rw.OK(result)
}

// handleProcessBatch serves POST /queues/process-batch: the request body is
// a JSON array of WriteOperationMessage bodies.
func (router *Router) handleProcessBatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var raw []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		rw.Err(http.StatusBadRequest, TagInvalidBatch, "request body is not a JSON array of messages")
		return
	}

	bodies := make([][]byte, len(raw))
	for i, m := range raw {
		bodies[i] = m
	}

	result, err := router.consumer.ProcessBatch(r.Context(), bodies)
	if err != nil {
		writeConsumerError(rw, err, true)
		return
	}
	rw.OK(result)
}
