// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package api wires the HTTP surface onto the Write Coordinator and
// Storage Engine: chi routing, bearer auth, and the response/error
// envelopes defined by the external interface.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/logging"
)

// errorBody is the flat error envelope every non-2xx response uses:
// {"error":"<tag>","message":"<human text>"}. The tag is the taxonomy
// value a client branches on; message is for humans only.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResponseWriter centralizes status/body writing so every handler emits
// the same headers and the same error shape.
type ResponseWriter struct {
	w http.ResponseWriter
	r *http.Request
}

// NewResponseWriter wraps w/r for one request.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r}
}

// JSON writes body as JSON with the given status code.
func (rw *ResponseWriter) JSON(status int, body interface{}) {
	rw.w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(body)
	if err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("api: failed to marshal response")
		rw.w.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.w.WriteHeader(status)
	if _, err := rw.w.Write(data); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("api: failed to write response")
	}
}

// OK writes a 200 with body.
func (rw *ResponseWriter) OK(body interface{}) { rw.JSON(http.StatusOK, body) }

// Created writes a 201 with body.
func (rw *ResponseWriter) Created(body interface{}) { rw.JSON(http.StatusCreated, body) }

// Accepted writes a 202 with body (the async dispatch path).
func (rw *ResponseWriter) Accepted(body interface{}) { rw.JSON(http.StatusAccepted, body) }

// NoContent writes a 204 with an empty body.
func (rw *ResponseWriter) NoContent() { rw.w.WriteHeader(http.StatusNoContent) }

// Err writes the {"error":tag,"message":message} envelope with status.
func (rw *ResponseWriter) Err(status int, tag, message string) {
	rw.JSON(status, errorBody{Error: tag, Message: message})
}
