// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (router *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(healthResponse{Status: "healthy", Version: router.version})
}

type infoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (router *Router) handleInfo(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(infoResponse{Name: "dp1-feed-operator", Version: router.version})
}
