// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cartographus/internal/auth"
	"github.com/tomtom215/cartographus/internal/consumer"
	"github.com/tomtom215/cartographus/internal/coordinator"
	"github.com/tomtom215/cartographus/internal/middleware"
	"github.com/tomtom215/cartographus/internal/storage"
)

// Router assembles the DP-1 HTTP surface on top of the Storage Engine
// (reads), Write Coordinator (writes), and Queue Consumer (queue-ingest
// routes).
type Router struct {
	engine      *storage.Engine
	coordinator *coordinator.Coordinator
	consumer    *consumer.Consumer
	authr       auth.Authenticator
	version     string
}

// NewRouter constructs a Router. authr may be nil, in which case write
// routes are open (suitable only for local/dev use; production
// configuration always selects an Authenticator).
func NewRouter(engine *storage.Engine, coord *coordinator.Coordinator, cons *consumer.Consumer, authr auth.Authenticator, version string) *Router {
	return &Router{engine: engine, coordinator: coord, consumer: cons, authr: authr, version: version}
}

// requireAuth wraps a write-route handler with bearer authentication.
func (router *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	if router.authr == nil {
		return next
	}
	return auth.RequireAuth(router.authr, next)
}

// Handler builds the complete chi.Router for the service.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Prefer"},
		MaxAge:         86400,
	}))
	r.Use(httprate.LimitByIP(600, time.Minute))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/v1/health", router.handleHealth)
	r.Get("/api/v1/", router.handleInfo)

	r.Route("/api/v1/playlists", func(r chi.Router) {
		r.Get("/", router.handleListPlaylists)
		r.Post("/", router.requireAuth(router.handleCreatePlaylist))
		r.Get("/{id}", router.handleGetPlaylist)
		r.Put("/{id}", router.requireAuth(router.handleReplacePlaylist))
		r.Patch("/{id}", router.requireAuth(router.handlePatchPlaylist))
		r.Delete("/{id}", router.requireAuth(router.handleDeletePlaylist))
	})

	r.Route("/api/v1/playlist-items", func(r chi.Router) {
		r.Get("/", router.handleListPlaylistItems)
		r.Get("/{id}", router.handleGetPlaylistItem)
	})

	r.Route("/api/v1/channels", func(r chi.Router) {
		r.Get("/", router.handleListChannels)
		r.Post("/", router.requireAuth(router.handleCreateChannel))
		r.Get("/{id}", router.handleGetChannel)
		r.Put("/{id}", router.requireAuth(router.handleReplaceChannel))
		r.Patch("/{id}", router.requireAuth(router.handlePatchChannel))
		r.Delete("/{id}", router.requireAuth(router.handleDeleteChannel))
	})

	r.Route("/api/v1/queues", func(r chi.Router) {
		r.Post("/process-message", router.requireAuth(router.handleProcessMessage))
		r.Post("/process-batch", router.requireAuth(router.handleProcessBatch))
	})

	return r
}

// chiMiddleware adapts an http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler, so internal/middleware's handlers (shared
// with any future non-chi entry point) compose into r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}
