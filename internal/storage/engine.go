// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package storage implements the Storage Engine: it encodes Playlist,
// PlaylistItem, and Channel resources into the multi-index KV schema,
// performs the joins, sorts, and paginations the listing endpoints need,
// and resolves channel playlist references (self-hosted short-circuit or
// external fetch-and-validate).
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cartographus/internal/kvstore"
)

// Engine is the Storage Engine. It depends only on the KV Port interface,
// never a concrete provider, matching the Write Coordinator's own
// port-only dependency.
type Engine struct {
	kv                kvstore.KV
	cache             *readCache
	httpClient        *http.Client
	selfHostedDomains map[string]struct{}
	cb                *gobreaker.CircuitBreaker[*http.Response]
}

// Config configures an Engine.
type Config struct {
	SelfHostedDomains []string
	HTTPTimeout       time.Duration
}

// New constructs a Storage Engine over the given KV Port.
func New(kv kvstore.KV, cfg Config) (*Engine, error) {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 5 * time.Second
	}

	cache, err := newReadCache()
	if err != nil {
		return nil, fmt.Errorf("storage: init read cache: %w", err)
	}

	domains := make(map[string]struct{}, len(cfg.SelfHostedDomains))
	for _, d := range cfg.SelfHostedDomains {
		domains[d] = struct{}{}
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "dp1-url-resolver",
		Timeout: 30 * time.Second,
	})

	return &Engine{
		kv:                kv,
		cache:             cache,
		httpClient:        &http.Client{Timeout: cfg.HTTPTimeout},
		selfHostedDomains: domains,
		cb:                cb,
	}, nil
}

func (e *Engine) getJSON(ctx context.Context, key string, out any) error {
	if raw, ok := e.cache.get(key); ok {
		return json.Unmarshal(raw, out)
	}

	raw, err := e.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: get %s: %w", key, err)
	}
	e.cache.set(key, raw)
	return json.Unmarshal(raw, out)
}

func (e *Engine) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", key, err)
	}
	if err := e.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	e.cache.set(key, raw)
	return nil
}

func (e *Engine) putString(ctx context.Context, key, value string) error {
	if err := e.kv.Put(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

func (e *Engine) getString(ctx context.Context, key string) (string, error) {
	raw, err := e.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage: get %s: %w", key, err)
	}
	return string(raw), nil
}

func (e *Engine) delete(ctx context.Context, key string) error {
	e.cache.del(key)
	if err := e.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
