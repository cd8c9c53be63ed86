// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Playlist is a versioned, ordered sequence of artworks, identity-sealed by
// an Ed25519 signature over its canonical bytes.
type Playlist struct {
	DPVersion      string          `json:"dpVersion" validate:"required"`
	ID             string          `json:"id" validate:"required,uuid4"`
	Slug           string          `json:"slug" validate:"required,max=64"`
	Title          string          `json:"title" validate:"required,max=256"`
	Created        time.Time       `json:"created" validate:"required"`
	Signature      string          `json:"signature" validate:"required,startswith=ed25519:0x"`
	Items          []PlaylistItem  `json:"items" validate:"required,min=1,dive"`
	Defaults       json.RawMessage `json:"defaults,omitempty"`
	Curators       []string        `json:"curators,omitempty" validate:"omitempty,dive,didkey"`
	Summary        string          `json:"summary,omitempty" validate:"omitempty,max=4096"`
	CoverImage     string          `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries json.RawMessage `json:"dynamicQueries,omitempty"`
}

// PlaylistInput is the caller-supplied shape of a create/replace request.
// It deliberately omits id, slug, created, and signature: those are always
// server-synthesized.
type PlaylistInput struct {
	DPVersion      string              `json:"dpVersion" validate:"required"`
	Title          string              `json:"title" validate:"required,max=256"`
	Items          []PlaylistItemInput `json:"items" validate:"required,min=1,dive"`
	Defaults       json.RawMessage     `json:"defaults,omitempty"`
	Curators       []string            `json:"curators,omitempty" validate:"omitempty,dive,didkey"`
	Summary        string              `json:"summary,omitempty" validate:"omitempty,max=4096"`
	CoverImage     string              `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries json.RawMessage     `json:"dynamicQueries,omitempty"`
}

// MaxSummaryLength is the upper bound on Playlist.Summary and Channel.Summary.
const MaxSummaryLength = 4096
