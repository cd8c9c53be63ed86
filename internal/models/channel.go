// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Channel is a curated, signed collection of playlist references.
type Channel struct {
	ID             string          `json:"id" validate:"required,uuid4"`
	Slug           string          `json:"slug" validate:"required,max=64"`
	Title          string          `json:"title" validate:"required,max=256"`
	Curator        string          `json:"curator" validate:"required,max=128"`
	Created        time.Time       `json:"created" validate:"required"`
	Signature      string          `json:"signature" validate:"required,startswith=ed25519:0x"`
	Playlists      []string        `json:"playlists" validate:"required,min=1,dive,url"`
	Curators       []string        `json:"curators,omitempty" validate:"omitempty,dive,didkey"`
	Summary        string          `json:"summary,omitempty" validate:"omitempty,max=4096"`
	Publisher      string          `json:"publisher,omitempty" validate:"omitempty,didkey"`
	CoverImage     string          `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries json.RawMessage `json:"dynamicQueries,omitempty"`
}

// ChannelInput is the caller-supplied shape of a create/replace request.
type ChannelInput struct {
	Title          string          `json:"title" validate:"required,max=256"`
	Curator        string          `json:"curator" validate:"required,max=128"`
	Playlists      []string        `json:"playlists" validate:"required,min=1,dive,url"`
	Curators       []string        `json:"curators,omitempty" validate:"omitempty,dive,didkey"`
	Summary        string          `json:"summary,omitempty" validate:"omitempty,max=4096"`
	Publisher      string          `json:"publisher,omitempty" validate:"omitempty,didkey"`
	CoverImage     string          `json:"coverImage,omitempty" validate:"omitempty,url"`
	DynamicQueries json.RawMessage `json:"dynamicQueries,omitempty"`
}
