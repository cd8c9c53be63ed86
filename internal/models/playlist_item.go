// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import "time"

// License values a PlaylistItem may carry.
const (
	LicenseOpen         = "open"
	LicenseToken        = "token"
	LicenseSubscription = "subscription"
)

// PlaylistItem is a single artwork reference inside a Playlist. Its id and
// created fields are server-assigned and regenerated in full every time the
// parent playlist's items are replaced (PUT, or PATCH that touches items).
type PlaylistItem struct {
	ID       string    `json:"id" validate:"required,uuid4"`
	Title    string    `json:"title" validate:"required,max=256"`
	Source   string    `json:"source" validate:"required,url"`
	Duration int64     `json:"duration" validate:"required,gt=0"`
	License  string    `json:"license" validate:"required,oneof=open token subscription"`
	Created  time.Time `json:"created" validate:"required"`
}

// PlaylistItemInput is the caller-supplied shape of an item within a
// PlaylistInput; id and created are never accepted from the client.
type PlaylistItemInput struct {
	Title    string `json:"title" validate:"required,max=256"`
	Source   string `json:"source" validate:"required,url"`
	Duration int64  `json:"duration" validate:"required,gt=0"`
	License  string `json:"license" validate:"required,oneof=open token subscription"`
}

func ValidLicense(v string) bool {
	switch v {
	case LicenseOpen, LicenseToken, LicenseSubscription:
		return true
	default:
		return false
	}
}
