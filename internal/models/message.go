// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Operation names carried by a WriteOperationMessage.
const (
	OpCreatePlaylist = "create_playlist"
	OpUpdatePlaylist = "update_playlist"
	OpDeletePlaylist = "delete_playlist"
	OpCreateChannel  = "create_channel"
	OpUpdateChannel  = "update_channel"
	OpDeleteChannel  = "delete_channel"
)

// WriteOperationData carries exactly the payload relevant to the message's
// operation: full resource on create/update, bare id on delete.
type WriteOperationData struct {
	Playlist   *Playlist `json:"playlist,omitempty"`
	Channel    *Channel  `json:"channel,omitempty"`
	PlaylistID string    `json:"playlistId,omitempty"`
	ChannelID  string    `json:"channelId,omitempty"`
}

// WriteOperationMessage is the envelope published to the queue port for the
// async write path and drained by the consumer into Storage Engine calls.
type WriteOperationMessage struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Operation  string             `json:"operation"`
	Data       WriteOperationData `json:"data"`
	RetryCount int                `json:"retryCount"`
}

// NewWriteOperationMessage builds a message with a globally unique id of the
// form "<op>_<resource-id>_<ulid>".
func NewWriteOperationMessage(operation, resourceID string, data WriteOperationData) WriteOperationMessage {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return WriteOperationMessage{
		ID:        fmt.Sprintf("%s_%s_%s", operation, resourceID, id.String()),
		Timestamp: time.Now().UTC(),
		Operation: operation,
		Data:      data,
	}
}

// IsUpdate reports whether the operation mutates an existing resource
// (update/delete) as opposed to creating a new one.
func IsUpdate(operation string) bool {
	switch operation {
	case OpUpdatePlaylist, OpDeletePlaylist, OpUpdateChannel, OpDeleteChannel:
		return true
	default:
		return false
	}
}
