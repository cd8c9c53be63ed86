// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"time"

	"github.com/tomtom215/cartographus/internal/kvstore"
)

// timeFormat is the RFC3339 layout used for the lexicographically-sortable
// created-timestamp indexes (§4.4.1). It keeps trailing zeros so every key
// has the same width. Nanosecond precision keeps items
// created within the same save (see models.PlaylistItem.Created spacing)
// distinguishable in the index.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func playlistIDKey(id string) string          { return "playlist:id:" + id }
func playlistSlugKey(slug string) string       { return "playlist:slug:" + slug }
func playlistCreatedPrefix(dir kvstore.Direction) string {
	if dir == kvstore.Desc {
		return "playlist:created:desc:"
	}
	return "playlist:created:asc:"
}
func playlistCreatedKey(dir kvstore.Direction, created time.Time, id string) string {
	ts := fmtTime(created)
	if dir == kvstore.Desc {
		ts = kvstore.InvertTimestamp(ts)
	}
	return playlistCreatedPrefix(dir) + ts + ":" + id
}

func itemIDKey(id string) string { return "playlist-item:id:" + id }
func itemCreatedPrefix(dir kvstore.Direction) string {
	if dir == kvstore.Desc {
		return "playlist-item:created:desc:"
	}
	return "playlist-item:created:asc:"
}
func itemCreatedKey(dir kvstore.Direction, created time.Time, id string) string {
	ts := fmtTime(created)
	if dir == kvstore.Desc {
		ts = kvstore.InvertTimestamp(ts)
	}
	return itemCreatedPrefix(dir) + ts + ":" + id
}
func itemChannelKey(channelID, playlistID, itemID string) string {
	return "playlist-item:channel:" + channelID + ":" + playlistID + ":" + itemID
}
func itemChannelPrefix(channelID string) string {
	return "playlist-item:channel:" + channelID + ":"
}

func channelIDKey(id string) string    { return "channel:id:" + id }
func channelSlugKey(slug string) string { return "channel:slug:" + slug }
func channelCreatedPrefix(dir kvstore.Direction) string {
	if dir == kvstore.Desc {
		return "channel:created:desc:"
	}
	return "channel:created:asc:"
}
func channelCreatedKey(dir kvstore.Direction, created time.Time, id string) string {
	ts := fmtTime(created)
	if dir == kvstore.Desc {
		ts = kvstore.InvertTimestamp(ts)
	}
	return channelCreatedPrefix(dir) + ts + ":" + id
}

func channelToPlaylistKey(channelID, playlistID string) string {
	return "channel-to-playlists:" + channelID + ":" + playlistID
}
func channelToPlaylistsPrefix(channelID string) string {
	return "channel-to-playlists:" + channelID + ":"
}
func playlistToChannelKey(playlistID, channelID string) string {
	return "playlist-to-channels:" + playlistID + ":" + channelID
}

// resolveDirection collapses any value other than "desc" to ascending,
// matching the spec's "any other value silently collapses to asc" rule
// (§4.4.4).
func resolveDirection(sort string) kvstore.Direction {
	if sort == "desc" {
		return kvstore.Desc
	}
	return kvstore.Asc
}
