// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package storage

import (
	"github.com/dgraph-io/ristretto/v2"
)

// readCache is a small ristretto-backed front for the hottest KV Port
// reads (by-id fetches of Playlist/Channel/PlaylistItem JSON). ristretto
// is already a transitive badger dependency, so it covers admission and
// eviction without a hand-rolled map+TTL.
type readCache struct {
	c *ristretto.Cache[string, []byte]
}

func newReadCache() (*readCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1_000_000,
		MaxCost:     64 << 20, // 64MiB of cached record bytes
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &readCache{c: c}, nil
}

func (r *readCache) get(key string) ([]byte, bool) {
	if r == nil || r.c == nil {
		return nil, false
	}
	return r.c.Get(key)
}

func (r *readCache) set(key string, value []byte) {
	if r == nil || r.c == nil {
		return
	}
	r.c.Set(key, value, int64(len(value)))
}

func (r *readCache) del(key string) {
	if r == nil || r.c == nil {
		return
	}
	r.c.Del(key)
}
