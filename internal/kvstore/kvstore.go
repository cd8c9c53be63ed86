// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package kvstore implements the KV Port (C1): an ordered, prefix-scanned
// string-to-bytes store with cursor pagination, backing the Storage
// Engine's multi-index key schema (§4.1, §4.4.1).
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kvstore: key not found")

// Direction selects ascending or descending lexicographic scan order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Entry is a single key/value pair returned by List.
type Entry struct {
	Key   string
	Value []byte
}

// ListOptions parameterizes a prefix scan.
type ListOptions struct {
	Prefix    string
	Limit     int
	Cursor    string
	Direction Direction
}

// ListResult is the outcome of a prefix scan: up to Limit entries in
// Direction order, an opaque Cursor for the next page (empty when
// Complete), and Complete reporting whether the prefix is exhausted.
type ListResult struct {
	Entries  []Entry
	Cursor   string
	Complete bool
}

// KV is the abstract operations of the KV Port. Implementations
// (Badger, etcd, in-memory) back three logical namespaces — playlist,
// channel, item — which may or may not share an underlying store; the
// Storage Engine only relies on key prefixes for isolation (§4.1).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	Close() error
}

// InvertTimestamp produces the lexicographic string-complement of an
// RFC3339 timestamp so that ascending scans over the complement walk the
// timestamps in descending chronological order (§4.4.1). Every rune is
// mapped to its complement within the printable ASCII range used by
// RFC3339 output ('~' - ch), which is a bijection and therefore reversible
// by applying the same transform again.
func InvertTimestamp(ts string) string {
	out := make([]byte, len(ts))
	for i := 0; i < len(ts); i++ {
		out[i] = '~' - ts[i]
	}
	return string(out)
}
