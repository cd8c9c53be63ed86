// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process KV implementation used for tests and the
// "memory" storage provider. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory constructs an empty in-memory KV store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *Memory) List(_ context.Context, opts ListOptions) (ListResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}

	if opts.Direction == Desc {
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	} else {
		sort.Strings(keys)
	}

	start := 0
	if opts.Cursor != "" {
		for i, k := range keys {
			if k == opts.Cursor {
				start = i + 1
				break
			}
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = len(keys) - start
	}

	result := ListResult{Complete: true}
	end := start + limit
	if end >= len(keys) {
		end = len(keys)
	} else {
		result.Complete = false
	}

	for _, k := range keys[start:end] {
		result.Entries = append(result.Entries, Entry{Key: k, Value: m.data[k]})
	}
	if !result.Complete && len(result.Entries) > 0 {
		result.Cursor = result.Entries[len(result.Entries)-1].Key
	}

	return result, nil
}

func (m *Memory) Close() error { return nil }
