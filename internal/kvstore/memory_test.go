// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetPutDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, "k", []byte("v")))
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ListAscDescAndPagination(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, k := range []string{"p:1", "p:2", "p:3", "other:1"} {
		require.NoError(t, m.Put(ctx, k, []byte(k)))
	}

	asc, err := m.List(ctx, ListOptions{Prefix: "p:", Direction: Asc})
	require.NoError(t, err)
	require.Len(t, asc.Entries, 3)
	assert.Equal(t, []string{"p:1", "p:2", "p:3"}, keysOf(asc.Entries))
	assert.True(t, asc.Complete)

	desc, err := m.List(ctx, ListOptions{Prefix: "p:", Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"p:3", "p:2", "p:1"}, keysOf(desc.Entries))

	page1, err := m.List(ctx, ListOptions{Prefix: "p:", Limit: 2, Direction: Asc})
	require.NoError(t, err)
	assert.Equal(t, []string{"p:1", "p:2"}, keysOf(page1.Entries))
	assert.False(t, page1.Complete)
	require.NotEmpty(t, page1.Cursor)

	page2, err := m.List(ctx, ListOptions{Prefix: "p:", Limit: 2, Cursor: page1.Cursor, Direction: Asc})
	require.NoError(t, err)
	assert.Equal(t, []string{"p:3"}, keysOf(page2.Entries))
	assert.True(t, page2.Complete)
}

func keysOf(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

func TestInvertTimestamp_ReversesOrder(t *testing.T) {
	earlier := "2024-01-01T00:00:00Z"
	later := "2024-06-01T00:00:00Z"

	invEarlier := InvertTimestamp(earlier)
	invLater := InvertTimestamp(later)

	assert.True(t, earlier < later)
	assert.True(t, invEarlier > invLater)

	// Self-inverse over the same alphabet.
	assert.Equal(t, earlier, InvertTimestamp(invEarlier))
}
