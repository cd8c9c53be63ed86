// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PublishAndSubscribe(t *testing.T) {
	q := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches, err := q.Subscribe(ctx, "writes", 10)
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, "writes", []byte("msg-1")))

	select {
	case b := <-batches:
		require.Len(t, b.Deliveries, 1)
		assert.Equal(t, "msg-1", string(b.Deliveries[0].Body))
		require.NoError(t, b.Deliveries[0].Ack())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for batch")
	}
}

func TestMemory_PublishBatch(t *testing.T) {
	q := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches, err := q.Subscribe(ctx, "writes", 10)
	require.NoError(t, err)

	require.NoError(t, q.PublishBatch(ctx, "writes", [][]byte{[]byte("a"), []byte("b")}))

	select {
	case b := <-batches:
		require.Len(t, b.Deliveries, 2)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for batch")
	}
}

func TestMemory_PublishWithoutSubscriberIsNoop(t *testing.T) {
	q := NewMemory()
	err := q.Publish(context.Background(), "nobody-listening", []byte("x"))
	assert.NoError(t, err)
}
