// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package queue

import (
	"context"
	"sync"
)

// Memory is an in-process Queue implementation for tests and the "memory"
// queue provider. Publishes enqueue directly to any active subscription's
// channel; there is a single subscriber per subject, matching the
// Consumer's one-subject-per-process usage.
type Memory struct {
	mu   sync.Mutex
	subs map[string]chan Batch
}

// NewMemory constructs an empty in-memory queue.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string]chan Batch)}
}

func (m *Memory) Publish(ctx context.Context, subject string, body []byte) error {
	return m.PublishBatch(ctx, subject, [][]byte{body})
}

func (m *Memory) PublishBatch(_ context.Context, subject string, bodies [][]byte) error {
	m.mu.Lock()
	ch, ok := m.subs[subject]
	m.mu.Unlock()
	if !ok {
		return nil // no subscriber yet; at-least-once is relaxed for memory/tests
	}

	deliveries := make([]Delivery, len(bodies))
	for i, b := range bodies {
		body := b
		deliveries[i] = Delivery{
			Body: body,
			Ack:  func() error { return nil },
			Nack: func() error { return nil },
		}
	}

	ch <- Batch{Deliveries: deliveries}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, subject string, batchSize int) (<-chan Batch, error) {
	ch := make(chan Batch, 16)

	m.mu.Lock()
	m.subs[subject] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, subject)
		m.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (m *Memory) Close() error { return nil }
