// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package queue implements the Queue Port (C2): a durable, at-least-once
// message channel with batch delivery and ack/nack semantics, used by the
// Write Coordinator's async path and drained by the Queue Consumer (§4.2).
package queue

import "context"

// Delivery is a single message handed to a consumer, carrying the
// ack/nack callbacks the consumer must invoke exactly once. Neither the
// NATS nor the in-memory implementation sets RetryCount; it is always 0.
type Delivery struct {
	Body       []byte
	RetryCount int
	Ack        func() error
	Nack       func() error
}

// Batch is a bounded group of deliveries drained together; the Queue
// Consumer acks or nacks the whole batch as a unit (§4.6.2).
type Batch struct {
	Deliveries []Delivery
}

// Queue is the abstract Queue Port: publish (single or batch) plus a
// pull-based batch delivery channel. The NATS JetStream implementation
// (via Watermill) gives at-least-once delivery and redelivery after the
// ack wait on nack; the in-memory one drops messages published while no
// subscriber exists and treats nack as a no-op.
type Queue interface {
	Publish(ctx context.Context, subject string, body []byte) error
	PublishBatch(ctx context.Context, subject string, bodies [][]byte) error

	// Subscribe returns a channel of Batch for the Queue Consumer to drain
	// (§4.6.2); the NATS implementation bounds each to batchSize messages,
	// the in-memory one delivers each publish call as one Batch. The channel
	// closes when ctx is canceled or the underlying subscription ends.
	Subscribe(ctx context.Context, subject string, batchSize int) (<-chan Batch, error)

	Close() error
}
