// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package consumer implements the Queue Consumer: it drains batches from
// the Queue Port, dispatches each WriteOperationMessage to the Storage
// Engine by operation, and acks or nacks the whole batch as a unit. It
// also exposes the same dispatch logic synchronously for the
// /queues/process-message and /queues/process-batch HTTP routes, which
// accept a message body directly rather than waiting on the queue.
package consumer

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/queue"
	"github.com/tomtom215/cartographus/internal/storage"
)

// Consumer is the Queue Consumer (C6).
type Consumer struct {
	q         queue.Queue
	engine    *storage.Engine
	subject   string
	batchSize int
	logger    zerolog.Logger
}

// New constructs a Queue Consumer bound to subject, draining at most
// batchSize messages per poll.
func New(q queue.Queue, engine *storage.Engine, subject string, batchSize int, logger zerolog.Logger) *Consumer {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Consumer{q: q, engine: engine, subject: subject, batchSize: batchSize, logger: logger}
}

// Run drains batches from the Queue Port until ctx is canceled. Each
// batch is acked only if every message in it dispatched without error;
// otherwise the whole batch is nacked, relying on queue redelivery.
func (c *Consumer) Run(ctx context.Context) error {
	batches, err := c.q.Subscribe(ctx, c.subject, c.batchSize)
	if err != nil {
		return fmt.Errorf("consumer: subscribe to %s: %w", c.subject, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			c.handleBatch(ctx, batch)
		}
	}
}

func (c *Consumer) handleBatch(ctx context.Context, batch queue.Batch) {
	anyFailed := false
	for _, d := range batch.Deliveries {
		if _, err := c.processRaw(ctx, d.Body); err != nil {
			anyFailed = true
			c.logger.Error().Err(err).Msg("consumer: message dispatch failed")
		}
	}

	if anyFailed {
		for _, d := range batch.Deliveries {
			if err := d.Nack(); err != nil {
				c.logger.Error().Err(err).Msg("consumer: nack failed")
			}
		}
		return
	}
	for _, d := range batch.Deliveries {
		if err := d.Ack(); err != nil {
			c.logger.Error().Err(err).Msg("consumer: ack failed")
		}
	}
}

// errMalformedMessage marks a processRaw failure as a decode error
// (invalid_message) rather than a dispatch/engine failure.
var errMalformedMessage = fmt.Errorf("consumer: malformed message body")

func (c *Consumer) processRaw(ctx context.Context, body []byte) (models.WriteOperationMessage, error) {
	var msg models.WriteOperationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", errMalformedMessage, err)
	}
	return msg, c.Dispatch(ctx, msg)
}

// Dispatch routes one message to the corresponding Storage Engine call.
// An unrecognized operation is skipped (logged) rather than treated as a
// failure, matching the coarse batch-nack policy's intent of only
// failing on genuine engine errors.
func (c *Consumer) Dispatch(ctx context.Context, msg models.WriteOperationMessage) error {
	switch msg.Operation {
	case models.OpCreatePlaylist:
		if msg.Data.Playlist == nil {
			return fmt.Errorf("consumer: %s missing playlist payload", msg.Operation)
		}
		return c.engine.SavePlaylist(ctx, msg.Data.Playlist, false)
	case models.OpUpdatePlaylist:
		if msg.Data.Playlist == nil {
			return fmt.Errorf("consumer: %s missing playlist payload", msg.Operation)
		}
		return c.engine.SavePlaylist(ctx, msg.Data.Playlist, true)
	case models.OpDeletePlaylist:
		if msg.Data.PlaylistID == "" {
			return fmt.Errorf("consumer: %s missing playlistId", msg.Operation)
		}
		return c.engine.DeletePlaylist(ctx, msg.Data.PlaylistID)
	case models.OpCreateChannel:
		if msg.Data.Channel == nil {
			return fmt.Errorf("consumer: %s missing channel payload", msg.Operation)
		}
		return c.engine.SaveChannel(ctx, msg.Data.Channel, false)
	case models.OpUpdateChannel:
		if msg.Data.Channel == nil {
			return fmt.Errorf("consumer: %s missing channel payload", msg.Operation)
		}
		return c.engine.SaveChannel(ctx, msg.Data.Channel, true)
	case models.OpDeleteChannel:
		if msg.Data.ChannelID == "" {
			return fmt.Errorf("consumer: %s missing channelId", msg.Operation)
		}
		return c.engine.DeleteChannel(ctx, msg.Data.ChannelID)
	default:
		c.logger.Warn().Str("operation", msg.Operation).Msg("consumer: unrecognized operation, skipping")
		return nil
	}
}
