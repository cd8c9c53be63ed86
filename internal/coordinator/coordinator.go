// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package coordinator implements the Write Coordinator: it validates
// caller input, synthesizes server-controlled fields (id, slug, created,
// item ids), signs the resulting resource, and dispatches either to the
// Storage Engine directly (sync path) or to the Queue Port (async path,
// selected by the caller via RFC 7240 Prefer: respond-async).
package coordinator

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/models"
	"github.com/tomtom215/cartographus/internal/queue"
	"github.com/tomtom215/cartographus/internal/signer"
	"github.com/tomtom215/cartographus/internal/storage"
)

// Coordinator is the Write Coordinator. It depends only on the Storage
// Engine and the Queue Port, never on a concrete provider.
type Coordinator struct {
	engine       *storage.Engine
	signer       *signer.Signer
	q            queue.Queue
	subject      string
	minDPVersion string
}

// New constructs a Write Coordinator.
func New(engine *storage.Engine, s *signer.Signer, q queue.Queue, subject, minDPVersion string) *Coordinator {
	return &Coordinator{engine: engine, signer: s, q: q, subject: subject, minDPVersion: minDPVersion}
}

// signPlaylist clears any caller-visible signature, signs the canonical
// playlist, and writes the resulting "ed25519:0x<hex>" signature into it.
// signChannel does the same for a Channel.
func (c *Coordinator) signPlaylist(p *models.Playlist) error {
	p.Signature = ""
	sig, err := c.signer.Sign(p)
	if err != nil {
		return err
	}
	p.Signature = sig
	return nil
}

func (c *Coordinator) signChannel(ch *models.Channel) error {
	ch.Signature = ""
	sig, err := c.signer.Sign(ch)
	if err != nil {
		return err
	}
	ch.Signature = sig
	return nil
}

// dispatchPlaylist commits a synthesized, signed Playlist. async selects
// the Queue Port path (returns once published, durability is the queue's
// job) over the direct Storage Engine path; isUpdate is forwarded to the
// Storage Engine's own save semantics (stale-item cleanup) independent of
// which path is taken.
func (c *Coordinator) dispatchPlaylist(ctx context.Context, operation string, p *models.Playlist, isUpdate, async bool) error {
	msg := models.NewWriteOperationMessage(operation, p.ID, models.WriteOperationData{Playlist: p})
	return c.publishOrStore(ctx, async, msg, func() error {
		return c.engine.SavePlaylist(ctx, p, isUpdate)
	})
}

func (c *Coordinator) dispatchChannel(ctx context.Context, operation string, ch *models.Channel, isUpdate, async bool) error {
	msg := models.NewWriteOperationMessage(operation, ch.ID, models.WriteOperationData{Channel: ch})
	return c.publishOrStore(ctx, async, msg, func() error {
		return c.engine.SaveChannel(ctx, ch, isUpdate)
	})
}

func (c *Coordinator) dispatchDeletePlaylist(ctx context.Context, id string, async bool) error {
	msg := models.NewWriteOperationMessage(models.OpDeletePlaylist, id, models.WriteOperationData{PlaylistID: id})
	return c.dispatchDelete(ctx, async, msg, func() error {
		return c.engine.DeletePlaylist(ctx, id)
	})
}

func (c *Coordinator) dispatchDeleteChannel(ctx context.Context, id string, async bool) error {
	msg := models.NewWriteOperationMessage(models.OpDeleteChannel, id, models.WriteOperationData{ChannelID: id})
	return c.dispatchDelete(ctx, async, msg, func() error {
		return c.engine.DeleteChannel(ctx, id)
	})
}

// publishOrStore is shared by the create/replace/patch dispatchers and, via
// dispatchDelete, by the delete dispatchers: the async flag is carried by
// the caller (derived from the Prefer header), not derived from isUpdate.
func (c *Coordinator) publishOrStore(ctx context.Context, async bool, msg models.WriteOperationMessage, sync func() error) error {
	if async {
		body, err := json.Marshal(msg)
		if err != nil {
			return &QueueError{Err: err}
		}
		if err := c.q.Publish(ctx, c.subject, body); err != nil {
			return &QueueError{Err: err}
		}
		return nil
	}
	if err := sync(); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (c *Coordinator) dispatchDelete(ctx context.Context, async bool, msg models.WriteOperationMessage, sync func() error) error {
	return c.publishOrStore(ctx, async, msg, sync)
}
