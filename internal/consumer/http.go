// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package consumer

import (
	"context"
	"errors"
	"fmt"
)

// MessageResult is the outcome of processing a single message via the
// /queues/process-message route.
type MessageResult struct {
	Success        bool   `json:"success"`
	ProcessedCount int    `json:"processedCount"`
	MessageID      string `json:"messageId,omitempty"`
}

// BatchResult is the outcome of processing a batch of messages via the
// /queues/process-batch route.
type BatchResult struct {
	Success        bool     `json:"success"`
	ProcessedCount int      `json:"processedCount"`
	MessageIDs     []string `json:"messageIds"`
	Errors         []string `json:"errors,omitempty"`
}

// ErrInvalidMessage signals a structurally invalid message body (the
// invalid_message error tag).
var ErrInvalidMessage = fmt.Errorf("consumer: invalid message body")

// ProcessMessage decodes and dispatches a single raw message body
// synchronously, bypassing the Queue Port entirely. Used by the
// /queues/process-message route, which lets an operator or test harness
// drive the consumer without a live queue backend.
func (c *Consumer) ProcessMessage(ctx context.Context, body []byte) (MessageResult, error) {
	msg, err := c.processRaw(ctx, body)
	if err != nil {
		if errors.Is(err, errMalformedMessage) {
			return MessageResult{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return MessageResult{}, err
	}
	return MessageResult{Success: true, ProcessedCount: 1, MessageID: msg.ID}, nil
}

// ProcessBatch decodes and dispatches each raw message body in turn,
// accumulating per-message errors rather than stopping at the first one.
func (c *Consumer) ProcessBatch(ctx context.Context, bodies [][]byte) (BatchResult, error) {
	var result BatchResult
	for _, body := range bodies {
		msg, err := c.processRaw(ctx, body)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.ProcessedCount++
		result.MessageIDs = append(result.MessageIDs, msg.ID)
	}
	result.Success = len(result.Errors) == 0
	return result, nil
}
