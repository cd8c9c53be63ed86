// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package logging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillAdapter implements watermill.LoggerAdapter over zerolog, the same
// adapt-a-foreign-logger-interface idiom as SlogHandler, so the NATS/Watermill
// Queue Port (internal/queue) logs through the same global zerolog sink as
// everything else instead of watermill's own stdlib-log-based default.
type WatermillAdapter struct {
	logger zerolog.Logger
	fields watermill.LogFields
}

// NewWatermillAdapter wraps the global zerolog logger for Watermill.
func NewWatermillAdapter() *WatermillAdapter {
	return &WatermillAdapter{logger: Logger()}
}

func (a *WatermillAdapter) event(base *zerolog.Event) *zerolog.Event {
	for k, v := range a.fields {
		base = base.Interface(k, v)
	}
	return base
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.event(a.logger.Error().Err(err)).Msg(msg)
	_ = fields
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	merged := mergeFields(a.fields, fields)
	a.withFields(merged).Info().Msg(msg)
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	merged := mergeFields(a.fields, fields)
	a.withFields(merged).Debug().Msg(msg)
}

func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	merged := mergeFields(a.fields, fields)
	a.withFields(merged).Trace().Msg(msg)
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{logger: a.logger, fields: mergeFields(a.fields, fields)}
}

func (a *WatermillAdapter) withFields(fields watermill.LogFields) *zeroEventBuilder {
	return &zeroEventBuilder{logger: a.logger, fields: fields}
}

// zeroEventBuilder defers picking the zerolog level until Info/Debug/Trace is
// called, since zerolog.Event doesn't expose its level once started.
type zeroEventBuilder struct {
	logger zerolog.Logger
	fields watermill.LogFields
}

func (b *zeroEventBuilder) Info() *zerolog.Event  { return applyFields(b.logger.Info(), b.fields) }
func (b *zeroEventBuilder) Debug() *zerolog.Event { return applyFields(b.logger.Debug(), b.fields) }
func (b *zeroEventBuilder) Trace() *zerolog.Event { return applyFields(b.logger.Trace(), b.fields) }

func applyFields(e *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}

func mergeFields(base, extra watermill.LogFields) watermill.LogFields {
	if len(base) == 0 {
		return extra
	}
	merged := make(watermill.LogFields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
