// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metrics"
)

// NATSConfig configures the Watermill/JetStream-backed Queue Port.
type NATSConfig struct {
	URL           string
	StreamName    string
	DurableName   string
	MaxReconnects int
	ReconnectWait time.Duration
	AckWaitTimeout time.Duration
}

// NATS implements Queue on top of NATS JetStream via Watermill, with
// Nats-Msg-Id set to the Watermill message UUID, which is generated afresh
// for every publish; two publishes of the same body are not deduplicated.
type NATS struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	cb         *gobreaker.CircuitBreaker[any]
	logger     watermill.LoggerAdapter

	mu     sync.Mutex
	closed bool
}

// NewNATS dials NATS and constructs Watermill publisher and subscriber
// bound to cfg.StreamName.
func NewNATS(cfg NATSConfig, logger watermill.LoggerAdapter) (*NATS, error) {
	if logger == nil {
		logger = logging.NewWatermillAdapter()
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
	}

	pubConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			TrackMsgId:    true,
		},
	}
	pub, err := wmNats.NewPublisher(pubConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("queue: create nats publisher: %w", err)
	}

	subOpts := []natsgo.SubOpt{
		natsgo.AckWait(cfg.AckWaitTimeout),
		natsgo.DeliverNew(),
	}
	autoProvision := true
	if cfg.StreamName != "" {
		subOpts = append(subOpts, natsgo.BindStream(cfg.StreamName))
		autoProvision = false
	}

	subConfig := wmNats.SubscriberConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Unmarshaler: &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:         false,
			AutoProvision:    autoProvision,
			AckAsync:         false,
			SubscribeOptions: subOpts,
			DurablePrefix:    cfg.DurableName,
		},
	}
	sub, err := wmNats.NewSubscriber(subConfig, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("queue: create nats subscriber: %w", err)
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "dp1-queue-publish",
		Timeout: 30 * time.Second,
	})

	return &NATS{publisher: pub, subscriber: sub, cb: cb, logger: logger}, nil
}

func (n *NATS) Publish(ctx context.Context, subject string, body []byte) error {
	return n.PublishBatch(ctx, subject, [][]byte{body})
}

func (n *NATS) PublishBatch(_ context.Context, subject string, bodies [][]byte) error {
	for _, body := range bodies {
		msg := message.NewMessage(watermill.NewUUID(), body)
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)

		_, err := n.cb.Execute(func() (any, error) {
			return nil, n.publisher.Publish(subject, msg)
		})
		metrics.RecordQueuePublish(subject, err)
		if err != nil {
			return fmt.Errorf("queue: publish to %s: %w", subject, err)
		}
	}
	return nil
}

func (n *NATS) Subscribe(ctx context.Context, subject string, batchSize int) (<-chan Batch, error) {
	messages, err := n.subscriber.Subscribe(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("queue: subscribe to %s: %w", subject, err)
	}

	out := make(chan Batch)
	go n.batchLoop(ctx, messages, out, batchSize)
	return out, nil
}

// batchLoop groups incoming Watermill messages into batches of up to
// batchSize, flushing early on a short idle timeout so a slow trickle of
// messages doesn't stall the consumer (§4.6.2 batch-level ack discipline).
func (n *NATS) batchLoop(ctx context.Context, messages <-chan *message.Message, out chan<- Batch, batchSize int) {
	defer close(out)

	const idleFlush = 200 * time.Millisecond
	var pending []Delivery
	timer := time.NewTimer(idleFlush)
	defer timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := Batch{Deliveries: pending}
		pending = nil
		select {
		case out <- batch:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case msg, ok := <-messages:
			if !ok {
				flush()
				return
			}
			pending = append(pending, deliveryFrom(msg))
			if len(pending) >= batchSize {
				flush()
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(idleFlush)
		case <-timer.C:
			flush()
			timer.Reset(idleFlush)
		}
	}
}

func deliveryFrom(msg *message.Message) Delivery {
	return Delivery{
		Body: msg.Payload,
		Ack:  func() error { msg.Ack(); return nil },
		Nack: func() error { msg.Nack(); return nil },
	}
}

func (n *NATS) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true

	pubErr := n.publisher.Close()
	subErr := n.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}
