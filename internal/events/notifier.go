// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// TopicVehicleChanges is the topic every change event is published on.
const TopicVehicleChanges = "torque.vehicle.changes"

// ErrClosed is returned after Close.
var ErrClosed = errors.New("notifier closed")

// Config tunes the notifier.
type Config struct {
	// OutputBuffer is the per-subscriber Watermill channel buffer.
	OutputBuffer int64

	// SubscriberBuffer is the buffer of channels returned by Subscribe.
	SubscriberBuffer int

	// FailureThreshold consecutive publish failures open the breaker for
	// BreakerTimeout.
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		OutputBuffer:     256,
		SubscriberBuffer: 64,
		FailureThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// Notifier fans change events out to subscribers.
type Notifier struct {
	pubsub  *gochannel.GoChannel
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  watermill.LoggerAdapter
	cfg     Config

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	published atomic.Int64
	failed    atomic.Int64
	delivered atomic.Int64
	dropped   atomic.Int64
}

// NewNotifier creates a notifier. A nil logger falls back to Watermill's
// standard logger.
func NewNotifier(cfg Config, logger watermill.LoggerAdapter) *Notifier {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	def := DefaultConfig()
	if cfg.OutputBuffer <= 0 {
		cfg.OutputBuffer = def.OutputBuffer
	}
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = def.SubscriberBuffer
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}

	n := &Notifier{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            cfg.OutputBuffer,
			BlockPublishUntilSubscriberAck: false,
		}, logger),
		logger: logger,
		cfg:    cfg,
	}
	n.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "change-notifier",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed", watermill.LogFields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return n
}

// Publish encodes ev and hands it to the pub/sub. It does not wait for
// subscribers.
func (n *Notifier) Publish(_ context.Context, ev models.ChangeEvent) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrClosed
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("account", ev.Account)
	msg.Metadata.Set("reason", string(ev.Reason))

	_, err = n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.pubsub.Publish(TopicVehicleChanges, msg)
	})
	if err != nil {
		n.failed.Add(1)
		return fmt.Errorf("publish change event: %w", err)
	}
	n.published.Add(1)
	return nil
}

// Subscribe returns a channel of decoded events that is closed when ctx is
// done or the notifier closes. When the consumer falls behind by more than
// the subscriber buffer, events are dropped rather than stalling delivery.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan models.ChangeEvent, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil, ErrClosed
	}

	msgs, err := n.pubsub.Subscribe(ctx, TopicVehicleChanges)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", TopicVehicleChanges, err)
	}

	out := make(chan models.ChangeEvent, n.cfg.SubscriberBuffer)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer close(out)
		for msg := range msgs {
			var ev models.ChangeEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				n.logger.Error("dropping undecodable change event", err, watermill.LogFields{"uuid": msg.UUID})
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- ev:
				n.delivered.Add(1)
			default:
				n.dropped.Add(1)
			}
		}
	}()
	return out, nil
}

// Stats is a snapshot of notifier counters.
type Stats struct {
	Published    int64  `json:"published"`
	Failed       int64  `json:"failed"`
	Delivered    int64  `json:"delivered"`
	Dropped      int64  `json:"dropped"`
	BreakerState string `json:"breaker_state"`
}

// Stats returns the current counters.
func (n *Notifier) Stats() Stats {
	return Stats{
		Published:    n.published.Load(),
		Failed:       n.failed.Load(),
		Delivered:    n.delivered.Load(),
		Dropped:      n.dropped.Load(),
		BreakerState: n.breaker.State().String(),
	}
}

// Close shuts the pub/sub down and waits for subscriber goroutines.
func (n *Notifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	n.mu.Unlock()

	err := n.pubsub.Close()
	n.wg.Wait()
	return err
}
