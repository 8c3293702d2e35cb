// Package stateupdate implements the State-Update Consumer:
// it drains the state-updates queue, fetches and decodes the referenced
// raw event, validates its payload, and dispatches it to the matching
// processor.
package stateupdate

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/openmohaa/match-pipeline/internal/broker"
	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/metrics"
	"github.com/openmohaa/match-pipeline/internal/processors"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// Consumer runs the state-update loop.
type Consumer struct {
	Store      store.Store
	Keys       store.Keys
	Processors map[events.EventType]processors.Processor
	Logger     *zap.SugaredLogger
}

// Run drains deliveries until the channel closes or ctx is canceled.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			gauge := metrics.ConsumerQueueDepth.WithLabelValues(broker.StateUpdatesQueue)
			gauge.Inc()
			c.handle(ctx, delivery)
			gauge.Dec()
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	eventID := string(delivery.Body)

	raw, err := c.Store.HGetAll(ctx, c.Keys.Event(eventID))
	if err != nil || len(raw) == 0 {
		c.Logger.Warnw("raw event not found for event id, dropping", "event_id", eventID, "error", err)
		metrics.StateUpdatesDropped.WithLabelValues("event_not_found").Inc()
		_ = delivery.Ack(false)
		return
	}

	eventType := events.ParseEventType(raw["type"])
	if eventType == events.Unknown {
		c.Logger.Warnw("unknown event type, dropping", "event_id", eventID, "event_type", raw["type"])
		metrics.StateUpdatesDropped.WithLabelValues("unknown_type").Inc()
		_ = delivery.Ack(false)
		return
	}

	payload, err := events.Decode(eventType, []byte(raw["payload"]))
	if err != nil {
		c.Logger.Warnw("payload failed validation, dropping",
			"event_id", eventID, "match_id", raw["matchID"], "event_type", string(eventType), "error", err)
		metrics.StateUpdatesDropped.WithLabelValues("invalid_payload").Inc()
		_ = delivery.Ack(false)
		return
	}

	proc, ok := c.Processors[eventType]
	if !ok {
		c.Logger.Errorw("no processor registered for event type", "event_id", eventID, "event_type", string(eventType))
		metrics.StateUpdatesDropped.WithLabelValues("unregistered_type").Inc()
		_ = delivery.Ack(false)
		return
	}

	event := events.Event{
		MatchID:   raw["matchID"],
		Type:      eventType,
		Timestamp: raw["timestamp"],
		Payload:   payload,
	}

	if err := proc.ProcessEvent(ctx, event); err != nil {
		c.Logger.Errorw("processor failed, nacking for redelivery",
			"event_id", eventID, "match_id", event.MatchID, "event_type", string(eventType), "error", err)
		metrics.StateUpdatesFailed.WithLabelValues(string(eventType)).Inc()
		_ = delivery.Nack(false, true)
		return
	}

	metrics.StateUpdatesProcessed.WithLabelValues(string(eventType)).Inc()
	_ = delivery.Ack(false)
}
