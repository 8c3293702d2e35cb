// Package ingress implements the Ingress Consumer: it drains
// the events queue, persists each message as a raw event record, and
// republishes the assigned event id onto the state-updates queue. It never
// interprets the envelope's type tag or payload - that is the state-update
// consumer's job.
package ingress

import (
	"context"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/openmohaa/match-pipeline/internal/broker"
	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/metrics"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// Publisher is the narrow broker capability the ingress consumer needs,
// letting tests substitute a fake without pulling in amqp091-go.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

// Consumer runs the ingress loop.
type Consumer struct {
	Store     store.Store
	Keys      store.Keys
	Publisher Publisher
	Logger    *zap.SugaredLogger
}

// Run drains deliveries until the channel closes or ctx is canceled.
// Malformed messages are acknowledged and dropped rather than redelivered;
// a message whose persistence or republish fails is nacked with requeue.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			gauge := metrics.ConsumerQueueDepth.WithLabelValues(broker.EventsQueue)
			gauge.Inc()
			c.handle(ctx, delivery)
			gauge.Dec()
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	stored, err := events.ParseEnvelope(delivery.Body)
	if err != nil {
		c.Logger.Warnw("dropping malformed event envelope", "error", err)
		metrics.EventsIngestDropped.WithLabelValues("malformed_json").Inc()
		_ = delivery.Ack(false)
		return
	}

	eventID := uuid.NewString()
	fields := map[string]any{
		"matchID":   stored.MatchID,
		"type":      stored.Type,
		"timestamp": stored.Timestamp,
		"payload":   stored.Payload,
	}
	if err := c.Store.HSet(ctx, c.Keys.Event(eventID), fields); err != nil {
		c.Logger.Errorw("failed to persist raw event, nacking for redelivery",
			"event_id", eventID, "match_id", stored.MatchID, "event_type", stored.Type, "error", err)
		_ = delivery.Nack(false, true)
		return
	}

	if err := c.Publisher.Publish(ctx, []byte(eventID)); err != nil {
		c.Logger.Errorw("failed to publish event id to state-updates queue, nacking for redelivery",
			"event_id", eventID, "match_id", stored.MatchID, "event_type", stored.Type, "error", err)
		_ = delivery.Nack(false, true)
		return
	}

	metrics.EventsIngested.Inc()
	c.Logger.Infow("ingested event",
		"event_id", eventID, "match_id", stored.MatchID, "event_type", stored.Type)
	_ = delivery.Ack(false)
}
