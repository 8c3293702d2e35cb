package broker

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer reads deliveries from a single durable queue with manual
// acknowledgement, holding at most `prefetch` unacknowledged messages at a
// time.
type Consumer struct {
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
}

// NewConsumer declares queue, sets the channel's QoS to prefetch, and
// starts consuming with auto-ack disabled.
func (b *Broker) NewConsumer(queue string, prefetch int) (*Consumer, error) {
	ch, err := b.declareQueue(queue)
	if err != nil {
		return nil, err
	}
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		return nil, err
	}
	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, err
	}
	return &Consumer{ch: ch, deliveries: deliveries}, nil
}

// Deliveries returns the channel of inbound deliveries. Each delivery must
// be Ack'd or Nack'd by the caller.
func (c *Consumer) Deliveries() <-chan amqp.Delivery {
	return c.deliveries
}

// Close cancels consumption and releases the consumer's channel.
func (c *Consumer) Close() error {
	return c.ch.Close()
}
