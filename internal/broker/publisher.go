package broker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes messages to a single durable queue via the default
// exchange, using the queue name as the routing key (the reference
// implementation's exchange.publish(message, routing_key=queue.name)).
type Publisher struct {
	ch    *amqp.Channel
	queue string
}

// NewPublisher declares queue and returns a Publisher bound to it.
func (b *Broker) NewPublisher(queue string) (*Publisher, error) {
	ch, err := b.declareQueue(queue)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, queue: queue}, nil
}

// Publish sends body as a persistent message to the publisher's queue.
func (p *Publisher) Publish(ctx context.Context, body []byte) error {
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/octet-stream",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}

// Close releases the publisher's channel.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
