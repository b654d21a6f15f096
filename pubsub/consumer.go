package pubsub

import (
	"context"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"
)

// HandleFunc processes one message body to a terminal state. It never
// returns an error: the dispatcher converts every failure into a logged,
// monitored outcome before returning.
type HandleFunc func(ctx context.Context, body []byte)

// Consumer pulls messages from one durable queue, strictly one at a
// time, and acknowledges each message only after the handler has run it
// to completion. The single-threaded loop trades throughput for ordering
// and freedom from concurrent writes to the same entity id.
type Consumer struct {
	conn     *amqp091.Connection
	exchange string
	queue    string
	bindings []string
	log      *slog.Logger
}

func NewConsumer(conn *amqp091.Connection, exchange, queue string, bindings []string, logger *slog.Logger) *Consumer {
	return &Consumer{
		conn:     conn,
		exchange: exchange,
		queue:    queue,
		bindings: bindings,
		log:      logger,
	}
}

// Run declares the queue topology and consumes until the context is
// cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, handle HandleFunc) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	q, err := ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		return err
	}
	for _, key := range c.bindings {
		if err := ch.QueueBind(q.Name, key, c.exchange, false, nil); err != nil {
			return err
		}
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	c.log.Info("consumer started", slog.String("queue", q.Name), slog.String("exchange", c.exchange))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			handle(ctx, d.Body)
			// Ack only after the terminal state is reached; duplicates
			// on redelivery are absorbed by idempotent handlers.
			if err := d.Ack(false); err != nil {
				c.log.Error("ack failed", slog.Any("error", err))
			}
		}
	}
}
