package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type ConnectOptions struct {
	URL      string
	Attempts int
	Delay    time.Duration
	Logger   *slog.Logger
}

const maxDialDelay = 60 * time.Second

// DialWithRetry connects to RabbitMQ with capped exponential backoff,
// honoring context cancellation so shutdown is not blocked by a broker
// outage.
func DialWithRetry(ctx context.Context, opts ConnectOptions) (*amqp091.Connection, error) {
	var lastErr error

	for i := 1; i <= opts.Attempts; i++ {
		conn, err := amqp091.Dial(opts.URL)
		if err == nil {
			if i > 1 {
				opts.Logger.Info("broker connected", slog.Int("attempt", i))
			}
			return conn, nil
		}
		lastErr = err

		sleep := opts.Delay * time.Duration(math.Pow(2, float64(i-1)))
		if sleep > maxDialDelay {
			sleep = maxDialDelay
		}
		opts.Logger.Warn("broker dial failed",
			slog.Int("attempt", i),
			slog.Duration("sleep", sleep),
			slog.Any("error", err),
		)

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("dial cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w",
		opts.Attempts, lastErr)
}
