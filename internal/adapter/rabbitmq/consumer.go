package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/interfaces"
)

type consumer struct {
	conn     Connection
	prefetch int
	logger   logger.Logger
}

func NewConsumer(conn Connection, prefetch int, lgr logger.Logger) interfaces.EventConsumer {
	return &consumer{conn: conn, prefetch: prefetch, logger: lgr}
}

// ConsumeOrderEvents delivers every order lifecycle event to the handler,
// reconnecting with a fixed backoff when the broker drops the channel.
func (c *consumer) ConsumeOrderEvents(ctx context.Context, handler interfaces.OrderEventHandler) error {
	for {
		err := c.consumeOnce(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Error("consumer_disconnected", "Order events consumer disconnected, reconnecting", "", nil, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (c *consumer) consumeOnce(ctx context.Context, handler interfaces.OrderEventHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	queue, err := ch.QueueDeclare(NotificationsQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(queue.Name, "order.#", OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	deliveries, err := ch.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := handler(ctx, d.Body); err != nil {
				c.logger.Error("event_handling_failed", "Failed to handle order event", "", nil, err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}
