package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"tpv-server/internal/interfaces"
)

type publisher struct {
	conn Connection
	mu   sync.Mutex
	ch   Channel
}

// NewPublisher publishes order lifecycle events on the orders exchange. The
// channel is opened lazily and reopened after broker hiccups.
func NewPublisher(conn Connection) interfaces.EventPublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishOrderEvent(ctx context.Context, event interfaces.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, OrdersExchange, routingKey(event.Event), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

// routingKey turns order_sent into order.sent.
func routingKey(event string) string {
	return strings.Replace(event, "_", ".", 1)
}

func (p *publisher) channel() (Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		return p.ch, nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.ch = ch
	return ch, nil
}

func (p *publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
		p.ch = nil
	}
}
