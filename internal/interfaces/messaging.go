package interfaces

import (
	"context"
	"time"

	"tpv-server/internal/domain"
)

const (
	EventOrderOpened = "order_opened"
	EventOrderSent   = "order_sent"
	EventOrderClosed = "order_closed"
	EventOrderVoided = "order_voided"
)

// OrderEvent is the message published on every order lifecycle transition.
type OrderEvent struct {
	Event       string           `json:"event"`
	OrderID     int              `json:"order_id"`
	TableNumber int              `json:"table_number"`
	EmployeeID  int              `json:"employee_id,omitempty"`
	Status      domain.Status    `json:"status"`
	TotalAmount float64          `json:"total_amount"`
	Lines       []OrderEventLine `json:"lines,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderEventLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// EventPublisher fans order lifecycle events out to interested consumers.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// EventConsumer delivers published order events to a handler.
type EventConsumer interface {
	ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error
}

type OrderEventHandler func(ctx context.Context, body []byte) error
