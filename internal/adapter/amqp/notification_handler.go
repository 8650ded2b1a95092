// Package amqp adapts broker deliveries into application calls.
package amqp

import (
	"context"
	"encoding/json"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/interfaces"
)

// NotificationHandler logs order lifecycle events for whoever watches the
// subscriber process; a front-of-house display would hook in here.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(lgr logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: lgr}
}

func (h *NotificationHandler) HandleEvent(ctx context.Context, body []byte) error {
	var event interfaces.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("event_parse_failed", "Failed to parse order event", "", nil, err)
		return err
	}

	details := map[string]any{
		"order_id":     event.OrderID,
		"table_number": event.TableNumber,
		"status":       string(event.Status),
	}
	if len(event.Lines) > 0 {
		details["line_count"] = len(event.Lines)
		details["total_amount"] = event.TotalAmount
	}
	h.logger.Info(event.Event, "Order event received", "", details)
	return nil
}
