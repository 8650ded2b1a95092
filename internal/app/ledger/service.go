// Package ledger owns the order/table state machine: one active order per
// table, line aggregation per menu item, and the occupancy flips that ride
// along with the lifecycle transitions.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type Service struct {
	orders    interfaces.OrderRepository
	tables    interfaces.TableRepository
	menu      interfaces.MenuRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
	locks     *tableLocks
}

func NewService(
	orders interfaces.OrderRepository,
	tables interfaces.TableRepository,
	menu interfaces.MenuRepository,
	publisher interfaces.EventPublisher,
	lgr logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		tables:    tables,
		menu:      menu,
		publisher: publisher,
		logger:    lgr,
		locks:     newTableLocks(),
	}
}

// ActiveOrder returns the open or sent order for a table. An unknown table
// number is a normal "no active order" result on the read path; only writes
// report it as not found.
func (s *Service) ActiveOrder(ctx context.Context, tableNumber int) (*domain.Order, error) {
	table, err := s.tables.FindByNumber(ctx, tableNumber)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return nil, domain.ErrNoActiveOrder
		}
		return nil, err
	}
	return s.orders.FindActiveByTable(ctx, table.ID)
}

// AddItem runs the find-or-create-then-upsert sequence under the table's
// lock. A table with no active order gets a fresh open order and flips to
// occupied in the same commit.
func (s *Service) AddItem(ctx context.Context, cmd interfaces.AddItemCommand) (int, error) {
	lock := s.locks.forTable(cmd.TableNumber)
	lock.Lock()
	defer lock.Unlock()

	table, err := s.tables.FindByNumber(ctx, cmd.TableNumber)
	if err != nil {
		return 0, err
	}

	item, err := s.menu.FindItem(ctx, cmd.MenuItemID)
	if err != nil {
		return 0, err
	}

	order, err := s.orders.FindActiveByTable(ctx, table.ID)
	switch {
	case errors.Is(err, domain.ErrNoActiveOrder):
		order = domain.NewOrder(table.ID, cmd.EmployeeID)
		if err := s.orders.Open(ctx, order); err != nil {
			return 0, fmt.Errorf("failed to open order: %w", err)
		}
		s.logger.Debug("order_opened", fmt.Sprintf("Opened order %d for table %d", order.ID, table.Number), "", map[string]any{
			"order_id":     order.ID,
			"table_number": table.Number,
			"employee_id":  cmd.EmployeeID,
		})
		s.publish(ctx, interfaces.OrderEvent{
			Event:       interfaces.EventOrderOpened,
			OrderID:     order.ID,
			TableNumber: table.Number,
			EmployeeID:  cmd.EmployeeID,
			Status:      domain.StatusOpen,
		})
	case err != nil:
		return 0, err
	}

	if err := s.orders.UpsertLine(ctx, order.ID, item, cmd.UnitPrice); err != nil {
		return 0, err
	}

	return order.ID, nil
}

// Send marks the order sent and publishes the ticket. Occupancy is not
// touched; the table stays occupied until the order is closed or voided.
func (s *Service) Send(ctx context.Context, orderID int) error {
	if err := s.orders.MarkSent(ctx, orderID); err != nil {
		return err
	}

	lines, err := s.orders.Lines(ctx, orderID)
	if err != nil {
		return err
	}

	event := interfaces.OrderEvent{
		Event:   interfaces.EventOrderSent,
		OrderID: orderID,
		Status:  domain.StatusSent,
		Lines:   make([]interfaces.OrderEventLine, 0, len(lines)),
	}
	for _, l := range lines {
		event.TotalAmount += l.UnitPrice * float64(l.Quantity)
		event.Lines = append(event.Lines, interfaces.OrderEventLine{
			Name:      l.MenuItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	s.publish(ctx, event)

	return nil
}

// Close ends the order on the payment path and frees the table.
func (s *Service) Close(ctx context.Context, orderID, tableNumber int) error {
	lock := s.locks.forTable(tableNumber)
	lock.Lock()
	defer lock.Unlock()

	if err := s.orders.Close(ctx, orderID, tableNumber); err != nil {
		return err
	}
	s.publish(ctx, interfaces.OrderEvent{
		Event:       interfaces.EventOrderClosed,
		OrderID:     orderID,
		TableNumber: tableNumber,
		Status:      domain.StatusClosed,
	})
	return nil
}

// Void discards the order's lines, ends it with the voided status and frees
// the table.
func (s *Service) Void(ctx context.Context, orderID, tableNumber int) error {
	lock := s.locks.forTable(tableNumber)
	lock.Lock()
	defer lock.Unlock()

	if err := s.orders.Void(ctx, orderID, tableNumber); err != nil {
		return err
	}
	s.publish(ctx, interfaces.OrderEvent{
		Event:       interfaces.EventOrderVoided,
		OrderID:     orderID,
		TableNumber: tableNumber,
		Status:      domain.StatusVoided,
	})
	return nil
}

// publish fans an event out on a best-effort basis. The committed mutation
// is the source of truth; a broker failure is logged, not surfaced.
func (s *Service) publish(ctx context.Context, event interfaces.OrderEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order event", "", map[string]any{
			"event":    event.Event,
			"order_id": event.OrderID,
		}, err)
	}
}
