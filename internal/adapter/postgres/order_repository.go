package postgres

import (
	"context"
	"fmt"

	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindActiveByTable(ctx context.Context, tableID int) (*domain.Order, error) {
	var order domain.Order
	err := r.db.QueryRow(ctx, `
		SELECT id, table_id, employee_id, status, created_at
		FROM orders
		WHERE table_id = $1 AND status IN ('open', 'sent')
		ORDER BY id
		LIMIT 1
	`, tableID).Scan(&order.ID, &order.TableID, &order.EmployeeID, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, translateErr(err, domain.ErrNoActiveOrder)
	}

	lines, err := r.Lines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

// Open inserts the order and occupies its table in one transaction, so a
// crash can never leave an occupied table without a backing order.
func (r *orderRepository) Open(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (table_id, employee_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, order.TableID, order.EmployeeID, order.Status, order.CreatedAt).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", translateErr(err, domain.ErrOrderNotFound))
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tables SET state = 'occupied' WHERE id = $1`, order.TableID,
	); err != nil {
		return fmt.Errorf("failed to occupy table: %w", err)
	}

	return tx.Commit(ctx)
}

// UpsertLine relies on the (order_id, menu_item_id) unique constraint: the
// conflict branch only bumps the quantity, leaving the original unit price
// in place.
func (r *orderRepository) UpsertLine(ctx context.Context, orderID int, item *domain.MenuItem, unitPrice float64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, unit_price)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (order_id, menu_item_id)
		DO UPDATE SET quantity = order_lines.quantity + 1
	`, orderID, item.ID, unitPrice)
	if err != nil {
		return fmt.Errorf("failed to upsert order line: %w", translateErr(err, domain.ErrOrderNotFound))
	}
	return nil
}

func (r *orderRepository) MarkSent(ctx context.Context, orderID int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = 'sent'
		WHERE id = $1 AND status IN ('open', 'sent')
	`, orderID)
	if err != nil {
		return fmt.Errorf("failed to mark order sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.checkExists(ctx, orderID)
	}
	return nil
}

func (r *orderRepository) Close(ctx context.Context, orderID, tableNumber int) error {
	return r.finish(ctx, orderID, tableNumber, domain.StatusClosed, false)
}

func (r *orderRepository) Void(ctx context.Context, orderID, tableNumber int) error {
	return r.finish(ctx, orderID, tableNumber, domain.StatusVoided, true)
}

func (r *orderRepository) finish(ctx context.Context, orderID, tableNumber int, status domain.Status, clearLines bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if clearLines {
		if _, err := tx.Exec(ctx,
			`DELETE FROM order_lines WHERE order_id = $1`, orderID,
		); err != nil {
			return fmt.Errorf("failed to delete order lines: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	tag, err = tx.Exec(ctx, `UPDATE tables SET state = 'free' WHERE number = $1`, tableNumber)
	if err != nil {
		return fmt.Errorf("failed to free table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) Lines(ctx context.Context, orderID int) ([]domain.OrderLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.order_id, l.menu_item_id, m.name, l.quantity, l.unit_price
		FROM order_lines l
		JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.order_id = $1
		ORDER BY m.name
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.MenuItemID, &l.MenuItemName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *orderRepository) checkExists(ctx context.Context, orderID int) error {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	return nil
}
