package interfaces

import (
	"context"

	"tpv-server/internal/domain"
)

// EmployeeRepository reads the waitstaff reference data.
type EmployeeRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Employee, error)
}

// MenuRepository reads the article catalog.
type MenuRepository interface {
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error)
	FindItem(ctx context.Context, id int) (*domain.MenuItem, error)
}

// TableRepository reads tables and their derived occupancy. Occupancy is
// never written through this interface; only order lifecycle mutations on
// OrderRepository may flip it.
type TableRepository interface {
	List(ctx context.Context) ([]*domain.Table, error)
	FindByNumber(ctx context.Context, number int) (*domain.Table, error)
}

// OrderRepository persists the order ledger. Every mutating method is a
// single durable commit: the postgres adapter wraps multi-statement work in
// one transaction, the snapshot adapter rewrites its backing file.
type OrderRepository interface {
	// FindActiveByTable returns the open or sent order for a table together
	// with its lines, or domain.ErrNoActiveOrder.
	FindActiveByTable(ctx context.Context, tableID int) (*domain.Order, error)

	// Open inserts a new open order and marks its table occupied in the
	// same commit, filling in the generated order ID.
	Open(ctx context.Context, order *domain.Order) error

	// UpsertLine increments the (order, menu item) line quantity by one,
	// inserting a quantity-1 line at the given unit price when absent. An
	// existing line keeps the unit price it was created with.
	UpsertLine(ctx context.Context, orderID int, item *domain.MenuItem, unitPrice float64) error

	// MarkSent moves an open or sent order to sent. Terminal orders are
	// left untouched; no occupancy change either way.
	MarkSent(ctx context.Context, orderID int) error

	// Close sets the order closed and frees the table in the same commit.
	Close(ctx context.Context, orderID, tableNumber int) error

	// Void deletes the order's lines, sets it voided and frees the table
	// in the same commit.
	Void(ctx context.Context, orderID, tableNumber int) error

	// Lines returns the order's lines ordered by menu item name ascending;
	// empty for unknown order IDs.
	Lines(ctx context.Context, orderID int) ([]domain.OrderLine, error)
}
