package interfaces

import (
	"context"

	"tpv-server/internal/domain"
)

// CatalogService serves the read-mostly reference data.
type CatalogService interface {
	Login(ctx context.Context, code string) (*domain.Employee, error)
	MenuItems(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error)
}

// FloorService answers table occupancy queries.
type FloorService interface {
	Tables(ctx context.Context) ([]*domain.Table, error)
}

// LedgerService owns the order/table state machine.
type LedgerService interface {
	// ActiveOrder returns the open or sent order for a table with its
	// lines sorted by name, or domain.ErrNoActiveOrder.
	ActiveOrder(ctx context.Context, tableNumber int) (*domain.Order, error)

	// AddItem finds or creates the table's active order, upserts the line
	// and returns the order ID.
	AddItem(ctx context.Context, cmd AddItemCommand) (int, error)

	Send(ctx context.Context, orderID int) error
	Close(ctx context.Context, orderID, tableNumber int) error
	Void(ctx context.Context, orderID, tableNumber int) error
}

// AddItemCommand carries one add-item request. The unit price is the price
// quoted to the guest at add time; it is stored as-is on the new line.
type AddItemCommand struct {
	TableNumber int
	EmployeeID  int
	MenuItemID  int
	UnitPrice   float64
}
