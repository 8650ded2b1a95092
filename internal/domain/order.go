package domain

import (
	"sort"
	"time"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusSent   Status = "sent"
	StatusClosed Status = "closed"
	StatusVoided Status = "voided"
)

// Active reports whether an order in this status still belongs to its table:
// it is visible to waitstaff and accepts further line items. A sent order
// stays active so a second round can be added before payment.
func (s Status) Active() bool {
	return s == StatusOpen || s == StatusSent
}

// Terminal reports whether the status ends the order lifecycle.
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusVoided
}

// Order represents the tab for a table, from creation on the first item
// until payment or void. At most one active order references a table.
type Order struct {
	ID         int
	TableID    int
	EmployeeID int
	Status     Status
	CreatedAt  time.Time
	Lines      []OrderLine
}

// OrderLine aggregates one menu item within an order. Lines are unique per
// (order, menu item); re-adding an item increments the quantity. The unit
// price is fixed when the line is first added and survives catalog changes.
type OrderLine struct {
	ID           int
	OrderID      int
	MenuItemID   int
	MenuItemName string
	Quantity     int
	UnitPrice    float64
}

// NewOrder creates an open order for a table.
func NewOrder(tableID, employeeID int) *Order {
	return &Order{
		TableID:    tableID,
		EmployeeID: employeeID,
		Status:     StatusOpen,
		CreatedAt:  time.Now(),
	}
}

// AddLine upserts a line for the given menu item: an existing line gains
// quantity 1 and keeps its original unit price, otherwise a new line with
// quantity 1 is appended. Returns the affected line.
func (o *Order) AddLine(item MenuItem, unitPrice float64) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].MenuItemID == item.ID {
			o.Lines[i].Quantity++
			return &o.Lines[i]
		}
	}
	o.Lines = append(o.Lines, OrderLine{
		OrderID:      o.ID,
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     1,
		UnitPrice:    unitPrice,
	})
	return &o.Lines[len(o.Lines)-1]
}

// MarkSent transitions open|sent -> sent. Other statuses are left untouched
// so the operation stays idempotent without reviving a terminal order.
func (o *Order) MarkSent() bool {
	if !o.Status.Active() {
		return false
	}
	o.Status = StatusSent
	return true
}

// Close ends the order on the payment path. Lines are retained.
func (o *Order) Close() {
	o.Status = StatusClosed
}

// Void ends the order discarding its lines. The order row itself is kept
// with the distinct voided status for later audit.
func (o *Order) Void() {
	o.Lines = nil
	o.Status = StatusVoided
}

// TotalAmount sums quantity times unit price over all lines.
func (o *Order) TotalAmount() float64 {
	total := 0.0
	for _, l := range o.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// SortLines orders the lines by menu item name ascending, the order every
// line listing uses.
func (o *Order) SortLines() {
	sort.Slice(o.Lines, func(i, j int) bool {
		return o.Lines[i].MenuItemName < o.Lines[j].MenuItemName
	})
}
