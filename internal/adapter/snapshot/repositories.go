package snapshot

import (
	"context"
	"sort"

	"tpv-server/internal/domain"
)

// The Store implements every repository interface directly; the pos-server
// wires the same *Store in wherever the postgres backend would supply a
// separate repository.

func (s *Store) FindByCode(ctx context.Context, code string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.data.Employees {
		if e.Code == code {
			return &domain.Employee{ID: e.ID, Name: e.Name, Code: e.Code}, nil
		}
	}
	return nil, domain.ErrInvalidCredential
}

func (s *Store) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*domain.MenuItem
	for _, m := range s.data.MenuItems {
		if domain.Category(m.Category) == category {
			items = append(items, &domain.MenuItem{
				ID: m.ID, Name: m.Name, Price: m.Price, Category: domain.Category(m.Category),
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) FindItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m := s.findMenuItem(id); m != nil {
		return &domain.MenuItem{ID: m.ID, Name: m.Name, Price: m.Price, Category: domain.Category(m.Category)}, nil
	}
	return nil, domain.ErrMenuItemNotFound
}

func (s *Store) List(ctx context.Context) ([]*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]*domain.Table, 0, len(s.data.Tables))
	for _, t := range s.data.Tables {
		tables = append(tables, &domain.Table{ID: t.ID, Number: t.Number, State: domain.TableState(t.State)})
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
	return tables, nil
}

func (s *Store) FindByNumber(ctx context.Context, number int) (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.findTableByNumber(number); t != nil {
		return &domain.Table{ID: t.ID, Number: t.Number, State: domain.TableState(t.State)}, nil
	}
	return nil, domain.ErrTableNotFound
}

func (s *Store) FindActiveByTable(ctx context.Context, tableID int) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.data.Orders {
		if rec.TableID == tableID && domain.Status(rec.Status).Active() {
			order := toDomainOrder(rec)
			order.Lines = s.linesOf(rec.ID)
			return order, nil
		}
	}
	return nil, domain.ErrNoActiveOrder
}

func (s *Store) Open(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.findTableByID(order.TableID)
	if table == nil {
		return domain.ErrTableNotFound
	}

	s.data.NextOrderID++
	order.ID = s.data.NextOrderID
	s.data.Orders = append(s.data.Orders, orderRecord{
		ID:         order.ID,
		TableID:    order.TableID,
		EmployeeID: order.EmployeeID,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	})
	table.State = string(domain.TableOccupied)

	return s.save()
}

func (s *Store) UpsertLine(ctx context.Context, orderID int, item *domain.MenuItem, unitPrice float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findOrder(orderID) == nil {
		return domain.ErrOrderNotFound
	}

	for i := range s.data.Lines {
		l := &s.data.Lines[i]
		if l.OrderID == orderID && l.MenuItemID == item.ID {
			// Aggregation key is (order, menu item): the line keeps the
			// unit price it was created with.
			l.Quantity++
			return s.save()
		}
	}

	s.data.NextLineID++
	s.data.Lines = append(s.data.Lines, lineRecord{
		ID:         s.data.NextLineID,
		OrderID:    orderID,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  unitPrice,
	})
	return s.save()
}

func (s *Store) MarkSent(ctx context.Context, orderID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.findOrder(orderID)
	if rec == nil {
		return domain.ErrOrderNotFound
	}
	if !domain.Status(rec.Status).Active() {
		return nil
	}
	rec.Status = string(domain.StatusSent)
	return s.save()
}

func (s *Store) Close(ctx context.Context, orderID, tableNumber int) error {
	return s.finish(orderID, tableNumber, domain.StatusClosed, false)
}

func (s *Store) Void(ctx context.Context, orderID, tableNumber int) error {
	return s.finish(orderID, tableNumber, domain.StatusVoided, true)
}

func (s *Store) finish(orderID, tableNumber int, status domain.Status, clearLines bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.findOrder(orderID)
	if rec == nil {
		return domain.ErrOrderNotFound
	}
	table := s.findTableByNumber(tableNumber)
	if table == nil {
		return domain.ErrTableNotFound
	}

	if clearLines {
		kept := s.data.Lines[:0]
		for _, l := range s.data.Lines {
			if l.OrderID != orderID {
				kept = append(kept, l)
			}
		}
		s.data.Lines = kept
	}

	rec.Status = string(status)
	table.State = string(domain.TableFree)
	return s.save()
}

func (s *Store) Lines(ctx context.Context, orderID int) ([]domain.OrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linesOf(orderID), nil
}

// linesOf collects the order's lines sorted by menu item name. Callers must
// hold at least the read lock.
func (s *Store) linesOf(orderID int) []domain.OrderLine {
	var lines []domain.OrderLine
	for _, l := range s.data.Lines {
		if l.OrderID == orderID {
			lines = append(lines, domain.OrderLine{
				ID:           l.ID,
				OrderID:      l.OrderID,
				MenuItemID:   l.MenuItemID,
				MenuItemName: s.menuItemName(l.MenuItemID),
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].MenuItemName < lines[j].MenuItemName })
	return lines
}
