// Package snapshot implements the repositories on an in-memory dataset that
// is rewritten to a JSON file after every mutating call. A crash between a
// mutation and its snapshot loses that mutation; this backend trades
// durability for running without a database server.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tpv-server/internal/domain"
)

// Store holds the whole dataset behind one RWMutex. Reads never touch the
// backing file.
type Store struct {
	mu   sync.RWMutex
	path string
	data dataset
}

type dataset struct {
	NextOrderID int              `json:"next_order_id"`
	NextLineID  int              `json:"next_line_id"`
	Employees   []employeeRecord `json:"employees"`
	MenuItems   []menuItemRecord `json:"menu_items"`
	Tables      []tableRecord    `json:"tables"`
	Orders      []orderRecord    `json:"orders"`
	Lines       []lineRecord     `json:"order_lines"`
}

type employeeRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type menuItemRecord struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type tableRecord struct {
	ID     int    `json:"id"`
	Number int    `json:"number"`
	State  string `json:"state"`
}

type orderRecord struct {
	ID         int       `json:"id"`
	TableID    int       `json:"table_id"`
	EmployeeID int       `json:"employee_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type lineRecord struct {
	ID         int     `json:"id"`
	OrderID    int     `json:"order_id"`
	MenuItemID int     `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// Open loads the dataset from path, seeding the default catalog when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
		}
	case os.IsNotExist(err):
		s.data = seedDataset()
		if err := s.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	return s, nil
}

// save serializes the whole dataset and replaces the backing file. Callers
// must hold the write lock. Write-then-rename keeps the file parseable even
// if the process dies mid-write.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *Store) findOrder(id int) *orderRecord {
	for i := range s.data.Orders {
		if s.data.Orders[i].ID == id {
			return &s.data.Orders[i]
		}
	}
	return nil
}

func (s *Store) findTableByNumber(number int) *tableRecord {
	for i := range s.data.Tables {
		if s.data.Tables[i].Number == number {
			return &s.data.Tables[i]
		}
	}
	return nil
}

func (s *Store) findTableByID(id int) *tableRecord {
	for i := range s.data.Tables {
		if s.data.Tables[i].ID == id {
			return &s.data.Tables[i]
		}
	}
	return nil
}

func (s *Store) findMenuItem(id int) *menuItemRecord {
	for i := range s.data.MenuItems {
		if s.data.MenuItems[i].ID == id {
			return &s.data.MenuItems[i]
		}
	}
	return nil
}

func (s *Store) menuItemName(id int) string {
	if item := s.findMenuItem(id); item != nil {
		return item.Name
	}
	return ""
}

func toDomainOrder(rec orderRecord) *domain.Order {
	return &domain.Order{
		ID:         rec.ID,
		TableID:    rec.TableID,
		EmployeeID: rec.EmployeeID,
		Status:     domain.Status(rec.Status),
		CreatedAt:  rec.CreatedAt,
	}
}
