package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tpv-server/internal/domain"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tpv.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store, path
}

func TestOpenSeedsDefaults(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("seeding should write the snapshot file: %v", err)
	}

	emp, err := store.FindByCode(ctx, "1234")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if emp.Name != "Admin" {
		t.Errorf("expected Admin for code 1234, got %s", emp.Name)
	}

	if _, err := store.FindByCode(ctx, "0000"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}

	tables, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tables) != 10 {
		t.Fatalf("expected 10 seeded tables, got %d", len(tables))
	}
	for i, table := range tables {
		if table.Number != i+1 {
			t.Errorf("tables out of order: position %d has number %d", i, table.Number)
		}
		if table.State != domain.TableFree {
			t.Errorf("table %d should start free", table.Number)
		}
	}

	drinks, err := store.ListByCategory(ctx, domain.CategoryDrink)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(drinks) != 5 {
		t.Fatalf("expected 5 seeded drinks, got %d", len(drinks))
	}
	for i := 1; i < len(drinks); i++ {
		if drinks[i-1].Name > drinks[i].Name {
			t.Errorf("drinks not sorted by name: %s before %s", drinks[i-1].Name, drinks[i].Name)
		}
	}
}

func TestMutationsSurviveReopen(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	table, err := store.FindByNumber(ctx, 2)
	if err != nil {
		t.Fatalf("FindByNumber failed: %v", err)
	}
	order := domain.NewOrder(table.ID, 1)
	if err := store.Open(ctx, order); err != nil {
		t.Fatalf("Open order failed: %v", err)
	}
	item, err := store.FindItem(ctx, 1)
	if err != nil {
		t.Fatalf("FindItem failed: %v", err)
	}
	if err := store.UpsertLine(ctx, order.ID, item, 2.5); err != nil {
		t.Fatalf("UpsertLine failed: %v", err)
	}

	// A fresh process reading the same file sees the committed state.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	active, err := reopened.FindActiveByTable(ctx, table.ID)
	if err != nil {
		t.Fatalf("FindActiveByTable failed after reopen: %v", err)
	}
	if active.ID != order.ID {
		t.Errorf("expected order %d, got %d", order.ID, active.ID)
	}
	if len(active.Lines) != 1 || active.Lines[0].MenuItemName != "Cocacola" {
		t.Errorf("unexpected lines after reopen: %+v", active.Lines)
	}

	tableAfter, err := reopened.FindByNumber(ctx, 2)
	if err != nil {
		t.Fatalf("FindByNumber failed after reopen: %v", err)
	}
	if tableAfter.State != domain.TableOccupied {
		t.Errorf("occupancy should survive reopen, got %s", tableAfter.State)
	}
}

func TestUpsertLineAggregates(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	table, _ := store.FindByNumber(ctx, 1)
	order := domain.NewOrder(table.ID, 1)
	if err := store.Open(ctx, order); err != nil {
		t.Fatalf("Open order failed: %v", err)
	}
	item, _ := store.FindItem(ctx, 1)

	if err := store.UpsertLine(ctx, order.ID, item, 2.5); err != nil {
		t.Fatalf("first UpsertLine failed: %v", err)
	}
	if err := store.UpsertLine(ctx, order.ID, item, 9.9); err != nil {
		t.Fatalf("second UpsertLine failed: %v", err)
	}

	lines, err := store.Lines(ctx, order.ID)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one aggregated line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 || lines[0].UnitPrice != 2.5 {
		t.Errorf("expected quantity 2 at the original price, got %+v", lines[0])
	}
}

func TestFinishUnknownReferences(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	if err := store.Close(ctx, 42, 1); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}

	table, _ := store.FindByNumber(ctx, 1)
	order := domain.NewOrder(table.ID, 1)
	if err := store.Open(ctx, order); err != nil {
		t.Fatalf("Open order failed: %v", err)
	}
	if err := store.Close(ctx, order.ID, 99); !errors.Is(err, domain.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestLinesUnknownOrderIsEmpty(t *testing.T) {
	store, _ := openTestStore(t)

	lines, err := store.Lines(context.Background(), 42)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines for unknown order, got %d", len(lines))
	}
}

func TestMarkSentIdempotent(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	table, _ := store.FindByNumber(ctx, 1)
	order := domain.NewOrder(table.ID, 1)
	if err := store.Open(ctx, order); err != nil {
		t.Fatalf("Open order failed: %v", err)
	}

	if err := store.MarkSent(ctx, order.ID); err != nil {
		t.Fatalf("MarkSent failed: %v", err)
	}
	if err := store.MarkSent(ctx, order.ID); err != nil {
		t.Fatalf("repeated MarkSent failed: %v", err)
	}

	if err := store.Close(ctx, order.ID, 1); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Terminal orders are left untouched.
	if err := store.MarkSent(ctx, order.ID); err != nil {
		t.Fatalf("MarkSent on closed order should be a no-op, got %v", err)
	}
	active, err := store.FindActiveByTable(ctx, table.ID)
	if !errors.Is(err, domain.ErrNoActiveOrder) {
		t.Errorf("closed order must not come back to life, got %+v (err %v)", active, err)
	}
}
