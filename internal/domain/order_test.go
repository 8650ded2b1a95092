package domain

import "testing"

func TestAddLineAggregatesQuantity(t *testing.T) {
	order := NewOrder(1, 1)
	cola := MenuItem{ID: 1, Name: "Cocacola", Price: 2.5, Category: CategoryDrink}

	order.AddLine(cola, 2.5)
	order.AddLine(cola, 3.0)

	if len(order.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(order.Lines))
	}
	line := order.Lines[0]
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
	if line.UnitPrice != 2.5 {
		t.Errorf("expected the first unit price 2.5 to stick, got %v", line.UnitPrice)
	}
}

func TestAddLineSeparateItems(t *testing.T) {
	order := NewOrder(1, 1)
	order.AddLine(MenuItem{ID: 1, Name: "Cocacola"}, 2.5)
	order.AddLine(MenuItem{ID: 6, Name: "Beer"}, 2.0)

	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Lines))
	}
}

func TestMarkSentTransitions(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		want     bool
		wantStat Status
	}{
		{"open order is sent", StatusOpen, true, StatusSent},
		{"sent order stays sent", StatusSent, true, StatusSent},
		{"closed order is untouched", StatusClosed, false, StatusClosed},
		{"voided order is untouched", StatusVoided, false, StatusVoided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder(1, 1)
			order.Status = tt.status
			if got := order.MarkSent(); got != tt.want {
				t.Errorf("MarkSent() = %v, want %v", got, tt.want)
			}
			if order.Status != tt.wantStat {
				t.Errorf("status = %s, want %s", order.Status, tt.wantStat)
			}
		})
	}
}

func TestVoidDiscardsLines(t *testing.T) {
	order := NewOrder(1, 1)
	order.AddLine(MenuItem{ID: 1, Name: "Cocacola"}, 2.5)
	order.Void()

	if len(order.Lines) != 0 {
		t.Errorf("expected no lines after void, got %d", len(order.Lines))
	}
	if order.Status != StatusVoided {
		t.Errorf("expected voided status, got %s", order.Status)
	}
	if !order.Status.Terminal() {
		t.Error("voided must be terminal")
	}
	if order.Status.Active() {
		t.Error("voided must not be active")
	}
}

func TestStatusActive(t *testing.T) {
	active := map[Status]bool{
		StatusOpen:   true,
		StatusSent:   true,
		StatusClosed: false,
		StatusVoided: false,
	}
	for status, want := range active {
		if got := status.Active(); got != want {
			t.Errorf("%s.Active() = %v, want %v", status, got, want)
		}
	}
}

func TestTotalAmount(t *testing.T) {
	order := NewOrder(1, 1)
	cola := MenuItem{ID: 1, Name: "Cocacola"}
	order.AddLine(cola, 2.5)
	order.AddLine(cola, 2.5)
	order.AddLine(MenuItem{ID: 6, Name: "Beer"}, 2.0)

	if got := order.TotalAmount(); got != 7.0 {
		t.Errorf("TotalAmount() = %v, want 7.0", got)
	}
}

func TestSortLines(t *testing.T) {
	order := NewOrder(1, 1)
	order.AddLine(MenuItem{ID: 2, Name: "Nestea"}, 2.5)
	order.AddLine(MenuItem{ID: 6, Name: "Beer"}, 2.0)
	order.AddLine(MenuItem{ID: 1, Name: "Cocacola"}, 2.5)
	order.SortLines()

	want := []string{"Beer", "Cocacola", "Nestea"}
	for i, name := range want {
		if order.Lines[i].MenuItemName != name {
			t.Fatalf("line %d = %s, want %s", i, order.Lines[i].MenuItemName, name)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"drink", "food", "alcohol", "misc"} {
		if _, err := ParseCategory(valid); err != nil {
			t.Errorf("ParseCategory(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseCategory("dessert"); err == nil {
		t.Error("expected error for unknown category")
	}
}
