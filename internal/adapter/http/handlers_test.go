package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type ledgerStub struct {
	activeOrder func(ctx context.Context, tableNumber int) (*domain.Order, error)
	addItem     func(ctx context.Context, cmd interfaces.AddItemCommand) (int, error)
	send        func(ctx context.Context, orderID int) error
	closeFn     func(ctx context.Context, orderID, tableNumber int) error
	voidFn      func(ctx context.Context, orderID, tableNumber int) error
}

func (s *ledgerStub) ActiveOrder(ctx context.Context, tableNumber int) (*domain.Order, error) {
	return s.activeOrder(ctx, tableNumber)
}

func (s *ledgerStub) AddItem(ctx context.Context, cmd interfaces.AddItemCommand) (int, error) {
	return s.addItem(ctx, cmd)
}

func (s *ledgerStub) Send(ctx context.Context, orderID int) error {
	return s.send(ctx, orderID)
}

func (s *ledgerStub) Close(ctx context.Context, orderID, tableNumber int) error {
	return s.closeFn(ctx, orderID, tableNumber)
}

func (s *ledgerStub) Void(ctx context.Context, orderID, tableNumber int) error {
	return s.voidFn(ctx, orderID, tableNumber)
}

type catalogStub struct {
	login     func(ctx context.Context, code string) (*domain.Employee, error)
	menuItems func(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error)
}

func (s *catalogStub) Login(ctx context.Context, code string) (*domain.Employee, error) {
	return s.login(ctx, code)
}

func (s *catalogStub) MenuItems(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error) {
	return s.menuItems(ctx, category)
}

type floorStub struct {
	tables func(ctx context.Context) ([]*domain.Table, error)
}

func (s *floorStub) Tables(ctx context.Context) ([]*domain.Table, error) {
	return s.tables(ctx)
}

// newTestMux wires the handlers onto the same route patterns the server
// uses, so PathValue works in tests.
func newTestMux(ledger interfaces.LedgerService, catalog interfaces.CatalogService, floor interfaces.FloorService) *http.ServeMux {
	lgr := logger.New("test")
	catalogHandler := NewCatalogHandler(catalog, floor, lgr)
	orderHandler := NewOrderHandler(ledger, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", catalogHandler.Login)
	mux.HandleFunc("GET /tables", catalogHandler.Tables)
	mux.HandleFunc("GET /menu/{category}", catalogHandler.MenuItems)
	mux.HandleFunc("GET /order/{tableNumber}", orderHandler.GetOrder)
	mux.HandleFunc("POST /order/items", orderHandler.AddItem)
	mux.HandleFunc("POST /order/send", orderHandler.Send)
	mux.HandleFunc("POST /order/close", orderHandler.CloseOrder)
	mux.HandleFunc("POST /order/void", orderHandler.VoidOrder)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestLogin(t *testing.T) {
	catalog := &catalogStub{
		login: func(ctx context.Context, code string) (*domain.Employee, error) {
			if code == "1234" {
				return &domain.Employee{ID: 1, Name: "Admin", Code: "1234"}, nil
			}
			return nil, domain.ErrInvalidCredential
		},
	}
	mux := newTestMux(nil, catalog, nil)

	rec := doRequest(t, mux, http.MethodPost, "/login", `{"code":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["ok"] != true || body["employeeId"] != float64(1) || body["name"] != "Admin" {
		t.Errorf("unexpected login response: %v", body)
	}

	rec = doRequest(t, mux, http.MethodPost, "/login", `{"code":"0000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("a bad code is a normal result, expected 200, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["ok"] != false {
		t.Errorf("expected ok:false, got %v", body)
	}
	if _, present := body["error"]; present {
		t.Errorf("a bad code must not carry an error field: %v", body)
	}
}

func TestTablesOrdered(t *testing.T) {
	floor := &floorStub{
		tables: func(ctx context.Context) ([]*domain.Table, error) {
			return []*domain.Table{
				{ID: 1, Number: 1, State: domain.TableOccupied},
				{ID: 2, Number: 2, State: domain.TableFree},
			}, nil
		},
	}
	mux := newTestMux(nil, nil, floor)

	rec := doRequest(t, mux, http.MethodGet, "/tables", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tablesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(resp.Tables) != 2 || resp.Tables[0].Number != 1 || resp.Tables[0].State != "occupied" {
		t.Errorf("unexpected tables response: %+v", resp)
	}
}

func TestMenuItemsBadCategory(t *testing.T) {
	catalog := &catalogStub{
		menuItems: func(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error) {
			t.Fatal("service must not be called for an invalid category")
			return nil, nil
		},
	}
	mux := newTestMux(nil, catalog, nil)

	rec := doRequest(t, mux, http.MethodGet, "/menu/dessert", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOrderNoActive(t *testing.T) {
	ledger := &ledgerStub{
		activeOrder: func(ctx context.Context, tableNumber int) (*domain.Order, error) {
			return nil, domain.ErrNoActiveOrder
		},
	}
	mux := newTestMux(ledger, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/order/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["orderId"] != float64(-1) {
		t.Errorf("expected orderId -1, got %v", body["orderId"])
	}
	lines, ok := body["lines"].([]any)
	if !ok || len(lines) != 0 {
		t.Errorf("expected an empty lines array, got %v", body["lines"])
	}
}

func TestGetOrderWithLines(t *testing.T) {
	ledger := &ledgerStub{
		activeOrder: func(ctx context.Context, tableNumber int) (*domain.Order, error) {
			return &domain.Order{
				ID:     7,
				Status: domain.StatusOpen,
				Lines: []domain.OrderLine{
					{MenuItemName: "Cocacola", Quantity: 2, UnitPrice: 2.5},
				},
			}, nil
		},
	}
	mux := newTestMux(ledger, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/order/3", "")
	var resp orderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.OrderID != 7 || len(resp.Lines) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Lines[0] != (lineView{Name: "Cocacola", Quantity: 2, UnitPrice: 2.5}) {
		t.Errorf("unexpected line: %+v", resp.Lines[0])
	}
}

func TestAddItem(t *testing.T) {
	ledger := &ledgerStub{
		addItem: func(ctx context.Context, cmd interfaces.AddItemCommand) (int, error) {
			if cmd.TableNumber == 99 {
				return 0, domain.ErrTableNotFound
			}
			return 5, nil
		},
	}
	mux := newTestMux(ledger, nil, nil)

	rec := doRequest(t, mux, http.MethodPost, "/order/items",
		`{"tableNumber":3,"employeeId":1,"menuItemId":1,"unitPrice":2.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["ok"] != true || body["orderId"] != float64(5) {
		t.Errorf("unexpected response: %v", body)
	}

	rec = doRequest(t, mux, http.MethodPost, "/order/items",
		`{"tableNumber":99,"employeeId":1,"menuItemId":1,"unitPrice":2.5}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["ok"] != false || body["error"] != "table not found" {
		t.Errorf("unexpected error response: %v", body)
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	var sentID, closedID, voidedID int
	ledger := &ledgerStub{
		send: func(ctx context.Context, orderID int) error {
			sentID = orderID
			return nil
		},
		closeFn: func(ctx context.Context, orderID, tableNumber int) error {
			closedID = orderID
			return nil
		},
		voidFn: func(ctx context.Context, orderID, tableNumber int) error {
			voidedID = orderID
			return nil
		},
	}
	mux := newTestMux(ledger, nil, nil)

	tests := []struct {
		path string
		body string
	}{
		{"/order/send", `{"orderId":5}`},
		{"/order/close", `{"orderId":5,"tableNumber":3}`},
		{"/order/void", `{"orderId":5,"tableNumber":3}`},
	}
	for _, tt := range tests {
		rec := doRequest(t, mux, http.MethodPost, tt.path, tt.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.path, rec.Code)
		}
		if body := decodeBody(t, rec); body["ok"] != true {
			t.Errorf("%s: expected ok:true, got %v", tt.path, body)
		}
	}
	if sentID != 5 || closedID != 5 || voidedID != 5 {
		t.Errorf("handlers did not forward order ids: %d %d %d", sentID, closedID, voidedID)
	}
}

func TestGetOrderBadTableNumber(t *testing.T) {
	mux := newTestMux(&ledgerStub{}, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/order/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
