package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

// OrderHandler serves the order ledger endpoints.
type OrderHandler struct {
	ledger interfaces.LedgerService
	logger logger.Logger
}

func NewOrderHandler(ledger interfaces.LedgerService, lgr logger.Logger) *OrderHandler {
	return &OrderHandler{
		ledger: ledger,
		logger: lgr,
	}
}

type lineView struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type orderResponse struct {
	OrderID int        `json:"orderId"`
	Lines   []lineView `json:"lines"`
}

type addItemRequest struct {
	TableNumber int     `json:"tableNumber"`
	EmployeeID  int     `json:"employeeId"`
	MenuItemID  int     `json:"menuItemId"`
	UnitPrice   float64 `json:"unitPrice"`
}

type addItemResponse struct {
	OK      bool `json:"ok"`
	OrderID int  `json:"orderId"`
}

type sendRequest struct {
	OrderID int `json:"orderId"`
}

type closeRequest struct {
	OrderID     int `json:"orderId"`
	TableNumber int `json:"tableNumber"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// GetOrder handles GET /order/{tableNumber}. A table without an active
// order answers {orderId:-1, lines:[]}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	tableNumber, err := strconv.Atoi(r.PathValue("tableNumber"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid table number"})
		return
	}

	order, err := h.ledger.ActiveOrder(r.Context(), tableNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveOrder) {
			writeJSON(w, http.StatusOK, orderResponse{OrderID: -1, Lines: []lineView{}})
			return
		}
		h.logger.Error("order_query_failed", "Failed to load active order", "", map[string]any{
			"table_number": tableNumber,
		}, err)
		writeError(w, err)
		return
	}

	resp := orderResponse{OrderID: order.ID, Lines: make([]lineView, 0, len(order.Lines))}
	for _, l := range order.Lines {
		resp.Lines = append(resp.Lines, lineView{Name: l.MenuItemName, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddItem handles POST /order/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	orderID, err := h.ledger.AddItem(r.Context(), interfaces.AddItemCommand{
		TableNumber: req.TableNumber,
		EmployeeID:  req.EmployeeID,
		MenuItemID:  req.MenuItemID,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.logger.Error("add_item_failed", "Failed to add item", "", map[string]any{
			"table_number": req.TableNumber,
			"menu_item_id": req.MenuItemID,
		}, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, addItemResponse{OK: true, OrderID: orderID})
}

// Send handles POST /order/send. The table stays occupied.
func (h *OrderHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.ledger.Send(r.Context(), req.OrderID); err != nil {
		h.logger.Error("send_failed", "Failed to send order", "", map[string]any{
			"order_id": req.OrderID,
		}, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// CloseOrder handles POST /order/close, the payment path.
func (h *OrderHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.ledger.Close(r.Context(), req.OrderID, req.TableNumber); err != nil {
		h.logger.Error("close_failed", "Failed to close order", "", map[string]any{
			"order_id": req.OrderID,
		}, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// VoidOrder handles POST /order/void: lines are discarded, the order keeps
// a voided marker and the table is freed.
func (h *OrderHandler) VoidOrder(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.ledger.Void(r.Context(), req.OrderID, req.TableNumber); err != nil {
		h.logger.Error("void_failed", "Failed to void order", "", map[string]any{
			"order_id": req.OrderID,
		}, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
