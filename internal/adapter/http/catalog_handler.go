package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

// CatalogHandler serves login, table listing and menu browsing.
type CatalogHandler struct {
	catalog interfaces.CatalogService
	floor   interfaces.FloorService
	logger  logger.Logger
}

func NewCatalogHandler(catalog interfaces.CatalogService, floor interfaces.FloorService, lgr logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		floor:   floor,
		logger:  lgr,
	}
}

type loginRequest struct {
	Code string `json:"code"`
}

type loginResponse struct {
	OK         bool   `json:"ok"`
	EmployeeID int    `json:"employeeId,omitempty"`
	Name       string `json:"name,omitempty"`
}

type tableView struct {
	Number int    `json:"number"`
	State  string `json:"state"`
}

type tablesResponse struct {
	Tables []tableView `json:"tables"`
}

type menuItemView struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type menuResponse struct {
	Items []menuItemView `json:"items"`
}

// Login handles POST /login. A bad code is a normal {ok:false}, not an
// error response.
func (h *CatalogHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	emp, err := h.catalog.Login(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			writeJSON(w, http.StatusOK, loginResponse{OK: false})
			return
		}
		h.logger.Error("login_failed", "Login lookup failed", "", nil, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{OK: true, EmployeeID: emp.ID, Name: emp.Name})
}

// Tables handles GET /tables, ordered by table number.
func (h *CatalogHandler) Tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.floor.Tables(r.Context())
	if err != nil {
		h.logger.Error("tables_query_failed", "Failed to list tables", "", nil, err)
		writeError(w, err)
		return
	}

	resp := tablesResponse{Tables: make([]tableView, 0, len(tables))}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, tableView{Number: t.Number, State: string(t.State)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// MenuItems handles GET /menu/{category}, ordered by item name.
func (h *CatalogHandler) MenuItems(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.catalog.MenuItems(r.Context(), category)
	if err != nil {
		h.logger.Error("menu_query_failed", "Failed to list menu items", "", map[string]any{
			"category": string(category),
		}, err)
		writeError(w, err)
		return
	}

	resp := menuResponse{Items: make([]menuItemView, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, menuItemView{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health.
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "pos-server",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
