package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/luniksss/lunikiss-storefront/internal/admin"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

type stockHandler struct {
	stock *admin.StockManager
}

type stockLineRequest struct {
	OutletID  string `json:"sales_outlet_id"`
	ProductID string `json:"product_id"`
	Size      int    `json:"size"`
	Amount    int    `json:"amount"`
}

func (req stockLineRequest) valid() bool {
	return req.OutletID != "" && req.ProductID != ""
}

func (h *stockHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleSeller) {
		return
	}

	var req stockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.stock.AddLine(r.Context(), req.OutletID, req.ProductID, req.Size, req.Amount); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (h *stockHandler) SetAmount(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleSeller) {
		return
	}

	var req stockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.stock.SetAmount(r.Context(), req.OutletID, req.ProductID, req.Size, req.Amount); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *stockHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleSeller) {
		return
	}

	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid size"})
		return
	}
	outletID := chi.URLParam(r, "outletID")
	productID := chi.URLParam(r, "productID")

	if err := h.stock.DeleteLine(r.Context(), outletID, productID, size); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
