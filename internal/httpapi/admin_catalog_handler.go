package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luniksss/lunikiss-storefront/internal/catalog"
	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

// adminCatalogHandler proxies product and outlet management to the retail
// service. These are thin passthroughs: catalog changes reach the stock
// projection through the next authoritative load, not through local state.
type adminCatalogHandler struct {
	catalog *remote.CatalogClient
}

func (h *adminCatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *adminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.catalog.CreateProduct(r.Context(), p); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (h *adminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.catalog.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), p); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *adminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type outletRequest struct {
	Address string `json:"address"`
}

func (h *adminCatalogHandler) CreateOutlet(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	var req outletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "address is required"})
		return
	}

	if err := h.catalog.CreateOutlet(r.Context(), req.Address); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (h *adminCatalogHandler) UpdateOutlet(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	var req outletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "address is required"})
		return
	}

	if err := h.catalog.UpdateOutlet(r.Context(), chi.URLParam(r, "outletID"), req.Address); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *adminCatalogHandler) DeleteOutlet(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	if err := h.catalog.DeleteOutlet(r.Context(), chi.URLParam(r, "outletID")); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
