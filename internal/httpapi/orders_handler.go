package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luniksss/lunikiss-storefront/internal/middleware"
	"github.com/luniksss/lunikiss-storefront/internal/orders"
	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

type ordersHandler struct {
	orders    *remote.OrderClient
	lifecycle *orders.Manager
}

func (h *ordersHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleUser) {
		return
	}
	userID := chi.URLParam(r, "userID")

	// A user sees only their own orders; staff can inspect anyone's.
	sess := middleware.GetSession(r.Context())
	if userID != sess.UserID && !sess.Role.HasPermission(session.RoleSeller) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return
	}

	list, err := h.orders.ListUserOrders(r.Context(), userID)
	if err != nil {
		writeFault(w, r, err)
		return
	}
	h.lifecycle.Track(list)
	writeJSON(w, http.StatusOK, list)
}

func (h *ordersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleSeller) {
		return
	}

	list, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeFault(w, r, err)
		return
	}
	h.lifecycle.Track(list)
	writeJSON(w, http.StatusOK, list)
}

// requireOrderAccess rejects a user touching someone else's order when the
// owner is known locally. With no owner on record the retail service stays
// authoritative: it re-checks against the forwarded bearer token.
func (h *ordersHandler) requireOrderAccess(w http.ResponseWriter, r *http.Request, orderID string) bool {
	sess := middleware.GetSession(r.Context())
	if sess.Role.HasPermission(session.RoleSeller) {
		return true
	}
	if owner, known := h.lifecycle.Owner(orderID); known && owner != sess.UserID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return false
	}
	return true
}

func (h *ordersHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleUser) {
		return
	}
	orderID := chi.URLParam(r, "orderID")
	if !h.requireOrderAccess(w, r, orderID) {
		return
	}

	items, err := h.lifecycle.LoadItems(r.Context(), orderID)
	if err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ordersHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleUser) {
		return
	}

	orderID := chi.URLParam(r, "orderID")
	itemID := chi.URLParam(r, "itemID")
	if !h.requireOrderAccess(w, r, orderID) {
		return
	}

	if err := h.lifecycle.DeleteItem(r.Context(), orderID, itemID); err != nil {
		writeFault(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":       itemID,
		"order_deleted": h.lifecycle.Deleted(orderID),
	})
}

func (h *ordersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleUser) {
		return
	}

	orderID := chi.URLParam(r, "orderID")
	if !h.requireOrderAccess(w, r, orderID) {
		return
	}
	if err := h.lifecycle.DeleteOrder(r.Context(), orderID); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": orderID})
}

func (h *ordersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleSeller) {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	status, ok := orders.ParseStatus(req.Status)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown status " + req.Status})
		return
	}

	orderID := chi.URLParam(r, "orderID")
	if err := h.lifecycle.UpdateStatus(r.Context(), orderID, status); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": orderID, "status": string(status)})
}
