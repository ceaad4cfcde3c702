package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luniksss/lunikiss-storefront/internal/middleware"
	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

type staffHandler struct {
	users *remote.UserClient
}

func (h *staffHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *staffHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	role, ok := session.ParseRole(req.Role)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown role " + req.Role})
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == middleware.GetSession(r.Context()).UserID {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "cannot change your own role"})
		return
	}

	if err := h.users.UpdateRole(r.Context(), userID, string(role)); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": userID, "role": string(role)})
}

func (h *staffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, session.RoleAdmin) {
		return
	}

	userID := chi.URLParam(r, "userID")
	if err := h.users.Delete(r.Context(), userID); err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": userID})
}
