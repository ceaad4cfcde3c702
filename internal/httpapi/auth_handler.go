package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/luniksss/lunikiss-storefront/internal/middleware"
	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

type authHandler struct {
	sessions session.Store
	auth     *remote.AuthClient
	ttl      time.Duration
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds remote.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	res, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		writeFault(w, r, err)
		return
	}

	sess := session.Session{
		Token:  res.AccessToken,
		UserID: res.User.ID,
		Role:   session.Role(res.User.Role),
	}
	ttl := h.ttl
	if !res.ExpiresAt.IsZero() {
		if until := time.Until(res.ExpiresAt); until > 0 && until < ttl {
			ttl = until
		}
	}
	if err := h.sessions.Save(r.Context(), sess, ttl); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to persist session"})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg remote.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if reg.Email == "" || reg.Password == "" || reg.Name == "" || reg.Surname == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email, password, name and surname are required"})
		return
	}

	res, err := h.auth.Register(r.Context(), reg)
	if err != nil {
		writeFault(w, r, err)
		return
	}

	// Registration signs the user in when the retail service issues a token.
	if res.AccessToken != "" {
		sess := session.Session{
			Token:  res.AccessToken,
			UserID: res.User.ID,
			Role:   session.Role(res.User.Role),
		}
		if err := h.sessions.Save(r.Context(), sess, h.ttl); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to persist session"})
			return
		}
	}

	writeJSON(w, http.StatusCreated, res)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess.Authenticated() {
		_ = h.sessions.Delete(r.Context(), sess.Token)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// requireRole enforces a minimum role for back-office endpoints.
func requireRole(w http.ResponseWriter, r *http.Request, required session.Role) bool {
	sess := middleware.GetSession(r.Context())
	if !sess.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:         "authentication required",
			CorrelationID: middleware.GetCorrelationID(r.Context()),
		})
		return false
	}
	if !sess.Role.HasPermission(required) {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:         "insufficient permissions",
			CorrelationID: middleware.GetCorrelationID(r.Context()),
		})
		return false
	}
	return true
}
