package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luniksss/lunikiss-storefront/internal/booking"
	"github.com/luniksss/lunikiss-storefront/internal/middleware"
)

type bookingHandler struct {
	booking *booking.Coordinator
}

type bookRequest struct {
	ProductID string `json:"product_id"`
	Size      int    `json:"size"`
}

func (h *bookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "product_id is required"})
		return
	}

	sess := middleware.GetSession(r.Context())
	res, err := h.booking.Book(r.Context(), sess, booking.Request{
		OutletID:  chi.URLParam(r, "outletID"),
		ProductID: req.ProductID,
		Size:      req.Size,
	})
	if err != nil {
		writeFault(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}
