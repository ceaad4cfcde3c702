package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/stock"
)

type catalogHandler struct {
	catalog  *remote.CatalogClient
	registry *stock.Registry
}

func (h *catalogHandler) ListOutlets(w http.ResponseWriter, r *http.Request) {
	outlets, err := h.catalog.ListOutlets(r.Context())
	if err != nil {
		writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outlets)
}

// Availability serves the per-outlet availability snapshot. The projection
// is loaded on first use; ?refresh=1 forces an authoritative reload.
func (h *catalogHandler) Availability(w http.ResponseWriter, r *http.Request) {
	outletID := chi.URLParam(r, "outletID")

	if !h.registry.Loaded(outletID) || r.URL.Query().Get("refresh") == "1" {
		if err := h.registry.LoadForOutlet(r.Context(), outletID); err != nil {
			writeFault(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, h.registry.Availability(outletID))
}
