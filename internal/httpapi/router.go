// Package httpapi exposes the storefront core to the browser UI.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/admin"
	"github.com/luniksss/lunikiss-storefront/internal/booking"
	"github.com/luniksss/lunikiss-storefront/internal/config"
	"github.com/luniksss/lunikiss-storefront/internal/middleware"
	"github.com/luniksss/lunikiss-storefront/internal/oplock"
	"github.com/luniksss/lunikiss-storefront/internal/orders"
	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/session"
	"github.com/luniksss/lunikiss-storefront/internal/stock"
)

type Deps struct {
	Log zerolog.Logger
	Cfg config.Config

	Sessions session.Store
	Auth     *remote.AuthClient
	Catalog  *remote.CatalogClient
	Orders   *remote.OrderClient
	Users    *remote.UserClient

	Registry  *stock.Registry
	Booking   *booking.Coordinator
	Lifecycle *orders.Manager
	Stock     *admin.StockManager
	Locks     *oplock.Table
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(d.Log))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(d.Log))
	r.Use(middleware.ResolveSession(d.Sessions, d.Log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": d.Cfg.ServiceName})
	})

	auth := &authHandler{sessions: d.Sessions, auth: d.Auth, ttl: d.Cfg.SessionTTL}
	r.Post("/api/v1/auth/login", auth.Login)
	r.Post("/api/v1/auth/register", auth.Register)
	r.Post("/api/v1/auth/logout", auth.Logout)

	cat := &catalogHandler{catalog: d.Catalog, registry: d.Registry}
	r.Get("/api/v1/outlets", cat.ListOutlets)
	r.Get("/api/v1/outlets/{outletID}/stock", cat.Availability)

	book := &bookingHandler{booking: d.Booking}
	r.Post("/api/v1/outlets/{outletID}/bookings", book.Book)

	ord := &ordersHandler{orders: d.Orders, lifecycle: d.Lifecycle}
	r.Get("/api/v1/users/{userID}/orders", ord.ListUserOrders)
	r.Get("/api/v1/orders", ord.ListOrders)
	r.Get("/api/v1/orders/{orderID}/items", ord.GetItems)
	r.Delete("/api/v1/orders/{orderID}/items/{itemID}", ord.DeleteItem)
	r.Delete("/api/v1/orders/{orderID}", ord.DeleteOrder)
	r.Patch("/api/v1/orders/{orderID}/status", ord.UpdateStatus)

	st := &stockHandler{stock: d.Stock}
	r.Post("/api/v1/admin/stock", st.AddLine)
	r.Put("/api/v1/admin/stock", st.SetAmount)
	r.Delete("/api/v1/admin/stock/{outletID}/{productID}/{size}", st.DeleteLine)

	adm := &adminCatalogHandler{catalog: d.Catalog}
	r.Get("/api/v1/products", adm.ListProducts)
	r.Post("/api/v1/admin/products", adm.CreateProduct)
	r.Put("/api/v1/admin/products/{productID}", adm.UpdateProduct)
	r.Delete("/api/v1/admin/products/{productID}", adm.DeleteProduct)
	r.Post("/api/v1/admin/outlets", adm.CreateOutlet)
	r.Put("/api/v1/admin/outlets/{outletID}", adm.UpdateOutlet)
	r.Delete("/api/v1/admin/outlets/{outletID}", adm.DeleteOutlet)

	staff := &staffHandler{users: d.Users}
	r.Get("/api/v1/admin/users", staff.List)
	r.Patch("/api/v1/admin/users/{userID}/role", staff.UpdateRole)
	r.Delete("/api/v1/admin/users/{userID}", staff.Delete)
	r.Get("/api/v1/admin/locks", func(w http.ResponseWriter, r *http.Request) {
		if !requireRole(w, r, session.RoleSeller) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"held": d.Locks.Snapshot()})
	})

	return r
}
