// Package booking turns a "reserve this product in this size" action into an
// order-creation request against the retail service, enforcing all local
// preconditions first and reconciling the stock projection afterwards.
package booking

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/catalog"
	"github.com/luniksss/lunikiss-storefront/internal/fault"
	"github.com/luniksss/lunikiss-storefront/internal/oplock"
	"github.com/luniksss/lunikiss-storefront/internal/orders"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

// State tracks a single booking attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Registry is the slice of the stock projection the coordinator reads and
// reconciles.
type Registry interface {
	Product(outletID, productID string) (catalog.Product, bool)
	Sizes(outletID, productID string) []catalog.SizeAvailability
	Quantity(outletID, productID string, size int) (int, bool)
	LoadForOutlet(ctx context.Context, outletID string) error
}

// Placer issues the order creation for a validated booking.
type Placer interface {
	CreateOrder(ctx context.Context, draft orders.Draft) (string, error)
}

type Request struct {
	OutletID  string
	ProductID string
	// Size is the selected size; 0 means none selected yet.
	Size int
}

type Result struct {
	State   State  `json:"state"`
	OrderID string `json:"order_id,omitempty"`
}

type Coordinator struct {
	registry Registry
	placer   Placer
	locks    *oplock.Table
	log      zerolog.Logger
}

func NewCoordinator(registry Registry, placer Placer, locks *oplock.Table, log zerolog.Logger) *Coordinator {
	return &Coordinator{registry: registry, placer: placer, locks: locks, log: log}
}

// Book reserves one unit of a product at an outlet for the given session.
// Preconditions are checked in a fixed order and the first unmet one aborts
// without any remote call. A second booking on the same (product, size)
// while one is outstanding is rejected, not queued: the unit of contention
// is the stock line, not the user.
func (c *Coordinator) Book(ctx context.Context, sess session.Session, req Request) (Result, error) {
	failed := Result{State: StateFailed}

	if !sess.Authenticated() {
		return failed, fault.New(fault.KindValidation, fault.CodeUnauthenticated, "booking requires a signed-in user")
	}
	if req.OutletID == "" {
		return failed, fault.New(fault.KindValidation, fault.CodeNoOutletSelected, "no sales outlet selected")
	}

	product, ok := c.registry.Product(req.OutletID, req.ProductID)
	if !ok {
		return failed, fault.Newf(fault.KindValidation, fault.CodeNotFound,
			"product %s is not available at outlet %s", req.ProductID, req.OutletID)
	}
	if len(c.registry.Sizes(req.OutletID, req.ProductID)) > 0 && req.Size == 0 {
		return failed, fault.New(fault.KindValidation, fault.CodeSizeRequired, "a size must be selected")
	}
	qty, ok := c.registry.Quantity(req.OutletID, req.ProductID, req.Size)
	if !ok || qty == 0 {
		return failed, fault.Newf(fault.KindValidation, fault.CodeSizeUnavailable,
			"size %d of product %s is not available", req.Size, req.ProductID)
	}

	key := oplock.BookingKey(req.ProductID, req.Size)
	if !c.locks.TryAcquire(key) {
		return failed, fault.Newf(fault.KindConflict, fault.CodeOperationInProgress,
			"a booking for product %s size %d is already in flight", req.ProductID, req.Size)
	}
	defer c.locks.Release(key)

	draft := orders.Draft{
		UserID:   sess.UserID,
		OutletID: req.OutletID,
		Items: []orders.DraftItem{{
			ProductID: req.ProductID,
			Amount:    1,
			Price:     product.Price,
			Size:      req.Size,
		}},
	}

	orderID, err := c.placer.CreateOrder(ctx, draft)
	if err != nil {
		// No optimistic delta was applied at this layer, so the projection
		// is left untouched; the next authoritative load reconciles it.
		return failed, err
	}

	if err := c.registry.LoadForOutlet(ctx, req.OutletID); err != nil {
		c.log.Warn().
			Err(err).
			Str("outlet_id", req.OutletID).
			Msg("post-booking stock reload failed, projection is stale")
	}

	return Result{State: StateSucceeded, OrderID: orderID}, nil
}
