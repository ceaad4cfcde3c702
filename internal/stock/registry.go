// Package stock keeps the client-side projection of stock lines per outlet.
// The retail service is the only source of truth: the projection is replaced
// wholesale on every successful load, and optimistic deltas exist solely to
// keep the view responsive until the next load or an explicit rollback.
package stock

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/catalog"
	"github.com/luniksss/lunikiss-storefront/internal/fault"
)

// Lister is the slice of the remote service the registry consumes.
type Lister interface {
	ListStockByOutlet(ctx context.Context, outletID string) ([]catalog.StockEntry, error)
}

type lineKey struct {
	productID string
	size      int
}

type projection struct {
	products map[string]catalog.Product
	lines    map[lineKey]int
	loaded   bool

	// Monotonic load tickets. A load that resolves after a newer load was
	// issued is stale and must not clobber the fresher projection.
	issued  uint64
	applied uint64
}

type Registry struct {
	lister Lister
	log    zerolog.Logger

	mu      sync.Mutex
	outlets map[string]*projection
}

func NewRegistry(lister Lister, log zerolog.Logger) *Registry {
	return &Registry{
		lister:  lister,
		log:     log,
		outlets: make(map[string]*projection),
	}
}

func (r *Registry) projectionFor(outletID string) *projection {
	p, ok := r.outlets[outletID]
	if !ok {
		p = &projection{
			products: make(map[string]catalog.Product),
			lines:    make(map[lineKey]int),
		}
		r.outlets[outletID] = p
	}
	return p
}

// LoadForOutlet fetches all stock lines for outletID and replaces the prior
// projection wholesale. On failure the previous projection is retained.
func (r *Registry) LoadForOutlet(ctx context.Context, outletID string) error {
	r.mu.Lock()
	p := r.projectionFor(outletID)
	p.issued++
	ticket := p.issued
	r.mu.Unlock()

	entries, err := r.lister.ListStockByOutlet(ctx, outletID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		return err
	}

	if ticket <= p.applied {
		r.log.Debug().
			Str("outlet_id", outletID).
			Uint64("ticket", ticket).
			Uint64("applied", p.applied).
			Msg("discarding stale stock load")
		return nil
	}
	p.applied = ticket

	p.products = make(map[string]catalog.Product, len(entries))
	p.lines = make(map[lineKey]int, len(entries))
	for _, e := range entries {
		p.products[e.Product.ID] = e.Product
		p.lines[lineKey{productID: e.Product.ID, size: e.Size}] = e.Amount
	}
	p.loaded = true
	return nil
}

// ApplyOptimisticDelta adjusts a line's quantity before remote confirmation.
// The caller must follow up with LoadForOutlet, or hand the returned ticket
// to RevertOptimisticDelta if the remote call fails. A delta that would
// drive the quantity below zero is rejected without mutating state.
func (r *Registry) ApplyOptimisticDelta(outletID, productID string, size, delta int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.outlets[outletID]
	if !ok {
		return 0, fault.Newf(fault.KindValidation, fault.CodeNotFound, "no stock projection for outlet %s", outletID)
	}
	key := lineKey{productID: productID, size: size}
	qty, ok := p.lines[key]
	if !ok {
		return 0, fault.Newf(fault.KindValidation, fault.CodeNotFound,
			"no stock line for product %s size %d at outlet %s", productID, size, outletID)
	}
	if qty+delta < 0 {
		return 0, fault.Newf(fault.KindConflict, fault.CodeInsufficientStock,
			"stock for product %s size %d is %d, delta %d rejected", productID, size, qty, delta)
	}
	p.lines[key] = qty + delta
	return p.applied, nil
}

// RevertOptimisticDelta reverses an earlier delta applied on load ticket.
// It is a no-op when a newer load has applied since, or when the line is
// gone: the authoritative load wins over any outstanding local adjustment.
func (r *Registry) RevertOptimisticDelta(outletID, productID string, size, delta int, ticket uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.outlets[outletID]
	if !ok || p.applied != ticket {
		return false
	}
	key := lineKey{productID: productID, size: size}
	qty, ok := p.lines[key]
	if !ok || qty-delta < 0 {
		return false
	}
	p.lines[key] = qty - delta
	return true
}

// Quantity returns the projected quantity of one stock line. The second
// return is false when the line is not in the projection.
func (r *Registry) Quantity(outletID, productID string, size int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.outlets[outletID]
	if !ok {
		return 0, false
	}
	qty, ok := p.lines[lineKey{productID: productID, size: size}]
	return qty, ok
}

// Loaded reports whether at least one load for outletID has succeeded.
func (r *Registry) Loaded(outletID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.outlets[outletID]
	return ok && p.loaded
}

// Product returns the catalog info for productID as last seen at outletID.
func (r *Registry) Product(outletID, productID string) (catalog.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.outlets[outletID]
	if !ok {
		return catalog.Product{}, false
	}
	prod, ok := p.products[productID]
	return prod, ok
}

// Sizes returns the per-size availability of one product at one outlet,
// sizes ascending.
func (r *Registry) Sizes(outletID, productID string) []catalog.SizeAvailability {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.outlets[outletID]
	if !ok {
		return nil
	}

	var sizes []catalog.SizeAvailability
	for key, qty := range p.lines {
		if key.productID != productID {
			continue
		}
		sizes = append(sizes, catalog.SizeAvailability{Size: key.size, Amount: qty, Available: qty > 0})
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i].Size < sizes[j].Size })
	return sizes
}

// Availability derives the per-product availability view for an outlet,
// products sorted by name then id.
func (r *Registry) Availability(outletID string) []catalog.ProductAvailability {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.outlets[outletID]
	if !ok {
		return nil
	}

	grouped := make(map[string]*catalog.ProductAvailability, len(p.products))
	for key, qty := range p.lines {
		pa, ok := grouped[key.productID]
		if !ok {
			pa = &catalog.ProductAvailability{Product: p.products[key.productID]}
			grouped[key.productID] = pa
		}
		pa.Sizes = append(pa.Sizes, catalog.SizeAvailability{Size: key.size, Amount: qty, Available: qty > 0})
		pa.TotalStock += qty
	}

	out := make([]catalog.ProductAvailability, 0, len(grouped))
	for _, pa := range grouped {
		sort.Slice(pa.Sizes, func(i, j int) bool { return pa.Sizes[i].Size < pa.Sizes[j].Size })
		out = append(out, *pa)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Product.Name != out[j].Product.Name {
			return out[i].Product.Name < out[j].Product.Name
		}
		return out[i].Product.ID < out[j].Product.ID
	})
	return out
}
