// Package admin implements the back-office stock edits: set a line's
// amount, add a line, delete a line. Edits apply an optimistic delta to the
// local projection, push the write to the retail service, and either reload
// the authoritative state or reverse the delta exactly.
package admin

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/fault"
	"github.com/luniksss/lunikiss-storefront/internal/oplock"
)

// Writer is the slice of the retail service the stock manager consumes.
type Writer interface {
	AddStockLine(ctx context.Context, outletID, productID string, size, amount int) error
	UpdateStockAmount(ctx context.Context, outletID, productID string, size, amount int) error
	DeleteStockLine(ctx context.Context, outletID, productID string, size int) error
}

// Registry is the slice of the stock projection the manager mutates.
type Registry interface {
	Quantity(outletID, productID string, size int) (int, bool)
	ApplyOptimisticDelta(outletID, productID string, size, delta int) (uint64, error)
	RevertOptimisticDelta(outletID, productID string, size, delta int, ticket uint64) bool
	LoadForOutlet(ctx context.Context, outletID string) error
}

type StockManager struct {
	registry Registry
	writer   Writer
	locks    *oplock.Table
	log      zerolog.Logger
}

func NewStockManager(registry Registry, writer Writer, locks *oplock.Table, log zerolog.Logger) *StockManager {
	return &StockManager{registry: registry, writer: writer, locks: locks, log: log}
}

// SetAmount sets the absolute quantity of one stock line. The local
// projection is adjusted before the remote call; if the remote rejects the
// write the delta is reversed exactly.
func (m *StockManager) SetAmount(ctx context.Context, outletID, productID string, size, amount int) error {
	if amount < 0 {
		return fault.Newf(fault.KindValidation, fault.CodeInvalidAmount, "amount %d must not be negative", amount)
	}

	key := oplock.StockKey(outletID, productID, size)
	if !m.locks.TryAcquire(key) {
		return fault.Newf(fault.KindConflict, fault.CodeOperationInProgress,
			"an edit of product %s size %d at outlet %s is already in flight", productID, size, outletID)
	}
	defer m.locks.Release(key)

	current, ok := m.registry.Quantity(outletID, productID, size)
	if !ok {
		return fault.Newf(fault.KindValidation, fault.CodeNotFound,
			"no stock line for product %s size %d at outlet %s", productID, size, outletID)
	}

	delta := amount - current
	var ticket uint64
	if delta != 0 {
		var err error
		if ticket, err = m.registry.ApplyOptimisticDelta(outletID, productID, size, delta); err != nil {
			return err
		}
	}

	if err := m.writer.UpdateStockAmount(ctx, outletID, productID, size, amount); err != nil {
		// An authoritative load that applied in the meantime already
		// replaced the projection; only revert if ours is still current.
		if delta != 0 && !m.registry.RevertOptimisticDelta(outletID, productID, size, delta, ticket) {
			m.log.Debug().
				Str("outlet_id", outletID).
				Str("product_id", productID).
				Int("size", size).
				Msg("rollback skipped, projection superseded by a newer load")
		}
		return err
	}

	m.reload(ctx, outletID)
	return nil
}

// AddLine creates a new stock line remotely, then reloads the projection.
// No line is created client-side ahead of the remote write.
func (m *StockManager) AddLine(ctx context.Context, outletID, productID string, size, amount int) error {
	if amount < 0 {
		return fault.Newf(fault.KindValidation, fault.CodeInvalidAmount, "amount %d must not be negative", amount)
	}

	key := oplock.StockKey(outletID, productID, size)
	if !m.locks.TryAcquire(key) {
		return fault.Newf(fault.KindConflict, fault.CodeOperationInProgress,
			"an edit of product %s size %d at outlet %s is already in flight", productID, size, outletID)
	}
	defer m.locks.Release(key)

	if err := m.writer.AddStockLine(ctx, outletID, productID, size, amount); err != nil {
		return err
	}

	m.reload(ctx, outletID)
	return nil
}

// DeleteLine removes a stock line remotely, then reloads the projection.
func (m *StockManager) DeleteLine(ctx context.Context, outletID, productID string, size int) error {
	key := oplock.StockKey(outletID, productID, size)
	if !m.locks.TryAcquire(key) {
		return fault.Newf(fault.KindConflict, fault.CodeOperationInProgress,
			"an edit of product %s size %d at outlet %s is already in flight", productID, size, outletID)
	}
	defer m.locks.Release(key)

	if err := m.writer.DeleteStockLine(ctx, outletID, productID, size); err != nil {
		return err
	}

	m.reload(ctx, outletID)
	return nil
}

func (m *StockManager) reload(ctx context.Context, outletID string) {
	if err := m.registry.LoadForOutlet(ctx, outletID); err != nil {
		m.log.Warn().
			Err(err).
			Str("outlet_id", outletID).
			Msg("post-edit stock reload failed, projection may be stale")
	}
}
