// Package orders manages the client-side view of orders and their items,
// including the cascading rule that an order emptied of all items is itself
// deleted.
package orders

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/events"
	"github.com/luniksss/lunikiss-storefront/internal/fault"
	"github.com/luniksss/lunikiss-storefront/internal/oplock"
)

// Remote is the slice of the retail service the manager consumes.
type Remote interface {
	GetOrderItems(ctx context.Context, orderID string) ([]Item, error)
	DeleteOrderItem(ctx context.Context, itemID string) error
	DeleteOrder(ctx context.Context, orderID string) error
	UpdateOrderStatus(ctx context.Context, orderID string, status Status) error
}

type Manager struct {
	remote Remote
	locks  *oplock.Table
	bus    *events.Bus
	log    zerolog.Logger

	mu       sync.Mutex
	items    map[string][]Item
	statuses map[string]Status
	owners   map[string]string
	deleted  map[string]struct{}
}

func NewManager(remote Remote, locks *oplock.Table, bus *events.Bus, log zerolog.Logger) *Manager {
	return &Manager{
		remote:   remote,
		locks:    locks,
		bus:      bus,
		log:      log,
		items:    make(map[string][]Item),
		statuses: make(map[string]Status),
		owners:   make(map[string]string),
		deleted:  make(map[string]struct{}),
	}
}

// Track records the status and owner of listed orders so later deletions
// and status updates can be rejected locally without a remote round trip.
func (m *Manager) Track(list []Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range list {
		if _, gone := m.deleted[o.ID]; gone {
			continue
		}
		m.statuses[o.ID] = o.Status
		if o.UserID != "" {
			m.owners[o.ID] = o.UserID
		}
	}
}

// Owner returns the user an order belongs to, if a listing has reported it.
func (m *Manager) Owner(orderID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.owners[orderID]
	return owner, ok
}

// Deleted reports whether orderID was destroyed by a cascade or a direct
// deletion in this process.
func (m *Manager) Deleted(orderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, gone := m.deleted[orderID]
	return gone
}

// Items returns the local item list for orderID, if one has been loaded.
func (m *Manager) Items(orderID string) ([]Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.items[orderID]
	if !ok {
		return nil, false
	}
	out := make([]Item, len(list))
	copy(out, list)
	return out, true
}

// LoadItems fetches the item list for orderID and replaces the local copy.
func (m *Manager) LoadItems(ctx context.Context, orderID string) ([]Item, error) {
	m.mu.Lock()
	if _, gone := m.deleted[orderID]; gone {
		m.mu.Unlock()
		return nil, fault.Newf(fault.KindValidation, fault.CodeOrderAlreadyDeleted, "order %s was deleted", orderID)
	}
	m.mu.Unlock()

	list, err := m.remote.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.items[orderID] = list
	m.mu.Unlock()

	out := make([]Item, len(list))
	copy(out, list)
	return out, nil
}

// DeleteItem removes one item from an order. If the removal empties the
// order's local item list, the order itself is deleted; a failure of that
// secondary deletion is reported as a cascade failure while the item removal
// stays committed.
func (m *Manager) DeleteItem(ctx context.Context, orderID, itemID string) error {
	m.mu.Lock()
	if _, gone := m.deleted[orderID]; gone {
		m.mu.Unlock()
		return fault.Newf(fault.KindValidation, fault.CodeOrderAlreadyDeleted, "order %s was deleted", orderID)
	}
	_, loaded := m.items[orderID]
	m.mu.Unlock()

	if !loaded {
		if _, err := m.LoadItems(ctx, orderID); err != nil {
			return err
		}
	}

	key := oplock.OrderItemKey(itemID)
	if !m.locks.TryAcquire(key) {
		return fault.Newf(fault.KindConflict, fault.CodeOperationInProgress, "deletion of item %s already in flight", itemID)
	}
	defer m.locks.Release(key)

	m.mu.Lock()
	idx := indexOfItem(m.items[orderID], itemID)
	m.mu.Unlock()
	if idx < 0 {
		return fault.Newf(fault.KindValidation, fault.CodeItemAlreadyRemoved, "item %s is not in order %s", itemID, orderID)
	}

	if err := m.remote.DeleteOrderItem(ctx, itemID); err != nil {
		return err
	}

	m.mu.Lock()
	list := m.items[orderID]
	if idx = indexOfItem(list, itemID); idx >= 0 {
		m.items[orderID] = append(list[:idx], list[idx+1:]...)
	}
	remaining := len(m.items[orderID])
	m.mu.Unlock()

	if remaining > 0 {
		return nil
	}

	// Cascade: the order lost its last item. Two sequential remote calls are
	// not atomic, so a failure here leaves "items empty, order still
	// present" until a retry or the next full refresh reconciles it.
	if err := m.remote.DeleteOrder(ctx, orderID); err != nil {
		m.log.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("order emptied but deletion failed")
		return fault.Wrap(fault.KindInconsistency, fault.CodeCascadeDeleteFailed,
			"order "+orderID+" emptied but could not be deleted", err)
	}

	m.markDeleted(orderID)
	m.bus.Publish(events.OrderEmptied{OrderID: orderID, OccurredAt: time.Now().UTC()})
	return nil
}

// DeleteOrder destroys an order directly. Only orders still in the ordered
// state may be deleted; the check is local when the status is known, and the
// retail service stays authoritative otherwise.
func (m *Manager) DeleteOrder(ctx context.Context, orderID string) error {
	m.mu.Lock()
	if _, gone := m.deleted[orderID]; gone {
		m.mu.Unlock()
		return fault.Newf(fault.KindValidation, fault.CodeOrderAlreadyDeleted, "order %s was deleted", orderID)
	}
	status, known := m.statuses[orderID]
	m.mu.Unlock()

	if known && status != StatusOrdered {
		return fault.Newf(fault.KindValidation, fault.CodeInvalidOrderState,
			"order %s is %s and cannot be deleted", orderID, status)
	}

	key := oplock.OrderKey(orderID)
	if !m.locks.TryAcquire(key) {
		return fault.Newf(fault.KindConflict, fault.CodeOperationInProgress, "deletion of order %s already in flight", orderID)
	}
	defer m.locks.Release(key)

	if err := m.remote.DeleteOrder(ctx, orderID); err != nil {
		return err
	}

	m.markDeleted(orderID)
	return nil
}

// UpdateStatus moves an order to a new status. Only ordered -> delivered and
// ordered -> cancelled are defined.
func (m *Manager) UpdateStatus(ctx context.Context, orderID string, to Status) error {
	m.mu.Lock()
	if _, gone := m.deleted[orderID]; gone {
		m.mu.Unlock()
		return fault.Newf(fault.KindValidation, fault.CodeOrderAlreadyDeleted, "order %s was deleted", orderID)
	}
	current, known := m.statuses[orderID]
	m.mu.Unlock()

	if known {
		if !CanTransition(current, to) {
			return fault.Newf(fault.KindValidation, fault.CodeInvalidOrderState,
				"order %s cannot move from %s to %s", orderID, current, to)
		}
	} else if !CanTransition(StatusOrdered, to) {
		return fault.Newf(fault.KindValidation, fault.CodeInvalidOrderState,
			"no transition leads to %s", to)
	}

	key := oplock.OrderKey(orderID)
	if !m.locks.TryAcquire(key) {
		return fault.Newf(fault.KindConflict, fault.CodeOperationInProgress, "update of order %s already in flight", orderID)
	}
	defer m.locks.Release(key)

	if err := m.remote.UpdateOrderStatus(ctx, orderID, to); err != nil {
		return err
	}

	m.mu.Lock()
	m.statuses[orderID] = to
	m.mu.Unlock()
	return nil
}

func (m *Manager) markDeleted(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted[orderID] = struct{}{}
	delete(m.items, orderID)
	delete(m.statuses, orderID)
	delete(m.owners, orderID)
}

func indexOfItem(list []Item, itemID string) int {
	for i, it := range list {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
