// Package oplock tracks in-flight mutating operations by key. A second
// attempt on a held key is rejected, never queued, so conflicting edits to
// the same entity are serialized at the point of entry.
package oplock

import (
	"fmt"
	"sort"
	"sync"
)

type Table struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func New() *Table {
	return &Table{held: make(map[string]struct{})}
}

// TryAcquire marks key as in flight. It returns false if an operation on the
// same key is already outstanding.
func (t *Table) TryAcquire(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.held[key]; busy {
		return false
	}
	t.held[key] = struct{}{}
	return true
}

// Release clears key. Releasing a key that is not held is a no-op.
func (t *Table) Release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, key)
}

func (t *Table) Held(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, busy := t.held[key]
	return busy
}

// Snapshot lists the currently held keys, sorted.
func (t *Table) Snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.held))
	for k := range t.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Keys are scoped per entity type so features touching the same entity ids
// do not collide. Bookings contend on the stock line they reserve from,
// administrative stock edits on the full outlet-scoped line.

func StockKey(outletID, productID string, size int) string {
	return fmt.Sprintf("stock:%s:%s:%d", outletID, productID, size)
}

func BookingKey(productID string, size int) string {
	return fmt.Sprintf("booking:%s:%d", productID, size)
}

func OrderKey(orderID string) string {
	return "order:" + orderID
}

func OrderItemKey(itemID string) string {
	return "orderitem:" + itemID
}
