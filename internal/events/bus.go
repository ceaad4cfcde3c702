// Package events carries in-process notifications between the consistency
// core and presentation-facing observers.
package events

import (
	"sync"
	"time"
)

// OrderEmptied is emitted after an order's last item was removed and the
// cascading order deletion completed. Subscribers typically evict the order
// from a list view or trigger a refetch.
type OrderEmptied struct {
	OrderID    string
	OccurredAt time.Time
}

type Bus struct {
	mu   sync.Mutex
	subs []func(OrderEmptied)
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe(fn func(OrderEmptied)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers ev to all subscribers synchronously, in subscription
// order. Handlers run to completion before Publish returns.
func (b *Bus) Publish(ev OrderEmptied) {
	b.mu.Lock()
	subs := make([]func(OrderEmptied), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
