package booking

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luniksss/lunikiss-storefront/internal/catalog"
	"github.com/luniksss/lunikiss-storefront/internal/fault"
	"github.com/luniksss/lunikiss-storefront/internal/oplock"
	"github.com/luniksss/lunikiss-storefront/internal/orders"
	"github.com/luniksss/lunikiss-storefront/internal/session"
)

type fakeRegistry struct {
	products map[string]catalog.Product
	lines    map[int]int // size -> quantity, single product/outlet is enough here

	loadCalls int
	loadErr   error
	onLoad    func()
}

func (f *fakeRegistry) Product(outletID, productID string) (catalog.Product, bool) {
	p, ok := f.products[productID]
	return p, ok
}

func (f *fakeRegistry) Sizes(outletID, productID string) []catalog.SizeAvailability {
	var out []catalog.SizeAvailability
	for size, qty := range f.lines {
		out = append(out, catalog.SizeAvailability{Size: size, Amount: qty, Available: qty > 0})
	}
	return out
}

func (f *fakeRegistry) Quantity(outletID, productID string, size int) (int, bool) {
	qty, ok := f.lines[size]
	return qty, ok
}

func (f *fakeRegistry) LoadForOutlet(ctx context.Context, outletID string) error {
	f.loadCalls++
	if f.onLoad != nil {
		f.onLoad()
	}
	return f.loadErr
}

type fakePlacer struct {
	createFunc func(ctx context.Context, draft orders.Draft) (string, error)
	calls      int
	lastDraft  orders.Draft
}

func (f *fakePlacer) CreateOrder(ctx context.Context, draft orders.Draft) (string, error) {
	f.calls++
	f.lastDraft = draft
	if f.createFunc != nil {
		return f.createFunc(ctx, draft)
	}
	return "ord-1", nil
}

func newFixture() (*fakeRegistry, *fakePlacer, *oplock.Table, *Coordinator) {
	reg := &fakeRegistry{
		products: map[string]catalog.Product{
			"p1": {ID: "p1", Name: "Runner", Price: 4990},
		},
		lines: map[int]int{42: 3, 43: 0},
	}
	placer := &fakePlacer{}
	locks := oplock.New()
	c := NewCoordinator(reg, placer, locks, zerolog.Nop())
	return reg, placer, locks, c
}

func validSession() session.Session {
	return session.Session{Token: "tok-1", UserID: "u1", Role: session.RoleUser}
}

func TestBookPreconditions(t *testing.T) {
	tests := map[string]struct {
		sess     session.Session
		req      Request
		wantCode fault.Code
	}{
		"no session token": {
			sess:     session.Session{},
			req:      Request{OutletID: "o1", ProductID: "p1", Size: 42},
			wantCode: fault.CodeUnauthenticated,
		},
		"no outlet selected": {
			sess:     validSession(),
			req:      Request{ProductID: "p1", Size: 42},
			wantCode: fault.CodeNoOutletSelected,
		},
		"unknown product": {
			sess:     validSession(),
			req:      Request{OutletID: "o1", ProductID: "missing", Size: 42},
			wantCode: fault.CodeNotFound,
		},
		"sized product without a size": {
			sess:     validSession(),
			req:      Request{OutletID: "o1", ProductID: "p1"},
			wantCode: fault.CodeSizeRequired,
		},
		"size out of stock": {
			sess:     validSession(),
			req:      Request{OutletID: "o1", ProductID: "p1", Size: 43},
			wantCode: fault.CodeSizeUnavailable,
		},
		"size not stocked at all": {
			sess:     validSession(),
			req:      Request{OutletID: "o1", ProductID: "p1", Size: 44},
			wantCode: fault.CodeSizeUnavailable,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			reg, placer, _, c := newFixture()

			res, err := c.Book(context.Background(), tt.sess, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, fault.CodeOf(err))
			assert.Equal(t, StateFailed, res.State)

			assert.Zero(t, placer.calls, "no remote call on a failed precondition")
			assert.Zero(t, reg.loadCalls)
		})
	}
}

func TestBookSuccess(t *testing.T) {
	reg, placer, locks, c := newFixture()

	res, err := c.Book(context.Background(), validSession(), Request{OutletID: "o1", ProductID: "p1", Size: 42})
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, "ord-1", res.OrderID)

	require.Equal(t, 1, placer.calls)
	draft := placer.lastDraft
	assert.Equal(t, "u1", draft.UserID)
	assert.Equal(t, "o1", draft.OutletID)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, orders.DraftItem{ProductID: "p1", Amount: 1, Price: 4990, Size: 42}, draft.Items[0])

	assert.Equal(t, 1, reg.loadCalls, "success triggers an authoritative reload")
	assert.False(t, locks.Held(oplock.BookingKey("p1", 42)), "lock released after completion")
}

func TestBookRemoteFailure(t *testing.T) {
	reg, placer, locks, c := newFixture()
	placer.createFunc = func(_ context.Context, _ orders.Draft) (string, error) {
		return "", fault.New(fault.KindRemote, fault.CodeRemoteUnavailable, "retail-service unreachable")
	}

	res, err := c.Book(context.Background(), validSession(), Request{OutletID: "o1", ProductID: "p1", Size: 42})
	require.Error(t, err)
	assert.Equal(t, fault.CodeRemoteUnavailable, fault.CodeOf(err))
	assert.Equal(t, StateFailed, res.State)

	assert.Zero(t, reg.loadCalls, "registry untouched on failure")
	assert.False(t, locks.Held(oplock.BookingKey("p1", 42)), "lock released on failure")
}

func TestBookRejectsConcurrentAttemptOnSameLine(t *testing.T) {
	_, placer, locks, c := newFixture()

	// Simulate an outstanding booking on the same (product, size).
	require.True(t, locks.TryAcquire(oplock.BookingKey("p1", 42)))

	_, err := c.Book(context.Background(), validSession(), Request{OutletID: "o1", ProductID: "p1", Size: 42})
	require.Error(t, err)
	assert.Equal(t, fault.CodeOperationInProgress, fault.CodeOf(err))
	assert.Zero(t, placer.calls, "rejected attempt must not reach the remote service")

	// A different size of the same product is a different line.
	locks.Release(oplock.BookingKey("p1", 42))
}

func TestBookSucceedsDespiteFailedReload(t *testing.T) {
	reg, _, _, c := newFixture()
	reg.loadErr = fault.New(fault.KindRemote, fault.CodeRemoteUnavailable, "retail-service unreachable")

	res, err := c.Book(context.Background(), validSession(), Request{OutletID: "o1", ProductID: "p1", Size: 42})
	require.NoError(t, err, "the order was created; a stale projection is not a booking failure")
	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, 1, reg.loadCalls)
}
