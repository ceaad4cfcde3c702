package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luniksss/lunikiss-storefront/internal/catalog"
	"github.com/luniksss/lunikiss-storefront/internal/fault"
)

type fakeLister struct {
	listFunc func(ctx context.Context, outletID string) ([]catalog.StockEntry, error)
	calls    int
}

func (f *fakeLister) ListStockByOutlet(ctx context.Context, outletID string) ([]catalog.StockEntry, error) {
	f.calls++
	if f.listFunc != nil {
		return f.listFunc(ctx, outletID)
	}
	return nil, nil
}

func entry(outletID, productID, name string, size, amount int) catalog.StockEntry {
	return catalog.StockEntry{
		OutletID: outletID,
		Product:  catalog.Product{ID: productID, Name: name, Price: 4990},
		Size:     size,
		Amount:   amount,
	}
}

func TestLoadForOutletReplacesWholesale(t *testing.T) {
	lister := &fakeLister{}
	lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		return []catalog.StockEntry{
			entry("o1", "p1", "Runner", 42, 3),
			entry("o1", "p1", "Runner", 43, 1),
		}, nil
	}
	reg := NewRegistry(lister, zerolog.Nop())

	require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))
	qty, ok := reg.Quantity("o1", "p1", 42)
	require.True(t, ok)
	assert.Equal(t, 3, qty)

	// Second load drops lines the remote no longer reports.
	lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, 2)}, nil
	}
	require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

	qty, ok = reg.Quantity("o1", "p1", 42)
	require.True(t, ok)
	assert.Equal(t, 2, qty)
	_, ok = reg.Quantity("o1", "p1", 43)
	assert.False(t, ok, "size 43 was removed by the authoritative reload")
}

func TestLoadForOutletFailureRetainsProjection(t *testing.T) {
	lister := &fakeLister{}
	lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, 3)}, nil
	}
	reg := NewRegistry(lister, zerolog.Nop())
	require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

	lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		return nil, errors.New("remote down")
	}
	require.Error(t, reg.LoadForOutlet(context.Background(), "o1"))

	qty, ok := reg.Quantity("o1", "p1", 42)
	require.True(t, ok, "previous projection must survive a failed load")
	assert.Equal(t, 3, qty)
}

func TestApplyOptimisticDelta(t *testing.T) {
	tests := map[string]struct {
		delta    int
		wantErr  fault.Code
		wantQty  int
	}{
		"decrement":              {delta: -2, wantQty: 1},
		"increment":              {delta: 4, wantQty: 7},
		"to exactly zero":        {delta: -3, wantQty: 0},
		"below zero is rejected": {delta: -4, wantErr: fault.CodeInsufficientStock, wantQty: 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lister := &fakeLister{listFunc: func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
				return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, 3)}, nil
			}}
			reg := NewRegistry(lister, zerolog.Nop())
			require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

			_, err := reg.ApplyOptimisticDelta("o1", "p1", 42, tt.delta)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, fault.CodeOf(err))
			} else {
				require.NoError(t, err)
			}

			qty, ok := reg.Quantity("o1", "p1", 42)
			require.True(t, ok)
			assert.Equal(t, tt.wantQty, qty)
		})
	}
}

func TestApplyOptimisticDeltaUnknownLine(t *testing.T) {
	reg := NewRegistry(&fakeLister{}, zerolog.Nop())

	_, err := reg.ApplyOptimisticDelta("o1", "p1", 42, 1)
	require.Error(t, err)
	assert.Equal(t, fault.CodeNotFound, fault.CodeOf(err))
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}

func TestRevertOptimisticDelta(t *testing.T) {
	newLoaded := func(amount int) (*fakeLister, *Registry) {
		lister := &fakeLister{listFunc: func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
			return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, amount)}, nil
		}}
		reg := NewRegistry(lister, zerolog.Nop())
		require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))
		return lister, reg
	}

	t.Run("reverses the exact delta", func(t *testing.T) {
		_, reg := newLoaded(3)
		ticket, err := reg.ApplyOptimisticDelta("o1", "p1", 42, -2)
		require.NoError(t, err)

		assert.True(t, reg.RevertOptimisticDelta("o1", "p1", 42, -2, ticket))
		qty, _ := reg.Quantity("o1", "p1", 42)
		assert.Equal(t, 3, qty)
	})

	t.Run("newer load wins over the rollback", func(t *testing.T) {
		lister, reg := newLoaded(3)
		ticket, err := reg.ApplyOptimisticDelta("o1", "p1", 42, -2)
		require.NoError(t, err)

		// Authoritative reload lands before the rollback.
		lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
			return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, 7)}, nil
		}
		require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

		assert.False(t, reg.RevertOptimisticDelta("o1", "p1", 42, -2, ticket))
		qty, _ := reg.Quantity("o1", "p1", 42)
		assert.Equal(t, 7, qty, "loaded quantity must not be adjusted by a stale rollback")
	})

	t.Run("line removed by a newer load", func(t *testing.T) {
		lister, reg := newLoaded(3)
		ticket, err := reg.ApplyOptimisticDelta("o1", "p1", 42, 2)
		require.NoError(t, err)

		lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
			return nil, nil
		}
		require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

		assert.False(t, reg.RevertOptimisticDelta("o1", "p1", 42, 2, ticket))
	})
}

func TestStaleReloadDiscarded(t *testing.T) {
	// Two loads race: the one issued first resolves last. Its result must
	// not clobber the projection applied by the newer load.
	lister := &fakeLister{}
	reg := NewRegistry(lister, zerolog.Nop())

	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		close(slowStarted)
		<-slowRelease
		return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, 9)}, nil
	}

	done := make(chan error, 1)
	go func() { done <- reg.LoadForOutlet(context.Background(), "o1") }()
	<-slowStarted

	// Newer load completes while the first is still in flight.
	lister.listFunc = func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		return []catalog.StockEntry{entry("o1", "p1", "Runner", 42, 2)}, nil
	}
	require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

	close(slowRelease)
	require.NoError(t, <-done)

	qty, ok := reg.Quantity("o1", "p1", 42)
	require.True(t, ok)
	assert.Equal(t, 2, qty, "stale load must be discarded")
}

func TestAvailabilityGroupsAndSorts(t *testing.T) {
	lister := &fakeLister{listFunc: func(_ context.Context, _ string) ([]catalog.StockEntry, error) {
		return []catalog.StockEntry{
			entry("o1", "p2", "Zed Boot", 40, 0),
			entry("o1", "p1", "Runner", 43, 1),
			entry("o1", "p1", "Runner", 42, 3),
		}, nil
	}}
	reg := NewRegistry(lister, zerolog.Nop())
	require.NoError(t, reg.LoadForOutlet(context.Background(), "o1"))

	view := reg.Availability("o1")
	require.Len(t, view, 2)

	runner := view[0]
	assert.Equal(t, "Runner", runner.Product.Name)
	assert.Equal(t, 4, runner.TotalStock)
	require.Len(t, runner.Sizes, 2)
	assert.Equal(t, 42, runner.Sizes[0].Size)
	assert.True(t, runner.Sizes[0].Available)

	boot := view[1]
	assert.Equal(t, "Zed Boot", boot.Product.Name)
	assert.Equal(t, 0, boot.TotalStock)
	require.Len(t, boot.Sizes, 1)
	assert.False(t, boot.Sizes[0].Available)
}
