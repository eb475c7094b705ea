package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

type fakeUpstream struct {
	mu     sync.Mutex
	listFn func(ctx context.Context, limit int) ([]domain.Product, error)
	getFn  func(ctx context.Context, id int64) (domain.Product, error)
}

func (f *fakeUpstream) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	f.mu.Lock()
	fn := f.listFn
	f.mu.Unlock()
	return fn(ctx, limit)
}

func (f *fakeUpstream) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	f.mu.Lock()
	fn := f.getFn
	f.mu.Unlock()
	if fn == nil {
		return domain.Product{}, apperrors.NotFound("product", strconv.FormatInt(id, 10))
	}
	return fn(ctx, id)
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Velvet Accent Chair", Brand: "Loftline", Category: "chairs", Price: 100, DiscountPercentage: 10, Stock: 4, Thumbnail: "velvet.jpg"},
		{ID: 2, Title: "Oak Dining Chair", Brand: "Northwood", Category: "chairs", Price: 50, Stock: 2, Thumbnail: "oak.jpg"},
		{ID: 3, Title: "Walnut Desk", Brand: "Northwood", Category: "desks", Price: 300, Stock: 0, Thumbnail: "desk.jpg"},
	}
}

func newTestCatalogService(upstream UpstreamCatalog) *CatalogService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalogService(upstream, 60, logger)
}

func TestCatalogRefreshAndRead(t *testing.T) {
	upstream := &fakeUpstream{
		listFn: func(ctx context.Context, limit int) ([]domain.Product, error) {
			assert.Equal(t, 60, limit)
			return sampleProducts(), nil
		},
	}
	svc := newTestCatalogService(upstream)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))
	assert.True(t, svc.Loaded())

	products, err := svc.Products(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, products, 3)

	filtered, err := svc.Products(ctx, "chairs", "velvet")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	rollups, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, rollups, 2)
	assert.Equal(t, "chairs", rollups[0].Name)
	assert.Equal(t, 2, rollups[0].ProductCount)
}

func TestCatalogReadsBeforeRefresh(t *testing.T) {
	svc := newTestCatalogService(&fakeUpstream{})
	ctx := context.Background()

	_, err := svc.Products(ctx, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	_, err = svc.Categories(ctx)
	require.Error(t, err)
	assert.False(t, svc.Loaded())
}

func TestCatalogRefreshError(t *testing.T) {
	upstream := &fakeUpstream{
		listFn: func(ctx context.Context, limit int) ([]domain.Product, error) {
			return nil, apperrors.Upstream("listing failed", nil)
		},
	}
	svc := newTestCatalogService(upstream)

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.False(t, svc.Loaded())
}

func TestCatalogStaleRefreshDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	old := []domain.Product{{ID: 1, Title: "Old Snapshot", Category: "chairs"}}
	fresh := []domain.Product{{ID: 2, Title: "Fresh Snapshot", Category: "desks"}}

	upstream := &fakeUpstream{
		listFn: func(ctx context.Context, limit int) ([]domain.Product, error) {
			if calls.Add(1) == 1 {
				<-release
				return old, nil
			}
			return fresh, nil
		},
	}
	svc := newTestCatalogService(upstream)
	ctx := context.Background()

	// Start a refresh whose response will arrive late.
	done := make(chan error, 1)
	go func() { done <- svc.Refresh(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	// A second refresh starts later and commits first.
	require.NoError(t, svc.Refresh(ctx))

	// Now the first response lands; it must not overwrite the newer snapshot.
	close(release)
	require.NoError(t, <-done)

	products, err := svc.Products(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Fresh Snapshot", products[0].Title)
}

func TestCatalogProductFallsBackToUpstream(t *testing.T) {
	upstream := &fakeUpstream{
		listFn: func(ctx context.Context, limit int) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
		getFn: func(ctx context.Context, id int64) (domain.Product, error) {
			if id == 99 {
				return domain.Product{ID: 99, Title: "Reading Lamp"}, nil
			}
			return domain.Product{}, apperrors.NotFound("product", strconv.FormatInt(id, 10))
		},
	}
	svc := newTestCatalogService(upstream)
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	// Snapshot hit, upstream untouched.
	p, err := svc.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Velvet Accent Chair", p.Title)

	// Snapshot miss falls back to the upstream.
	p, err = svc.Product(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, "Reading Lamp", p.Title)

	_, err = svc.Product(ctx, 1000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogPriceLookup(t *testing.T) {
	upstream := &fakeUpstream{
		listFn: func(ctx context.Context, limit int) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
	}
	svc := newTestCatalogService(upstream)
	require.NoError(t, svc.Refresh(context.Background()))

	lookup := svc.PriceLookup()

	price, ok := lookup(1)
	require.True(t, ok)
	assert.InDelta(t, 90, price, 1e-9) // 100 at 10% off

	price, ok = lookup(2)
	require.True(t, ok)
	assert.InDelta(t, 50, price, 1e-9)

	_, ok = lookup(42)
	assert.False(t, ok)
}
