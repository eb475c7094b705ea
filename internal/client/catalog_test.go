package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
	"github.com/syedqalbe-create/VisionAR/pkg/httpclient"
)

func newTestCatalog(t *testing.T, handler http.Handler) *Catalog {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = 2 * time.Second

	cbCfg := httpclient.DefaultCircuitBreakerConfig("catalog-test")
	cbCfg.MinRequests = 100 // keep the breaker out of the way

	hc := httpclient.NewCircuitBreakerClient(httpclient.New(cfg), cbCfg, logger)
	return NewCatalog(hc, srv.URL, logger)
}

func TestListProducts(t *testing.T) {
	c := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "60", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "Velvet Accent Chair", "price": 120.5, "discountPercentage": 10, "stock": 4, "brand": "Loftline", "category": "chairs", "thumbnail": "t.jpg"},
				{"id": 2, "title": "Oak Dining Chair", "price": 80, "stock": 0, "brand": "Northwood", "category": "chairs"}
			],
			"total": 2, "skip": 0, "limit": 60
		}`))
	}))

	products, err := c.ListProducts(context.Background(), 60)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Velvet Accent Chair", products[0].Title)
	assert.InDelta(t, 120.5, products[0].Price, 1e-9)
	assert.InDelta(t, 10, products[0].DiscountPercentage, 1e-9)
}

func TestListProductsMalformedBody(t *testing.T) {
	c := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products": [`))
	}))

	_, err := c.ListProducts(context.Background(), 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestGetProduct(t *testing.T) {
	c := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "title": "Walnut Desk", "price": 300, "stock": 2, "category": "desks"}`))
	}))

	p, err := c.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "Walnut Desk", p.Title)
}

func TestGetProductNotFound(t *testing.T) {
	c := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetProductUpstreamError(t *testing.T) {
	c := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestListProductsTimeout(t *testing.T) {
	c := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListProducts(ctx, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamTimeout))
}
