package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

// UpstreamCatalog is the upstream product API surface the catalog service
// depends on.
type UpstreamCatalog interface {
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

// CatalogService holds the in-memory product snapshot and serves reads from
// it. The snapshot is replaced atomically by Refresh; reads never block on
// the network except the single-product fallback for IDs outside the
// snapshot.
type CatalogService struct {
	upstream   UpstreamCatalog
	logger     *slog.Logger
	fetchLimit int

	mu         sync.RWMutex
	products   []domain.Product
	byID       map[int64]domain.Product
	loaded     bool
	refreshSeq uint64
}

// NewCatalogService creates a catalog service. The snapshot starts empty;
// call Refresh to populate it.
func NewCatalogService(upstream UpstreamCatalog, fetchLimit int, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		upstream:   upstream,
		logger:     logger,
		fetchLimit: fetchLimit,
		byID:       make(map[int64]domain.Product),
	}
}

// Refresh fetches the product listing and replaces the snapshot. Concurrent
// refreshes are sequenced: a fetch started earlier never overwrites the
// result of one started later, no matter which response arrives first.
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshSeq++
	seq := s.refreshSeq
	s.mu.Unlock()

	products, err := s.upstream.ListProducts(ctx, s.fetchLimit)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.refreshSeq {
		s.logger.InfoContext(ctx, "discarding stale catalog refresh",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", s.refreshSeq),
		)
		return nil
	}
	s.products = products
	s.byID = byID
	s.loaded = true

	s.logger.InfoContext(ctx, "catalog refreshed",
		slog.Int("product_count", len(products)),
	)
	return nil
}

// Loaded reports whether a refresh has ever committed a snapshot.
func (s *CatalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Products returns the snapshot filtered by an optional category and query.
func (s *CatalogService) Products(ctx context.Context, category, query string) ([]domain.Product, error) {
	s.mu.RLock()
	loaded := s.loaded
	products := s.products
	s.mu.RUnlock()

	if !loaded {
		return nil, apperrors.Upstream("catalog not loaded yet", nil)
	}
	return domain.FilterProducts(products, category, query), nil
}

// Categories returns rollups derived from the current snapshot.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.CategoryRollup, error) {
	s.mu.RLock()
	loaded := s.loaded
	products := s.products
	s.mu.RUnlock()

	if !loaded {
		return nil, apperrors.Upstream("catalog not loaded yet", nil)
	}
	return domain.BuildRollups(products), nil
}

// Product returns a single product, from the snapshot when present and from
// the upstream otherwise. The fallback result is not merged into the
// snapshot; only Refresh changes the snapshot.
func (s *CatalogService) Product(ctx context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	p, ok := s.byID[id]
	s.mu.RUnlock()

	if ok {
		return p, nil
	}

	p, err := s.upstream.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Product{}, apperrors.NotFound("product", strconv.FormatInt(id, 10))
		}
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// PriceLookup returns a lookup over the current snapshot resolving product
// IDs to effective prices. The lookup holds a stable view: a refresh during
// iteration does not change what it sees.
func (s *CatalogService) PriceLookup() domain.PriceLookup {
	s.mu.RLock()
	byID := s.byID
	s.mu.RUnlock()

	return func(id int64) (float64, bool) {
		p, ok := byID[id]
		if !ok {
			return 0, false
		}
		return p.EffectivePrice(), true
	}
}
