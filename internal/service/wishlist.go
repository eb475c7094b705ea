package service

import (
	"context"
	"log/slog"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	"github.com/syedqalbe-create/VisionAR/internal/event"
	"github.com/syedqalbe-create/VisionAR/internal/prefs"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

// WishlistService implements the business logic for wishlist operations.
type WishlistService struct {
	prefs    *prefs.Store
	catalog  ProductSource
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(prefs *prefs.Store, catalog ProductSource, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		prefs:    prefs,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
	}
}

// List returns the user's wishlist entries.
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	entries := s.prefs.LoadWishlist(ctx, userID)
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	return entries, nil
}

// Contains reports whether the product is on the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID string, productID int64) (bool, error) {
	if userID == "" {
		return false, apperrors.InvalidInput("user id is required")
	}
	return domain.WishlistContains(s.prefs.LoadWishlist(ctx, userID), productID), nil
}

// Toggle adds the product to the wishlist if absent and removes it if
// present. Adding snapshots the product as it is now; the entry does not
// track later catalog changes.
func (s *WishlistService) Toggle(ctx context.Context, userID string, productID int64) (added bool, entries []domain.WishlistEntry, err error) {
	if userID == "" {
		return false, nil, apperrors.InvalidInput("user id is required")
	}
	if productID <= 0 {
		return false, nil, apperrors.InvalidInput("product id must be positive")
	}

	entries = s.prefs.LoadWishlist(ctx, userID)

	if domain.WishlistContains(entries, productID) {
		entries = domain.RemoveWishlistEntry(entries, productID)
	} else {
		p, err := s.catalog.Product(ctx, productID)
		if err != nil {
			return false, nil, err
		}
		entries = append(entries, domain.NewWishlistEntry(p))
		added = true
	}

	s.prefs.SaveWishlist(ctx, userID, entries)

	if err := s.producer.PublishWishlistUpdated(ctx, userID, productID, added, len(entries)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist toggled",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Bool("added", added),
	)
	return added, entries, nil
}
