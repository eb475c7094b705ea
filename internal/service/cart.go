package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	"github.com/syedqalbe-create/VisionAR/internal/event"
	"github.com/syedqalbe-create/VisionAR/internal/prefs"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

// MaxQuantityPerLine is the upper bound for a single line's quantity.
const MaxQuantityPerLine = 100

// ProductSource resolves products for cart and wishlist operations.
type ProductSource interface {
	Product(ctx context.Context, id int64) (domain.Product, error)
	PriceLookup() domain.PriceLookup
}

// CartSummary is a cart with its derived amounts. Amounts are unrounded;
// rounding is presentation concern.
type CartSummary struct {
	Lines     []domain.CartLine
	ItemCount int
	Subtotal  float64
	Shipping  float64
	Total     float64
}

// CartService implements the business logic for cart operations.
type CartService struct {
	prefs       *prefs.Store
	catalog     ProductSource
	producer    *event.Producer
	logger      *slog.Logger
	shippingFee float64
}

// NewCartService creates a new cart service.
func NewCartService(prefs *prefs.Store, catalog ProductSource, producer *event.Producer, logger *slog.Logger, shippingFee float64) *CartService {
	return &CartService{
		prefs:       prefs,
		catalog:     catalog,
		producer:    producer,
		logger:      logger,
		shippingFee: shippingFee,
	}
}

// Get returns the user's cart with derived amounts. A user with nothing
// stored gets an empty cart, never an error.
func (s *CartService) Get(ctx context.Context, userID string) (CartSummary, error) {
	if userID == "" {
		return CartSummary{}, apperrors.InvalidInput("user id is required")
	}
	lines := s.prefs.LoadCart(ctx, userID)
	return s.summarize(lines), nil
}

// AddItem adds a product to the cart, merging into an existing line. The
// product must exist in the catalog.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, quantity int) (CartSummary, error) {
	if userID == "" {
		return CartSummary{}, apperrors.InvalidInput("user id is required")
	}
	if productID <= 0 {
		return CartSummary{}, apperrors.InvalidInput("product id must be positive")
	}
	if quantity > MaxQuantityPerLine {
		return CartSummary{}, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	if _, err := s.catalog.Product(ctx, productID); err != nil {
		return CartSummary{}, err
	}

	lines := domain.AddLine(s.prefs.LoadCart(ctx, userID), productID, quantity)
	s.prefs.SaveCart(ctx, userID, lines)

	summary := s.summarize(lines)
	s.publishCartUpdated(ctx, userID, summary)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
	)
	return summary, nil
}

// SetQuantity replaces the quantity of an existing line. Requests below 1
// clamp to 1: lowering a quantity never removes the line. A product with no
// line is left untouched.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) (CartSummary, error) {
	if userID == "" {
		return CartSummary{}, apperrors.InvalidInput("user id is required")
	}
	if quantity > MaxQuantityPerLine {
		return CartSummary{}, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	lines := s.prefs.LoadCart(ctx, userID)
	updated := domain.SetQuantity(lines, productID, quantity)
	if domain.FindLine(lines, productID) < 0 {
		return s.summarize(lines), nil
	}
	s.prefs.SaveCart(ctx, userID, updated)

	summary := s.summarize(updated)
	s.publishCartUpdated(ctx, userID, summary)

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
	)
	return summary, nil
}

// RemoveItem removes a line from the cart. An absent product is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int64) (CartSummary, error) {
	if userID == "" {
		return CartSummary{}, apperrors.InvalidInput("user id is required")
	}

	lines := s.prefs.LoadCart(ctx, userID)
	updated := domain.RemoveLine(lines, productID)
	if len(updated) == len(lines) {
		return s.summarize(lines), nil
	}
	s.prefs.SaveCart(ctx, userID, updated)

	summary := s.summarize(updated)
	s.publishCartUpdated(ctx, userID, summary)

	s.logger.InfoContext(ctx, "cart line removed",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
	)
	return summary, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	s.prefs.SaveCart(ctx, userID, nil)

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))
	return nil
}

func (s *CartService) summarize(lines []domain.CartLine) CartSummary {
	lookup := s.catalog.PriceLookup()
	subtotal := domain.Subtotal(lines, lookup)
	shipping := domain.Shipping(lines, s.shippingFee)
	return CartSummary{
		Lines:     lines,
		ItemCount: domain.CartItemCount(lines),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
	}
}

func (s *CartService) publishCartUpdated(ctx context.Context, userID string, summary CartSummary) {
	if err := s.producer.PublishCartUpdated(ctx, userID, summary.Lines, summary.Subtotal, summary.Total); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
