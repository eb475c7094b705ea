package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	pkgkafka "github.com/syedqalbe-create/VisionAR/pkg/kafka"
)

// Kafka topic constants for app domain events.
const (
	TopicCartUpdated     = "visionar.cart.updated"
	TopicCartCleared     = "visionar.cart.cleared"
	TopicWishlistUpdated = "visionar.wishlist.updated"
	TopicThemeChanged    = "visionar.theme.changed"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeProfile  = "profile"
)

// Source identifier for events originating from this service.
const Source = "visionar-bff"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID    string            `json:"user_id"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
	Total     float64           `json:"total"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	UserID     string `json:"user_id"`
	ProductID  int64  `json:"product_id"`
	Added      bool   `json:"added"`
	EntryCount int    `json:"entry_count"`
}

// ThemeChangedData is the payload for a theme.changed event.
type ThemeChangedData struct {
	UserID string `json:"user_id"`
	Theme  string `json:"theme"`
}

// Producer publishes app domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, userID string, lines []domain.CartLine, subtotal, total float64) error {
	data := CartUpdatedData{
		UserID:    userID,
		Lines:     lines,
		ItemCount: domain.CartItemCount(lines),
		Subtotal:  subtotal,
		Total:     total,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, userID, AggregateTypeCart, Source, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", userID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, Source, CartClearedData{UserID: userID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, userID string, productID int64, added bool, entryCount int) error {
	data := WishlistUpdatedData{
		UserID:     userID,
		ProductID:  productID,
		Added:      added,
		EntryCount: entryCount,
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, userID, AggregateTypeWishlist, Source, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Bool("added", added),
	)

	return nil
}

// PublishThemeChanged publishes a theme.changed event.
func (p *Producer) PublishThemeChanged(ctx context.Context, userID string, theme domain.Theme) error {
	event, err := pkgkafka.NewEvent(TopicThemeChanged, userID, AggregateTypeProfile, Source, ThemeChangedData{
		UserID: userID,
		Theme:  string(theme),
	})
	if err != nil {
		return fmt.Errorf("create theme.changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicThemeChanged, event); err != nil {
		return fmt.Errorf("publish theme.changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published theme.changed event",
		slog.String("user_id", userID),
		slog.String("theme", string(theme)),
	)

	return nil
}
