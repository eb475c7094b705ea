package http

import (
	"log/slog"
	"net/http"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	"github.com/syedqalbe-create/VisionAR/internal/service"
	"github.com/syedqalbe-create/VisionAR/pkg/middleware"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

type wishlistEntryResponse struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Image         string  `json:"image,omitempty"`
	InStock       bool    `json:"in_stock"`
}

func toWishlistResponse(entries []domain.WishlistEntry) []wishlistEntryResponse {
	out := make([]wishlistEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = wishlistEntryResponse{
			ProductID:     e.ProductID,
			Name:          e.Name,
			Brand:         e.Brand,
			Price:         round2(e.Price),
			OriginalPrice: round2(e.OriginalPrice),
			Image:         e.Image,
			InStock:       e.InStock,
		}
	}
	return out
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: toWishlistResponse(entries)})
}

// Toggle handles PUT /api/v1/wishlist/{productId}
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeBadRequest(w, "product id must be a positive integer")
		return
	}

	added, entries, err := h.service.Toggle(r.Context(), middleware.UserIDFromContext(r.Context()), productID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]any{
		"added":   added,
		"entries": toWishlistResponse(entries),
	}})
}

// Contains handles GET /api/v1/wishlist/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeBadRequest(w, "product id must be a positive integer")
		return
	}

	has, err := h.service.Contains(r.Context(), middleware.UserIDFromContext(r.Context()), productID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]bool{"in_wishlist": has}})
}
