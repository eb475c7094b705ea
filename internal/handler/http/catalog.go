package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	"github.com/syedqalbe-create/VisionAR/internal/service"
)

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// productResponse is the presentation shape of a product. Prices are rounded
// here and nowhere earlier.
type productResponse struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Price              float64  `json:"price"`
	EffectivePrice     float64  `json:"effective_price"`
	DiscountPercentage float64  `json:"discount_percentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	InStock            bool     `json:"in_stock"`
	Brand              string   `json:"brand,omitempty"`
	Category           string   `json:"category,omitempty"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Images             []string `json:"images,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Price:              round2(p.Price),
		EffectivePrice:     round2(p.EffectivePrice()),
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		Stock:              p.Stock,
		InStock:            p.InStock(),
		Brand:              p.Brand,
		Category:           p.Category,
		Thumbnail:          p.Thumbnail,
		Images:             p.Images,
	}
}

// ListProducts handles GET /api/v1/catalog/products?category=&q=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	products, err := h.service.Products(r.Context(), category, query)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response{Data: out})
}

// Categories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	rollups, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: rollups})
}

// GetProduct handles GET /api/v1/catalog/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "product id must be a positive integer")
		return
	}

	p, err := h.service.Product(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: toProductResponse(p)})
}

// Refresh handles POST /api/v1/catalog/refresh
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "refreshed"}})
}
