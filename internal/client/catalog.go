package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
	"github.com/syedqalbe-create/VisionAR/pkg/httpclient"
)

// Catalog fetches products from the upstream product API. The upstream
// serves a paginated product listing under /products and single products
// under /products/{id}.
type Catalog struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewCatalog creates an upstream catalog client against the given base URL.
func NewCatalog(client *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *Catalog {
	return &Catalog{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// productListResponse mirrors the upstream listing envelope.
type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// ListProducts fetches up to limit products from the upstream.
func (c *Catalog) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, limit)

	resp, err := c.client.Get(ctx, url)
	if err != nil {
		return nil, c.translateError("list products", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Upstream(
			fmt.Sprintf("product listing returned status %d", resp.StatusCode), nil)
	}

	var body productListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Upstream("decode product listing", err)
	}

	c.logger.DebugContext(ctx, "fetched product listing",
		slog.Int("count", len(body.Products)),
		slog.Int("total", body.Total),
	)
	return body.Products, nil
}

// GetProduct fetches a single product by ID.
func (c *Catalog) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	url := c.baseURL + "/products/" + strconv.FormatInt(id, 10)

	resp, err := c.client.Get(ctx, url)
	if err != nil {
		return domain.Product{}, c.translateError("get product", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Product{}, apperrors.NotFound("product", strconv.FormatInt(id, 10))
	case resp.StatusCode != http.StatusOK:
		return domain.Product{}, apperrors.Upstream(
			fmt.Sprintf("product fetch returned status %d", resp.StatusCode), nil)
	}

	var p domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return domain.Product{}, apperrors.Upstream("decode product", err)
	}
	return p, nil
}

// translateError maps transport failures onto the app error taxonomy.
// Deadline expiry becomes a timeout error so handlers can answer 504, and an
// open breaker reads as a plain upstream failure.
func (c *Catalog) translateError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.UpstreamTimeout(op)
	}
	if errors.Is(err, httpclient.ErrCircuitOpen) {
		return apperrors.Upstream(op+": upstream unavailable", err)
	}
	return apperrors.Upstream(op, err)
}
