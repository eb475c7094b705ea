package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/syedqalbe-create/VisionAR/internal/auth"
	"github.com/syedqalbe-create/VisionAR/internal/service"
	"github.com/syedqalbe-create/VisionAR/pkg/health"
	"github.com/syedqalbe-create/VisionAR/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Theme    *service.ThemeService
	JWT      *auth.JWTManager
	Health   *health.Handler
	Logger   *slog.Logger

	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("visionar-bff"))
	r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst, deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(deps.JWT, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	cartHandler := NewCartHandler(deps.Cart, deps.Logger)
	wishlistHandler := NewWishlistHandler(deps.Wishlist, deps.Logger)
	themeHandler := NewThemeHandler(deps.Theme, deps.Logger)

	validate := func(token string) (*middleware.Claims, error) {
		claims, err := deps.JWT.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID, Email: claims.Email}, nil
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Auth endpoints are open.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Catalog reads are open; everything keyed by user requires identity.
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/categories", catalogHandler.Categories)
			r.Post("/refresh", catalogHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))
			// Remount so the request-scoped logger picks up the user id
			// that Auth just resolved.
			r.Use(middleware.RequestLogger(deps.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productId}", cartHandler.UpdateQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.List)
				r.Get("/{productId}", wishlistHandler.Contains)
				r.Put("/{productId}", wishlistHandler.Toggle)
			})

			r.Route("/profile/theme", func(r chi.Router) {
				r.Get("/", themeHandler.Get)
				r.Post("/toggle", themeHandler.Toggle)
			})
		})
	})

	return r
}
