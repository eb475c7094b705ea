package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/syedqalbe-create/VisionAR/internal/auth"
	"github.com/syedqalbe-create/VisionAR/internal/client"
	"github.com/syedqalbe-create/VisionAR/internal/config"
	"github.com/syedqalbe-create/VisionAR/internal/event"
	handler "github.com/syedqalbe-create/VisionAR/internal/handler/http"
	"github.com/syedqalbe-create/VisionAR/internal/prefs"
	redisrepo "github.com/syedqalbe-create/VisionAR/internal/repository/redis"
	"github.com/syedqalbe-create/VisionAR/internal/service"
	"github.com/syedqalbe-create/VisionAR/pkg/health"
	"github.com/syedqalbe-create/VisionAR/pkg/httpclient"
	pkgkafka "github.com/syedqalbe-create/VisionAR/pkg/kafka"
)

// App wires together all dependencies and runs the service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	prefsStore *prefs.Store
	catalog    *service.CatalogService
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Upstream catalog client behind a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.CatalogTimeout
	upstream := client.NewCatalog(
		httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig("catalog"),
			logger,
		),
		cfg.CatalogBaseURL,
		logger,
	)

	// Build the dependency graph.
	prefsStore := prefs.New(redisrepo.NewPreferenceRepository(rdb), logger)
	eventProducer := event.NewProducer(producer, logger)
	catalogService := service.NewCatalogService(upstream, cfg.CatalogFetchLimit, logger)
	cartService := service.NewCartService(prefsStore, catalogService, eventProducer, logger, cfg.ShippingFlatFee)
	wishlistService := service.NewWishlistService(prefsStore, catalogService, eventProducer, logger)
	themeService := service.NewThemeService(prefsStore, eventProducer, logger)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)

	// Health checks. Readiness requires Redis and a loaded catalog snapshot.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if !catalogService.Loaded() {
			return fmt.Errorf("catalog snapshot not loaded")
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterDeps{
		Catalog:        catalogService,
		Cart:           cartService,
		Wishlist:       wishlistService,
		Theme:          themeService,
		JWT:            jwtManager,
		Health:         healthHandler,
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		prefsStore: prefsStore,
		catalog:    catalogService,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
// The initial catalog fetch happens here; failure is tolerated and the
// service starts degraded, with readiness reporting the missing snapshot
// until a refresh succeeds.
func (a *App) Run(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, a.cfg.CatalogTimeout)
	if err := a.catalog.Refresh(refreshCtx); err != nil {
		a.logger.Error("initial catalog refresh failed, starting degraded",
			slog.String("error", err.Error()),
		)
	}
	cancel()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Drain queued preference writes before the stores close.
	a.prefsStore.Close()

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
