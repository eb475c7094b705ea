package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syedqalbe-create/VisionAR/internal/auth"
	"github.com/syedqalbe-create/VisionAR/internal/event"
	"github.com/syedqalbe-create/VisionAR/internal/prefs"
	redisrepo "github.com/syedqalbe-create/VisionAR/internal/repository/redis"
	"github.com/syedqalbe-create/VisionAR/internal/service"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
	"github.com/syedqalbe-create/VisionAR/pkg/health"
	pkgkafka "github.com/syedqalbe-create/VisionAR/pkg/kafka"
	"github.com/syedqalbe-create/VisionAR/pkg/logger"
	"github.com/syedqalbe-create/VisionAR/pkg/middleware"
)

// logLine returns the first log line whose msg field matches.
func logLine(buf *bytes.Buffer, msg string) string {
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"msg":"`+msg+`"`) {
			return line
		}
	}
	return ""
}

func TestWriteErrorUsesRequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("visionar-bff", "info", &buf)

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, base, apperrors.Internal(assert.AnError))
	})

	validate := func(string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: "user-7", Email: "jo@example.com"}, nil
	}

	// Same chain order as the router: correlation ID, then identity, then
	// the request-scoped logger.
	h := middleware.RequestLogging(base)(
		middleware.Auth(validate)(
			middleware.RequestLogger(base)(failing)))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	req.Header.Set("X-Correlation-ID", "corr-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	line := logLine(&buf, "request failed")
	require.NotEmpty(t, line, "expected an error log line")
	assert.Contains(t, line, `"correlation_id":"corr-123"`)
	assert.Contains(t, line, `"user_id":"user-7"`)
}

func TestUpstreamErrorLogCarriesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("visionar-bff", "info", &buf)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	prefsStore := prefs.New(redisrepo.NewPreferenceRepository(client), log)
	t.Cleanup(prefsStore.Close)

	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaCfg.Async = true
	producer := event.NewProducer(pkgkafka.NewProducer(kafkaCfg, log), log)

	// The catalog is never refreshed, so product reads fail upstream.
	catalogSvc := service.NewCatalogService(&stubUpstream{}, 60, log)

	router := NewRouter(RouterDeps{
		Catalog:        catalogSvc,
		Cart:           service.NewCartService(prefsStore, catalogSvc, producer, log, 10),
		Wishlist:       service.NewWishlistService(prefsStore, catalogSvc, producer, log),
		Theme:          service.NewThemeService(prefsStore, producer, log),
		JWT:            auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
		Health:         health.NewHandler(),
		Logger:         log,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	req.Header.Set("X-Correlation-ID", "corr-upstream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	line := logLine(&buf, "request failed")
	require.NotEmpty(t, line, "expected an error log line")
	assert.Contains(t, line, `"correlation_id":"corr-upstream"`)
}
