package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := NotFound("product", "42")
	assert.Contains(t, e.Error(), "NOT_FOUND")
	assert.Contains(t, e.Error(), "product with id 42 not found")
}

func TestAppError_Unwrap(t *testing.T) {
	e := NotFound("product", "42")
	assert.True(t, errors.Is(e, ErrNotFound))

	inner := errors.New("boom")
	assert.True(t, errors.Is(Internal(inner), inner))
}

func TestUpstream_WrapsBothSentinelAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := Upstream("catalog fetch failed", cause)

	assert.True(t, errors.Is(e, ErrUpstream))
	assert.True(t, errors.Is(e, cause))
	assert.Equal(t, http.StatusBadGateway, e.Status)
}

func TestHTTPStatus_AppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("cart", "u1"), http.StatusNotFound},
		{"invalid input", InvalidInput("bad quantity"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"internal", Internal(errors.New("x")), http.StatusInternalServerError},
		{"upstream", Upstream("catalog down", nil), http.StatusBadGateway},
		{"upstream timeout", UpstreamTimeout("catalog timed out"), http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("load product: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))

	err = fmt.Errorf("fetch: %w", ErrUpstreamTimeout)
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("mystery")))
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrInvalidInput, "parse body")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "parse body")
}
