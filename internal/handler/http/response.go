package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
	pkglogger "github.com/syedqalbe-create/VisionAR/pkg/logger"
	"github.com/syedqalbe-create/VisionAR/pkg/validator"
)

// response is the envelope for all API responses.
type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, fallback *slog.Logger, err error) {
	// Prefer the request-scoped logger (enriched with correlation_id and
	// user_id by the RequestLogger middleware) over the handler's own logger.
	l := pkglogger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			l.ErrorContext(r.Context(), "request failed",
				slog.String("error", err.Error()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}
		writeJSON(w, appErr.Status, response{
			Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeJSON(w, status, response{
			Error: &errorResponse{Code: "INTERNAL_ERROR", Message: "an internal error occurred"},
		})
		return
	}

	writeJSON(w, status, response{
		Error: &errorResponse{Code: "REQUEST_FAILED", Message: err.Error()},
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: message},
	})
}

// round2 rounds a monetary amount to two decimals for display. Amounts stay
// unrounded everywhere below this layer.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
