package http

import (
	"log/slog"
	"net/http"

	"github.com/syedqalbe-create/VisionAR/internal/service"
	"github.com/syedqalbe-create/VisionAR/pkg/middleware"
)

// ThemeHandler handles HTTP requests for theme endpoints. The optional
// "device" query parameter carries the device color-scheme hint; it only
// matters until the user makes an explicit choice.
type ThemeHandler struct {
	service *service.ThemeService
	logger  *slog.Logger
}

// NewThemeHandler creates a new theme HTTP handler.
func NewThemeHandler(svc *service.ThemeService, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{
		service: svc,
		logger:  logger,
	}
}

// Get handles GET /api/v1/profile/theme?device=
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, err := h.service.Resolve(r.Context(), middleware.UserIDFromContext(r.Context()), r.URL.Query().Get("device"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"theme": string(theme)}})
}

// Toggle handles POST /api/v1/profile/theme/toggle?device=
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	theme, err := h.service.Toggle(r.Context(), middleware.UserIDFromContext(r.Context()), r.URL.Query().Get("device"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"theme": string(theme)}})
}
