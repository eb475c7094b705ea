package service

import (
	"context"
	"log/slog"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	"github.com/syedqalbe-create/VisionAR/internal/event"
	"github.com/syedqalbe-create/VisionAR/internal/prefs"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

// ThemeService resolves and toggles the user's color scheme.
type ThemeService struct {
	prefs    *prefs.Store
	producer *event.Producer
	logger   *slog.Logger
}

// NewThemeService creates a new theme service.
func NewThemeService(prefs *prefs.Store, producer *event.Producer, logger *slog.Logger) *ThemeService {
	return &ThemeService{
		prefs:    prefs,
		producer: producer,
		logger:   logger,
	}
}

// Resolve returns the user's effective theme: persisted choice first, then
// the device hint, then light.
func (s *ThemeService) Resolve(ctx context.Context, userID, deviceHint string) (domain.Theme, error) {
	if userID == "" {
		return "", apperrors.InvalidInput("user id is required")
	}
	return domain.ResolveTheme(s.prefs.LoadTheme(ctx, userID), deviceHint), nil
}

// Toggle flips the user's effective theme and persists the result as an
// explicit choice. From then on the device hint no longer applies.
func (s *ThemeService) Toggle(ctx context.Context, userID, deviceHint string) (domain.Theme, error) {
	current, err := s.Resolve(ctx, userID, deviceHint)
	if err != nil {
		return "", err
	}

	next := current.Toggle()
	s.prefs.SaveTheme(ctx, userID, next.IsDark())

	if err := s.producer.PublishThemeChanged(ctx, userID, next); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish theme.changed event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "theme toggled",
		slog.String("user_id", userID),
		slog.String("theme", string(next)),
	)
	return next, nil
}
