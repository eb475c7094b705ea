package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/syedqalbe-create/VisionAR/internal/domain"
	"github.com/syedqalbe-create/VisionAR/internal/repository"
	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

const (
	themeKeyPrefix    = "theme:"
	cartKeyPrefix     = "cart:"
	wishlistKeyPrefix = "wishlist:"

	defaultQueueSize    = 256
	defaultWriteTimeout = 5 * time.Second
)

// themePreference is the persisted shape of the theme choice.
type themePreference struct {
	Dark bool `json:"dark"`
}

// Store is the typed preference layer over raw key/value persistence.
//
// Saves update a write-through in-memory cache synchronously and hand the
// persistence write to a background writer: callers never wait on storage and
// never observe a persistence failure. Loads read the cache first, so a save
// followed immediately by a load returns the new value even while the write
// is still in flight. Corrupt or absent stored values decode to the typed
// default instead of erroring.
type Store struct {
	repo   repository.PreferenceRepository
	writer *writer
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string][]byte
}

// New creates a preference store and starts its background writer.
func New(repo repository.PreferenceRepository, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		writer: newWriter(repo, defaultQueueSize, defaultWriteTimeout, logger),
		logger: logger,
		cache:  make(map[string][]byte),
	}
}

// Close drains pending writes. Call during shutdown.
func (s *Store) Close() {
	s.writer.close()
}

// LoadTheme returns the user's persisted dark-mode choice, or nil when no
// valid choice is stored. Callers fall back to the device hint on nil.
func (s *Store) LoadTheme(ctx context.Context, userID string) *bool {
	var pref themePreference
	if !s.load(ctx, themeKeyPrefix+userID, &pref) {
		return nil
	}
	return &pref.Dark
}

// SaveTheme records the user's dark-mode choice.
func (s *Store) SaveTheme(ctx context.Context, userID string, dark bool) {
	s.save(ctx, themeKeyPrefix+userID, themePreference{Dark: dark})
}

// LoadCart returns the user's persisted cart lines, empty when nothing valid
// is stored.
func (s *Store) LoadCart(ctx context.Context, userID string) []domain.CartLine {
	var lines []domain.CartLine
	if !s.load(ctx, cartKeyPrefix+userID, &lines) {
		return nil
	}
	return lines
}

// SaveCart records the user's cart lines.
func (s *Store) SaveCart(ctx context.Context, userID string, lines []domain.CartLine) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	s.save(ctx, cartKeyPrefix+userID, lines)
}

// LoadWishlist returns the user's persisted wishlist entries, empty when
// nothing valid is stored.
func (s *Store) LoadWishlist(ctx context.Context, userID string) []domain.WishlistEntry {
	var entries []domain.WishlistEntry
	if !s.load(ctx, wishlistKeyPrefix+userID, &entries) {
		return nil
	}
	return entries
}

// SaveWishlist records the user's wishlist entries.
func (s *Store) SaveWishlist(ctx context.Context, userID string, entries []domain.WishlistEntry) {
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	s.save(ctx, wishlistKeyPrefix+userID, entries)
}

// load reads a key through the cache and decodes it into v. It reports false
// when the key is absent or the stored value does not decode; corrupt data is
// logged and then treated exactly like absence.
func (s *Store) load(ctx context.Context, key string, v any) bool {
	s.mu.RLock()
	data, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		var err error
		data, err = s.repo.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.logger.WarnContext(ctx, "preference read failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}
			return false
		}
		s.mu.Lock()
		// A save may have raced the read; the cached value is newer.
		if cached, ok := s.cache[key]; ok {
			data = cached
		} else {
			s.cache[key] = data
		}
		s.mu.Unlock()
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt preference",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// save encodes v, updates the cache, and queues the persistence write.
func (s *Store) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode preference failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	// Dropped writes (store closed or queue full) are safe: the cache keeps
	// serving the newest value and the next save resubmits it.
	if !s.writer.enqueue(key, data) {
		s.logger.WarnContext(ctx, "preference write dropped",
			slog.String("key", key))
	}
}
