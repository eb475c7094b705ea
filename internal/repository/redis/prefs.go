package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

const keyPrefix = "prefs:"

// PreferenceRepository implements repository.PreferenceRepository using Redis.
// Preferences have no TTL: they live until overwritten or deleted.
type PreferenceRepository struct {
	client *redis.Client
}

// NewPreferenceRepository creates a new Redis-backed preference repository.
func NewPreferenceRepository(client *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

// Get retrieves the raw value for a key from Redis.
func (r *PreferenceRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("preference", key)
		}
		return nil, fmt.Errorf("redis get preference: %w", err)
	}
	return data, nil
}

// Set persists the raw value for a key in Redis.
func (r *PreferenceRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set preference: %w", err)
	}
	return nil
}

// Delete removes the value for a key from Redis.
func (r *PreferenceRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del preference: %w", err)
	}
	return nil
}
