package repository

import "context"

// PreferenceRepository defines the interface for preference persistence.
// Values are opaque JSON blobs keyed by preference key; typed encoding and
// defaulting live in the preference store above this layer.
type PreferenceRepository interface {
	// Get retrieves the raw value for a key. Absent keys return ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set persists the raw value for a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value for a key. Absent keys are a no-op.
	Delete(ctx context.Context, key string) error
}
