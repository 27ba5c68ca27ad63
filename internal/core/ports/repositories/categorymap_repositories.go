package repositories

import "context"

// KeyValueStore is a flat key-to-value mapping with last-write-wins saves.
// The category to offset-account map is stored through this port, backed by
// either a relational table or a JSON file; callers must not care which.
type KeyValueStore interface {
	// Get retrieves the value for key. Missing keys yield apperrors.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// GetAll retrieves the whole mapping.
	GetAll(ctx context.Context) (map[string]string, error)

	// Set writes key to value, overwriting any prior value.
	Set(ctx context.Context, key, value string) error
}
