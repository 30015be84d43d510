package repositories

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned when a store operation is given an empty key.
var ErrInvalidKey = errors.New("storage key must not be empty")

// Store is a durable key/value store for client state.
//
// Get reports whether the key exists; a missing key is not an error.
// Set overwrites any existing value. Remove of a missing key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}
