package googlecloud

import (
	"errors"

	"cloud.google.com/go/datastore"
)

// Common Datastore errors for easier handling in services.
var (
	ErrNotFound   = errors.New("entity not found")
	ErrInvalidKey = errors.New("invalid key")
)

// WrapDatastoreError converts Datastore-specific errors to domain errors.
func WrapDatastoreError(err error) error {
	if err == nil {
		return nil
	}
	if err == datastore.ErrNoSuchEntity {
		return ErrNotFound
	}
	return err
}

// IsNotFoundError checks if an error is a not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, datastore.ErrNoSuchEntity)
}
