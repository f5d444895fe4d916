package storage

import "errors"

// Store defines the interface for key/value storage operations
type Store interface {
	Put(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
	Keys() ([]string, error)
	Len() (int, error)

	// Lifecycle
	Close() error
}

var (
	// ErrNotFound is returned when a key is not present
	ErrNotFound = errors.New("key not found")

	// ErrStoreClosed is returned when operating on a closed store
	ErrStoreClosed = errors.New("store is closed")

	// ErrUnknownKind is returned by NewStore for an unrecognized backend
	ErrUnknownKind = errors.New("unknown storage kind")
)
