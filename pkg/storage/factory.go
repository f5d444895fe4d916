package storage

import "fmt"

// Kind names a storage backend
type Kind string

const (
	KindMemory Kind = "memory"
	KindSQLite Kind = "sqlite"
	KindMySQL  Kind = "mysql"
)

// Config selects and parameterizes a storage backend
type Config struct {
	Kind Kind
	DSN  string // file path for sqlite, DSN for mysql, ignored for memory
}

// NewStore returns a concrete Store for the configured backend.
// An empty kind falls back to the in-memory store.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Kind {
	case KindMemory, "":
		return NewMemoryStore(), nil
	case KindSQLite:
		return NewSQLiteStore(cfg.DSN)
	case KindMySQL:
		return NewMySQLStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, cfg.Kind)
	}
}
