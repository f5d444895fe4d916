package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore implements Store using a MySQL backend. The connection is
// lazy: sql.Open validates only the DSN, and the schema is created on
// first use, so constructing the store does not need a reachable server.
type MySQLStore struct {
	db *sql.DB

	mu          sync.Mutex
	schemaReady bool
	closed      bool
}

// NewMySQLStore creates a new MySQL-backed store from a DSN such as
// "user:pass@tcp(localhost:3306)/gopatterns"
func NewMySQLStore(dsn string) (Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	return &MySQLStore{db: db}, nil
}

// ensureReady fails fast once the store is closed and creates the kv
// table before the first query. A failed attempt, such as the server
// being unreachable, is retried on the next call rather than cached.
func (s *MySQLStore) ensureReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if s.schemaReady {
		return nil
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		` + "`key`" + ` VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	s.schemaReady = true
	return nil
}

func (s *MySQLStore) Put(key, value string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (`+"`key`"+`, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`, key, value)
	return err
}

func (s *MySQLStore) Get(key string) (string, error) {
	if err := s.ensureReady(); err != nil {
		return "", err
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE `key` = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *MySQLStore) Delete(key string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM kv WHERE `key` = ?", key)
	return err
}

func (s *MySQLStore) Keys() ([]string, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT `key` FROM kv ORDER BY `key`")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *MySQLStore) Len() (int, error) {
	if err := s.ensureReady(); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&count)
	return count, err
}

// Close closes the underlying database. Further operations return
// ErrStoreClosed; closing again is a no-op.
func (s *MySQLStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.db.Close()
}
