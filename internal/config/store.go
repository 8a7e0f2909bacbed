package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	_ "modernc.org/sqlite"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ErrUnknownKey is returned when a setting does not correspond to any config field.
var ErrUnknownKey = errors.New("unknown config key")

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	// Don't allow keys starting or ending with dots
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}

// Store provides access to settings changed at runtime.
// No caching - reads fresh from the database each time.
type Store interface {
	// Get returns a single config entry by key, or nil if it is not set.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set creates or updates a config entry.
	Set(ctx context.Context, key string, value any, description string) error

	// GetAll returns all config entries.
	GetAll(ctx context.Context) (map[string]Entry, error)

	// GetByPrefix returns config entries matching the prefix.
	GetByPrefix(ctx context.Context, prefix string) (map[string]Entry, error)

	// Delete removes a config entry.
	Delete(ctx context.Context, key string) error
}

// Entry represents a single configuration entry.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	UpdatedAt   string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

const settingsDDL = `CREATE TABLE IF NOT EXISTS settings (
	key         TEXT PRIMARY KEY,
	value       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	updated_at  TEXT NOT NULL
)`

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the settings database at path.
func OpenStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, settingsDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns a single config entry by key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Entry, error) {
	entries, err := s.query(ctx, `SELECT key, value, description, updated_at FROM settings WHERE key = ?`, key)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil // Not found
	}
	return &entries[0], nil
}

// Set creates or updates a config entry.
func (s *SQLiteStore) Set(ctx context.Context, key string, value any, description string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	// Serialize value to JSON for storage
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, description, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		key, string(valueJSON), description, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// GetAll returns all config entries.
func (s *SQLiteStore) GetAll(ctx context.Context) (map[string]Entry, error) {
	entries, err := s.query(ctx, `SELECT key, value, description, updated_at FROM settings`)
	if err != nil {
		return nil, err
	}
	return byKey(entries), nil
}

// GetByPrefix returns config entries matching the prefix.
func (s *SQLiteStore) GetByPrefix(ctx context.Context, prefix string) (map[string]Entry, error) {
	entries, err := s.query(ctx,
		`SELECT key, value, description, updated_at FROM settings WHERE key LIKE ? ESCAPE '\'`,
		escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	return byKey(entries), nil
}

// Delete removes a config entry by key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry Entry
			raw   string
		)
		if err := rows.Scan(&entry.Key, &raw, &entry.Description, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entry.Value = decodeValue(entry.Key, raw)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// decodeValue parses a stored JSON value, falling back to the raw string.
func decodeValue(key, raw string) any {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Debug("config value is not valid JSON, using as raw string",
			"key", key,
			"error", err)
		return raw
	}
	return parsed
}

func byKey(entries []Entry) map[string]Entry {
	result := make(map[string]Entry, len(entries))
	for _, e := range entries {
		result[e.Key] = e
	}
	return result
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
