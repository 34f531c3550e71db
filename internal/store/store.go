// Package store persists chat message logs outside the process.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/themobileprof/careportal-assistant/internal/memory"
)

// Driver names accepted by Open
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongodb"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name
var ErrUnknownDriver = errors.New("store: unknown driver")

// Store is an append-only message log keyed by session
type Store interface {
	Append(ctx context.Context, sessionID string, msg memory.Message) error
	// List returns up to limit of the most recent messages, oldest first. A
	// limit of 0 returns the whole log.
	List(ctx context.Context, sessionID string, limit int) ([]memory.Message, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

// Config selects and addresses a backend
type Config struct {
	Driver   string
	URL      string
	Database string // MongoDB only
}

// Open connects to the configured backend and prepares its schema. The memory
// driver has no persistent store and returns nil.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverMemory:
		return nil, nil
	case DriverPostgres, "postgresql":
		return OpenPostgres(ctx, cfg.URL)
	case DriverSQLite, "sqlite3":
		return OpenSQLite(ctx, cfg.URL)
	case DriverMongo, "mongo":
		return OpenMongo(ctx, cfg.URL, cfg.Database)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func encodePayload(payload map[string]string) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(b), nil
}

func decodePayload(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return payload, nil
}
