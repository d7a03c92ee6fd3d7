// pkg/db/db.go
package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Backend identifies which store implementation a connection string selects.
type Backend string

const (
	BackendMongo    Backend = "mongo"
	BackendPostgres Backend = "postgres"
)

// Config holds store connection configuration.
type Config struct {
	URL            string        // Connection string; its scheme selects the backend
	Name           string        // Database name (Mongo only; Postgres takes it from URL)
	ConnectTimeout time.Duration // Bound for connect + ping
	MaxOpenConns   int           // Pool size
}

// DetectBackend returns the backend selected by the connection string's scheme.
func DetectBackend(rawURL string) (Backend, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid store URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported store URL scheme %q", u.Scheme)
	}
}
