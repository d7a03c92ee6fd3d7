// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"exercise-tracker/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort         string
	DB                 db.Config
	RequestTimeout     time.Duration
	LogLevel           string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables, after merging an
// optional .env file from the working directory. Variables already set in the
// environment win over the file.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	serverPort := getEnv("PORT", "3000")
	if port, err := strconv.Atoi(serverPort); err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", serverPort)
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		dbURL = getEnv("MONGO_URL", "mongodb://localhost:27017")
	}
	if _, err := db.DetectBackend(dbURL); err != nil {
		return nil, fmt.Errorf("invalid DB_URL: %w", err)
	}

	connectTimeout, err := getDuration("DB_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	maxOpenConns, err := getPositiveInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	logLevel := strings.ToLower(getEnv("LOG_LEVEL", "info"))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", logLevel)
	}

	var origins []string
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			URL:            dbURL,
			Name:           getEnv("DB_NAME", "exercise_tracker"),
			ConnectTimeout: connectTimeout,
			MaxOpenConns:   maxOpenConns,
		},
		RequestTimeout:     requestTimeout,
		LogLevel:           logLevel,
		CORSAllowedOrigins: origins,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func getPositiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}
