// Package config resolves the application configuration from the
// environment (optionally a .env file) with XDG-based defaults. Command
// line flags override what Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/twitchy/internal/storage"
)

// Default values
const (
	DefaultBackend  = storage.BackendJSON
	DefaultLogLevel = "info"
	DefaultSSHAddr  = "localhost:2222"
	DefaultHTTPAddr = ""
	DefaultFPS      = 60
)

// Config holds the application configuration.
type Config struct {
	DataDir      string
	Backend      string
	LogLevel     string
	ProfilesPath string
	SSHAddr      string
	HTTPAddr     string // empty disables the HTTP API
	FPS          int
	Seed         int64
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      getEnv("TWITCHY_DATA_DIR", DefaultDataDir()),
		Backend:      getEnv("TWITCHY_BACKEND", DefaultBackend),
		LogLevel:     getEnv("TWITCHY_LOG_LEVEL", DefaultLogLevel),
		ProfilesPath: os.Getenv("TWITCHY_PROFILES"),
		SSHAddr:      getEnv("TWITCHY_SSH_ADDR", DefaultSSHAddr),
		HTTPAddr:     getEnv("TWITCHY_HTTP_ADDR", DefaultHTTPAddr),
		FPS:          getEnvInt("TWITCHY_FPS", DefaultFPS),
		Seed:         getEnvInt64("TWITCHY_SEED", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Backend {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (want json or sqlite)", c.Backend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("config: fps must be between 1 and 240, got %d", c.FPS)
	}
	return nil
}

// LogPath is where interactive sessions write their log.
func (c *Config) LogPath() string {
	return filepath.Join(storage.ExpandHome(c.DataDir), "twitchy.log")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
