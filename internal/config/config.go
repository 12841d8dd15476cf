// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes bot credentials,
// database and seed paths, presence settings, logging, and the ops HTTP
// server.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// PresenceConfig defines the gateway presence applied once the session is
// ready. Unrecognized values fall back to defaults rather than failing.
type PresenceConfig struct {
	Status       string // BOT_STATUS: online|idle|dnd|invisible
	ActivityType string // BOT_ACTIVITY_TYPE: PLAYING|WATCHING|LISTENING|COMPETING|STREAMING
	ActivityName string // ACTIVITY_NAME: free text
}

// TMDBConfig defines settings for the movie-metadata client.
type TMDBConfig struct {
	APIKey  string        // TMDB_API_KEY
	Timeout time.Duration // TMDB_TIMEOUT
	RPS     float64       // TMDB_RPS: outbound request rate (>= 0)
	Burst   int           // TMDB_BURST: limiter bucket size (>= 1)
}

// Config holds all configuration values for the application.
type Config struct {
	// Discord
	BotToken string // BOT_TOKEN (required)
	ClientID string // CLIENT_ID (required): application ID used for command registration

	// App
	DBPath  string // SQLite path
	SeedDir string // directory of franchise seed documents

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Ops HTTP server (/healthz, /metrics)
	HTTPPort string

	Presence PresenceConfig
	TMDB     TMDBConfig
}

// validPresenceStatus is the fixed set of gateway status strings.
var validPresenceStatus = map[string]bool{
	"online": true, "idle": true, "dnd": true, "invisible": true,
}

// validActivityTypes is the fixed set of activity type names.
var validActivityTypes = map[string]bool{
	"PLAYING": true, "WATCHING": true, "LISTENING": true, "COMPETING": true, "STREAMING": true,
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		BotToken: getenv("BOT_TOKEN", ""),
		ClientID: getenv("CLIENT_ID", ""),

		DBPath:  getenv("DB_PATH", "maeve.db"),
		SeedDir: getenv("SEED_DIR", "assets"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		HTTPPort: getenv("HTTP_PORT", "8080"),

		Presence: PresenceConfig{
			Status:       strings.ToLower(getenv("BOT_STATUS", "online")),
			ActivityType: strings.ToUpper(getenv("BOT_ACTIVITY_TYPE", "WATCHING")),
			ActivityName: getenv("ACTIVITY_NAME", "your messages"),
		},

		TMDB: TMDBConfig{
			APIKey:  getenv("TMDB_API_KEY", ""),
			Timeout: getdur("TMDB_TIMEOUT", 10*time.Second),
			RPS:     getfloat("TMDB_RPS", 4.0),
			Burst:   getint("TMDB_BURST", 8),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	// Unknown presence values fall back instead of failing startup.
	if !validPresenceStatus[cfg.Presence.Status] {
		cfg.Presence.Status = "online"
	}
	if !validActivityTypes[cfg.Presence.ActivityType] {
		cfg.Presence.ActivityType = "WATCHING"
	}

	// --- validation ---
	if strings.TrimSpace(cfg.BotToken) == "" {
		return cfg, errors.New("BOT_TOKEN must not be empty")
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return cfg, errors.New("CLIENT_ID must not be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.SeedDir) == "" {
		return cfg, errors.New("SEED_DIR must not be empty")
	}
	if strings.TrimSpace(cfg.HTTPPort) == "" {
		return cfg, errors.New("HTTP_PORT must not be empty")
	}
	if cfg.TMDB.Timeout <= 0 {
		return cfg, errors.New("TMDB_TIMEOUT must be a positive duration")
	}
	if cfg.TMDB.RPS < 0 {
		return cfg, errors.New("TMDB_RPS must be >= 0")
	}
	if cfg.TMDB.Burst < 1 {
		return cfg, errors.New("TMDB_BURST must be >= 1")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
