package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all runtime configuration so main stays lean.
type Config struct {
	Server   Server
	Auth     Auth
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Auth configures credential verification for the identity resolver.
type Auth struct {
	JWTSigningKey string
	Issuer        string
	Audience      string

	// AllowPlaceholderWrites keeps the historical escape hatch: the fixed
	// placeholder identity bypasses all authorization checks. Flipping this
	// off demotes the placeholder to read-only access.
	AllowPlaceholderWrites bool
}

// Postgres configures the paper store and the audit outbox.
// An empty URL selects the in-memory stores.
type Postgres struct {
	URL string
}

// Redis configures the pending-approvals cache.
// An empty URL disables caching.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the audit event fan-out.
// Empty brokers disable Kafka publishing; events still reach the audit store.
type Kafka struct {
	Brokers []string
	Topic   string
}

// FromEnv builds the full configuration from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envOr("PAPERFLOW_ADDR", ":8080"),
			ShutdownTimeout: envDurationOr("PAPERFLOW_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: Auth{
			// Default is for development only - override in production.
			JWTSigningKey:          envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:                 envOr("JWT_ISSUER", "paperflow"),
			Audience:               envOr("JWT_AUDIENCE", "paperflow-api"),
			AllowPlaceholderWrites: envOr("ALLOW_PLACEHOLDER_WRITES", "true") == "true",
		},
		Postgres: Postgres{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "paperflow.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
