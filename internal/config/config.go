package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	JWTSecret      string   // HMAC secret for bearer tokens
	AllowedOrigins []string // CORS origins, empty = allow all

	// Metadata fetcher
	FetchTimeout      time.Duration // per-URL download timeout
	FetchMaxBodyBytes int           // cap on downloaded page size

	// Session lifecycle
	SessionIdleTTL       time.Duration // evict sessions idle longer than this
	SessionSweepInterval time.Duration // how often the janitor runs

	// Feed
	FeedBaseURL string // public base URL used in the RSS feed
	FeedSize    int    // number of entries in the feed

	// Redis (remote document store)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	// Best effort: local dev keeps secrets in .env, production sets
	// real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      getenv("EPHEMERA_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("EPHEMERA_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("EPHEMERA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("EPHEMERA_PRETTY_LOG", true),

		JWTSecret:      requireEnv("EPHEMERA_JWT_SECRET"),
		AllowedOrigins: splitAndTrim(getenv("EPHEMERA_ALLOWED_ORIGINS", "")),

		FetchTimeout:      mustDuration("EPHEMERA_FETCH_TIMEOUT", 10*time.Second),
		FetchMaxBodyBytes: getenvInt("EPHEMERA_FETCH_MAX_BODY_BYTES", 2<<20),

		SessionIdleTTL:       mustDuration("EPHEMERA_SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepInterval: mustDuration("EPHEMERA_SESSION_SWEEP_INTERVAL", 5*time.Minute),

		FeedBaseURL: getenv("EPHEMERA_FEED_BASE_URL", "http://localhost:8080"),
		FeedSize:    getenvInt("EPHEMERA_FEED_SIZE", 20),

		RedisAddr:           requireEnv("EPHEMERA_REDIS_ADDR"),
		RedisUser:           getenv("EPHEMERA_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("EPHEMERA_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("EPHEMERA_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
