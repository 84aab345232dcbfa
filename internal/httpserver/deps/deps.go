package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"ephemera/internal/logger"
	"ephemera/internal/session"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Sessions    *session.Manager // per-owner collection sessions
	RedisClient *redis.Client    // backing store connection, for readiness checks

	JWTSecret      string   // HMAC secret for bearer tokens
	AllowedOrigins []string // CORS allow-list
	FeedBaseURL    string   // absolute base URL used in feed links
	FeedSize       int      // max entries in the RSS feed
}
