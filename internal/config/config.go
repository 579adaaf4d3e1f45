package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	LogLevel            string
	LogFile             string
	Timezone            string
	WaniKaniBaseURL     string
	WaniKaniRevision    string
	RequestTimeout      time.Duration
	RateLimitPerMinute  int
	CacheSize           int
	CacheTTL            time.Duration
	PrefetchWorkerCount int
	PrefetchQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		LogFile:             os.Getenv("LOG_FILE"),
		Timezone:            envOr("TIMEZONE", "America/Los_Angeles"),
		WaniKaniBaseURL:     envOr("WANIKANI_BASE_URL", "https://api.wanikani.com/v2/"),
		WaniKaniRevision:    envOr("WANIKANI_REVISION", "20170710"),
		RequestTimeout:      envDurationOr("REQUEST_TIMEOUT", 15*time.Second),
		RateLimitPerMinute:  envIntOr("RATE_LIMIT_PER_MINUTE", 60),
		CacheSize:           envIntOr("CACHE_SIZE", 256),
		CacheTTL:            envDurationOr("CACHE_TTL", 5*time.Minute),
		PrefetchWorkerCount: envIntOr("PREFETCH_WORKER_COUNT", 2),
		PrefetchQueueSize:   envIntOr("PREFETCH_QUEUE_SIZE", 16),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE %q is not a known location", c.Timezone))
	}
	if u, err := url.Parse(c.WaniKaniBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("WANIKANI_BASE_URL %q must be an absolute URL", c.WaniKaniBaseURL))
	}
	if c.WaniKaniRevision == "" {
		problems = append(problems, "WANIKANI_REVISION cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}
	if c.RateLimitPerMinute < 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE cannot be negative")
	}
	if c.CacheSize < 0 {
		problems = append(problems, "CACHE_SIZE cannot be negative")
	}
	if c.CacheTTL < 0 {
		problems = append(problems, "CACHE_TTL cannot be negative")
	}
	if c.PrefetchWorkerCount < 0 {
		problems = append(problems, "PREFETCH_WORKER_COUNT cannot be negative")
	}
	if c.PrefetchWorkerCount > 0 && c.PrefetchQueueSize <= 0 {
		problems = append(problems, "PREFETCH_QUEUE_SIZE must be positive when prefetch is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
