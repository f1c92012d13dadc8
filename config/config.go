package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	apperr "deshnews/ingestworker/pkg/errors"
)

// Dispatch modes for a run.
const (
	ModeSequential = "sequential"
	ModeChunked    = "chunked"
)

// Config represents the application configuration
type Config struct {
	// Store configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Source site
	SourceBaseURL string

	// Targets: category slugs resolved via the taxonomy, and/or explicit
	// article URLs with category overrides
	Categories       []string
	ArticleURLs      []string
	CategoryOverride string
	ParentOverride   string

	// Dispatch configuration
	Mode       string
	BatchSize  int
	ItemDelay  time.Duration
	BatchDelay time.Duration

	// Write semantics, explicit per run
	UpsertMode string

	// Run once (default) or loop on an interval
	RunOnce        bool
	IngestInterval time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	batchSize, _ := strconv.Atoi(getEnv("INGEST_BATCH_SIZE", "5"))
	itemDelayMs, _ := strconv.Atoi(getEnv("INGEST_ITEM_DELAY_MS", "300"))
	batchDelayMs, _ := strconv.Atoi(getEnv("INGEST_BATCH_DELAY_MS", "1000"))
	interval, _ := strconv.Atoi(getEnv("INGEST_INTERVAL_SECONDS", "900"))

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "deshnews"),
		DBPassword: getEnv("DB_PASSWORD", "deshnews"),
		DBName:     getEnv("DB_NAME", "deshnews"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "articles"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,

		MemcacheAddr: getEnv("MEMCACHE_ADDR", "localhost:11211"),

		SourceBaseURL: getEnv("SOURCE_BASE_URL", "https://www.deshnews24.example"),

		Categories:       splitList(getEnv("INGEST_CATEGORIES", "saradesh")),
		ArticleURLs:      splitList(getEnv("INGEST_ARTICLE_URLS", "")),
		CategoryOverride: getEnv("INGEST_CATEGORY_OVERRIDE", ""),
		ParentOverride:   getEnv("INGEST_PARENT_OVERRIDE", ""),

		Mode:       getEnv("INGEST_MODE", ModeSequential),
		BatchSize:  batchSize,
		ItemDelay:  time.Duration(itemDelayMs) * time.Millisecond,
		BatchDelay: time.Duration(batchDelayMs) * time.Millisecond,

		UpsertMode: getEnv("INGEST_UPSERT_MODE", "insert_or_update"),

		RunOnce:        getEnv("RUN_ONCE", "true") == "true",
		IngestInterval: time.Duration(interval) * time.Second,

		Environment: getEnv("INGEST_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for fatal startup errors
func (c *Config) Validate() error {
	if c.SourceBaseURL == "" {
		return apperr.NewConfiguration("SOURCE_BASE_URL must be set", nil)
	}
	if _, err := url.Parse(c.SourceBaseURL); err != nil {
		return apperr.NewConfiguration("SOURCE_BASE_URL is not a valid URL", err)
	}
	if c.Mode != ModeSequential && c.Mode != ModeChunked {
		return apperr.NewConfiguration("INGEST_MODE must be sequential or chunked", nil)
	}
	if c.BatchSize <= 0 {
		return apperr.NewConfiguration("INGEST_BATCH_SIZE must be positive", nil)
	}
	if c.UpsertMode != "insert_only" && c.UpsertMode != "insert_or_update" {
		return apperr.NewConfiguration("INGEST_UPSERT_MODE must be insert_only or insert_or_update", nil)
	}
	if len(c.Categories) == 0 && len(c.ArticleURLs) == 0 {
		return apperr.NewConfiguration("no ingestion targets: set INGEST_CATEGORIES or INGEST_ARTICLE_URLS", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList parses a comma-separated env value, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
