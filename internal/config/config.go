package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	ingestModel "bookstore-ranking/internal/domains/ingestion/model"
	"bookstore-ranking/internal/shared/utils"
)

// Config holds the whole application configuration.
// Populated from environment variables (and .env in development).
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	Ingest IngestConfig
	Query  QueryConfig
	CORS   CORSConfig
	Log    LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	TTL      time.Duration // lifetime of cached ranking/listing reads
}

// =====================================================
// INGESTION
// =====================================================

type IngestConfig struct {
	Encoding       string // utf-8 | windows-1252
	OnDuplicate    string // skip | update
	MaxUploadBytes int64
	TempDir        string // where multipart uploads are spooled, "" = os.TempDir()
}

type QueryConfig struct {
	Timeout time.Duration // per read request
}

type CORSConfig struct {
	AllowedOrigins []string // empty = any origin
}

type LogConfig struct {
	Level string
}

// Load reads the config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookstore Sales Ranking"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", getEnv("PORT", "3001")),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_TTL", 5*time.Minute),
		},
		Ingest: IngestConfig{
			Encoding:       strings.ToLower(getEnv("INGEST_ENCODING", utils.EncodingUTF8)),
			OnDuplicate:    strings.ToLower(getEnv("INGEST_ON_DUPLICATE", ingestModel.OnDuplicateSkip)),
			MaxUploadBytes: int64(getEnvInt("INGEST_MAX_UPLOAD_BYTES", 32<<20)),
			TempDir:        getEnv("INGEST_TEMP_DIR", ""),
		},
		Query: QueryConfig{
			Timeout: getEnvDuration("QUERY_TIMEOUT", 30*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Environment, validation.Required, validation.In("development", "staging", "production", "test")),
		validation.Field(&c.App.Port, validation.Required, validation.Match(portPattern).Error("must be a TCP port number")),
	); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	if err := validation.ValidateStruct(&c.Ingest,
		validation.Field(&c.Ingest.Encoding, validation.In(utils.EncodingUTF8, utils.EncodingWindows1252)),
		validation.Field(&c.Ingest.OnDuplicate, validation.In(ingestModel.OnDuplicateSkip, ingestModel.OnDuplicateUpdate)),
		validation.Field(&c.Ingest.MaxUploadBytes, validation.Min(int64(1))),
	); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if err := validation.ValidateStruct(&c.Query,
		validation.Field(&c.Query.Timeout, validation.Min(time.Second)),
	); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.Redis.Enabled {
		if err := validation.ValidateStruct(&c.Redis,
			validation.Field(&c.Redis.Host, validation.Required),
			validation.Field(&c.Redis.TTL, validation.Min(time.Second)),
		); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	return nil
}
