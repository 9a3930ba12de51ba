package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
)

// Content source kinds.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Cycle   CycleConfig   `yaml:"cycle"`
	Content ContentConfig `yaml:"content"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool         `yaml:"enabled"`
	RequestsPerMinute int          `yaml:"requestsPerMinute"`
	Burst             int          `yaml:"burst"`
	Valkey            ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig points the rate limiter at a shared Valkey/Redis instance.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CycleConfig holds evaluator defaults.
type CycleConfig struct {
	DefaultCycleLength int    `yaml:"defaultCycleLength"`
	DefaultMensesDays  int    `yaml:"defaultMensesDays"`
	Timezone           string `yaml:"timezone"`
	Locale             string `yaml:"locale"`
}

// ContentConfig selects where the advice library is loaded from.
type ContentConfig struct {
	Source   string         `yaml:"source"`
	Path     string         `yaml:"path"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// S3Config locates the library in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if parsed, err := time.ParseDuration(v); err == nil {
				*dst = parsed
			}
		}
	}

	setString("HTTP_ADDRESS", &cfg.HTTP.Address)
	setDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout)
	setDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout)
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	setBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	setInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	setInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	setBool("HTTP_RATE_LIMIT_VALKEY_ENABLED", &cfg.HTTP.RateLimit.Valkey.Enabled)
	setString("HTTP_RATE_LIMIT_VALKEY_ADDR", &cfg.HTTP.RateLimit.Valkey.Addr)
	setBool("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	setInt("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	setDuration("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)

	setInt("CYCLE_DEFAULT_LENGTH", &cfg.Cycle.DefaultCycleLength)
	setInt("CYCLE_DEFAULT_MENSES_DAYS", &cfg.Cycle.DefaultMensesDays)
	setString("CYCLE_TIMEZONE", &cfg.Cycle.Timezone)
	setString("CYCLE_LOCALE", &cfg.Cycle.Locale)

	setString("CONTENT_SOURCE", &cfg.Content.Source)
	setString("CONTENT_PATH", &cfg.Content.Path)
	setString("CONTENT_S3_ENDPOINT", &cfg.Content.S3.Endpoint)
	setString("CONTENT_S3_ACCESS_KEY", &cfg.Content.S3.AccessKey)
	setString("CONTENT_S3_SECRET_KEY", &cfg.Content.S3.SecretKey)
	setString("CONTENT_S3_BUCKET", &cfg.Content.S3.Bucket)
	setString("CONTENT_S3_REGION", &cfg.Content.S3.Region)
	setString("CONTENT_S3_KEY", &cfg.Content.S3.Key)
	setString("CONTENT_POSTGRES_DSN", &cfg.Content.Postgres.DSN)
	if v := os.Getenv("CONTENT_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Content.Postgres.MaxConns = int32(parsed)
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
				Valkey: ValkeyConfig{
					Prefix: "cycle:ratelimit",
				},
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		Cycle: CycleConfig{
			DefaultCycleLength: cycle.DefaultCycleLength,
			DefaultMensesDays:  cycle.DefaultMensesDays,
			Timezone:           "Asia/Shanghai",
			Locale:             cycle.DefaultLocale,
		},
		Content: ContentConfig{
			Source: SourceEmbedded,
			S3: S3Config{
				Key: "cycle/library.yaml",
			},
			Postgres: PostgresConfig{
				MaxConns: 2,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		if c.HTTP.RateLimit.Valkey.Enabled && strings.TrimSpace(c.HTTP.RateLimit.Valkey.Addr) == "" {
			return errors.New("http.rateLimit.valkey.addr cannot be empty when valkey is enabled")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if n := c.Cycle.DefaultCycleLength; n < cycle.MinCycleLength || n > cycle.MaxCycleLength {
		return fmt.Errorf("cycle.defaultCycleLength must be between %d and %d", cycle.MinCycleLength, cycle.MaxCycleLength)
	}
	if n := c.Cycle.DefaultMensesDays; n < cycle.MinMensesDays || n > cycle.MaxMensesDays {
		return fmt.Errorf("cycle.defaultMensesDays must be between %d and %d", cycle.MinMensesDays, cycle.MaxMensesDays)
	}
	if strings.TrimSpace(c.Cycle.Locale) == "" {
		return errors.New("cycle.locale cannot be empty")
	}
	switch c.Content.Source {
	case SourceEmbedded:
	case SourceFile:
		if strings.TrimSpace(c.Content.Path) == "" {
			return errors.New("content.path cannot be empty when content.source is file")
		}
	case SourceS3:
		if strings.TrimSpace(c.Content.S3.Endpoint) == "" || strings.TrimSpace(c.Content.S3.Bucket) == "" {
			return errors.New("content.s3.endpoint and content.s3.bucket are required when content.source is s3")
		}
		if strings.TrimSpace(c.Content.S3.Key) == "" {
			return errors.New("content.s3.key cannot be empty")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Content.Postgres.DSN) == "" {
			return errors.New("content.postgres.dsn cannot be empty when content.source is postgres")
		}
	default:
		return fmt.Errorf("content.source %q is not one of embedded, file, s3, postgres", c.Content.Source)
	}
	return nil
}
