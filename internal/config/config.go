package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the support chat service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"support-chat"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"4000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DatabaseURL    string        `env:"DATABASE_URL,notEmpty"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	CacheKeyPrefix string        `env:"CACHE_KEY_PREFIX" envDefault:"chat:"`
	CacheOpTimeout time.Duration `env:"CACHE_OP_TIMEOUT" envDefault:"500ms"`

	// HistoryLimit bounds both the cached tail and the context window
	// handed to the model.
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"10"`

	ProviderAPIKey     string        `env:"PROVIDER_API_KEY,notEmpty"`
	ProviderBaseURL    string        `env:"PROVIDER_BASE_URL"`
	ProviderModel      string        `env:"PROVIDER_MODEL" envDefault:"llama-3.1-8b-instant"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
	ProviderMaxTokens  int           `env:"PROVIDER_MAX_TOKENS" envDefault:"300"`
	ProviderTemp       float64       `env:"PROVIDER_TEMPERATURE" envDefault:"0.2"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableSwagger bool   `env:"ENABLE_SWAGGER" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
