package config

import (
	"fmt"
	"time"

	"github.com/rezkam/listly/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	HTTP            HTTPConfig
	Storage         StorageConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"LISTLY_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
// Zero values fall back to the HTTP server defaults.
type HTTPConfig struct {
	Host              string        `env:"LISTLY_HTTP_HOST"`
	Port              string        `env:"LISTLY_HTTP_PORT" default:"8080"`
	ReadTimeout       time.Duration `env:"LISTLY_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"LISTLY_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"LISTLY_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"LISTLY_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"LISTLY_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"LISTLY_HTTP_MAX_BODY_BYTES"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"LISTLY_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"listly"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}

// LoadStorageConfig loads only the storage section, for tools that never serve HTTP.
func LoadStorageConfig() (*StorageConfig, error) {
	cfg := &StorageConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	return cfg, nil
}
