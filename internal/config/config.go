// Package config loads the API settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jcmexdev/warung-orders/internal/pkg/telemetry"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	// Empty RedisAddr disables idempotency replay.
	RedisAddr      string
	IdempotencyTTL time.Duration

	// Empty SQLitePath disables the placement log.
	SQLitePath string

	// Empty RabbitMQURL disables order events.
	RabbitMQURL      string
	RabbitMQExchange string

	ServiceName  string
	Environment  string
	OTLPEndpoint string
	LogLevel     slog.Level

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":"+getEnv("PORT", "3000")),
		GRPCAddr:         getEnv("GRPC_ADDR", ":9090"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		SQLitePath:       os.Getenv("SQLITE_PATH"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "warung.orders"),
		ServiceName:      getEnv("OTEL_SERVICE_NAME", "warung-api"),
		Environment:      getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.LogLevel, err = telemetry.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if cfg.IdempotencyTTL, err = getDuration("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative, got %s", key, raw)
	}
	return d, nil
}
