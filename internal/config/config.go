// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete receiver configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Ingest        IngestConfig        `koanf:"ingest"`
	Session       SessionConfig       `koanf:"session"`
	Accounts      []AccountConfig     `koanf:"accounts" validate:"min=1,dive"`
	Security      SecurityConfig      `koanf:"security"`
	Logging       LoggingConfig       `koanf:"logging"`
	Telemetry     TelemetryConfig     `koanf:"telemetry"`
	Notifications NotificationsConfig `koanf:"notifications"`

	// File is the config file that was loaded, empty when none was.
	File string `koanf:"-"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IngestConfig holds the upload endpoint settings.
type IngestConfig struct {
	Path         string `koanf:"path" validate:"required,ingest_path"`
	MaxBodyBytes int64  `koanf:"max_body_bytes" validate:"min=1024,max=10485760"`
}

// SessionConfig bounds every account's session cache.
type SessionConfig struct {
	TTLSeconds    int           `koanf:"ttl_seconds" validate:"min=60,max=86400"`
	Capacity      int           `koanf:"capacity" validate:"min=10,max=1000"`
	SweepInterval time.Duration `koanf:"sweep_interval" validate:"gte=1s"`
}

// TTL returns TTLSeconds as a duration.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}

// AccountConfig is one Torque account.
type AccountConfig struct {
	Email    string `koanf:"email" validate:"required,email"`
	Language string `koanf:"language" validate:"oneof=en fr"`
	Imperial bool   `koanf:"imperial"`
}

// SecurityConfig holds access controls.
type SecurityConfig struct {
	// IngestToken protects uploads and diagnostics when set.
	IngestToken string `koanf:"ingest_token" validate:"omitempty,min=8"`

	CORSOrigins []string `koanf:"cors_origins" validate:"dive,required"`

	// RateLimitIngest and RateLimitRead are per-IP requests per
	// RateLimitWindow. Zero disables the limiter.
	RateLimitIngest int           `koanf:"rate_limit_ingest" validate:"min=0"`
	RateLimitRead   int           `koanf:"rate_limit_read" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gte=1s"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	ServiceName  string  `koanf:"service_name" validate:"required"`
	Environment  string  `koanf:"environment"`
	Exporter     string  `koanf:"exporter" validate:"oneof=grpc http"`
	Endpoint     string  `koanf:"endpoint" validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"gte=0,lte=1"`
}

// NotificationsConfig sizes the change-event buffers.
type NotificationsConfig struct {
	Buffer           int64         `koanf:"buffer" validate:"min=1"`
	SubscriberBuffer int           `koanf:"subscriber_buffer" validate:"min=1"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// defaultConfig returns every default. The file and the environment
// override it.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Ingest: IngestConfig{
			Path:         "/api/torque_pro",
			MaxBodyBytes: 64 << 10,
		},
		Session: SessionConfig{
			TTLSeconds:    1800,
			Capacity:      100,
			SweepInterval: time.Minute,
		},
		Security: SecurityConfig{
			RateLimitIngest: 600,
			RateLimitRead:   300,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName:  "torque-lite-pro",
			Environment:  "production",
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
		Notifications: NotificationsConfig{
			Buffer:           256,
			SubscriberBuffer: 64,
			FailureThreshold: 5,
			BreakerTimeout:   30 * time.Second,
		},
	}
}
