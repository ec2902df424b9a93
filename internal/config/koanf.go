// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/torque-lite-pro/config.yaml",
	"/etc/torque-lite-pro/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from defaults, the first config file
// found and the environment, then validates it.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit file path. An empty path skips the
// file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processAccounts(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated environment values for the
// paths that hold slices. Values already loaded as slices from YAML are
// left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		if err := k.Set(path, splitList(strVal)); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// accountsEnvKey holds the raw TORQUE_ACCOUNTS value until
// processAccounts expands it.
const accountsEnvKey = "torque_accounts"

// processAccounts replaces the accounts list with the parsed
// TORQUE_ACCOUNTS value when it is set.
func processAccounts(k *koanf.Koanf) error {
	raw := k.String(accountsEnvKey)
	k.Delete(accountsEnvKey)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	accounts, err := ParseAccounts(raw)
	if err != nil {
		return err
	}
	list := make([]any, 0, len(accounts))
	for _, a := range accounts {
		list = append(list, map[string]any{
			"email":    a.Email,
			"language": a.Language,
			"imperial": a.Imperial,
		})
	}
	if err := k.Set("accounts", list); err != nil {
		return fmt.Errorf("failed to set accounts: %w", err)
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"ingest_path":           "ingest.path",
	"ingest_max_body_bytes": "ingest.max_body_bytes",

	"session_ttl_seconds": "session.ttl_seconds",
	"max_sessions":        "session.capacity",
	"sweep_interval":      "session.sweep_interval",

	"torque_accounts": accountsEnvKey,

	"ingest_token":      "security.ingest_token",
	"cors_origins":      "security.cors_origins",
	"rate_limit_ingest": "security.rate_limit_ingest",
	"rate_limit_read":   "security.rate_limit_read",
	"rate_limit_window": "security.rate_limit_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"otel_enabled":                "telemetry.enabled",
	"otel_service_name":           "telemetry.service_name",
	"otel_exporter":               "telemetry.exporter",
	"otel_exporter_otlp_endpoint": "telemetry.endpoint",
	"otel_sampling_rate":          "telemetry.sampling_rate",
	"environment":                 "telemetry.environment",

	"notify_buffer":            "notifications.buffer",
	"notify_subscriber_buffer": "notifications.subscriber_buffer",
}

// WatchConfigFile calls onChange with a freshly loaded configuration
// every time path is written. The returned stop function ends the watch.
func WatchConfigFile(path string, onChange func(*Config, error)) (stop func() error, err error) {
	provider := file.Provider(path)
	err = provider.Watch(func(_ interface{}, werr error) {
		if werr != nil {
			onChange(nil, werr)
			return
		}
		onChange(load(path))
	})
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return provider.Unwatch, nil
}
