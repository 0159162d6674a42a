// Package config loads the simulator configuration from YAML with a small
// set of environment overrides for deployment-specific settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// DataConfig points at the raw dataset and the processed materialization.
// Deleting the processed file invalidates the cache.
type DataConfig struct {
	RawPath       string `yaml:"raw_path"`
	ProcessedPath string `yaml:"processed_path"`
	ExportDir     string `yaml:"export_dir"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Host                string  `yaml:"host"`
	Port                int     `yaml:"port"`
	ReadTimeoutSeconds  int     `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int     `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int     `yaml:"idle_timeout_seconds"`
	RateLimitPerSecond  float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst      int     `yaml:"rate_limit_burst"`
}

// RedisConfig enables the snapshot cache when Addr is non-empty.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// PostgresConfig enables snapshot history persistence when DSN is non-empty.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Data: DataConfig{
			RawPath:       "data/raw/crypto_top1000_dataset.csv",
			ProcessedPath: "data/processed/crypto_equilibrium.csv",
			ExportDir:     "reports/metrics",
		},
		Server: ServerConfig{
			Host:                "127.0.0.1", // local-only by default
			Port:                8080,
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			IdleTimeoutSeconds:  60,
			RateLimitPerSecond:  25,
			RateLimitBurst:      50,
		},
		Redis: RedisConfig{
			TTLSeconds: 3600,
		},
		Postgres: PostgresConfig{
			TimeoutSeconds: 10,
		},
	}
}

// Load reads the YAML config at path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EQSIM_RAW_PATH"); v != "" {
		cfg.Data.RawPath = v
	}
	if v := os.Getenv("EQSIM_PROCESSED_PATH"); v != "" {
		cfg.Data.ProcessedPath = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}

// ReadTimeout converts the configured seconds to a duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout converts the configured seconds to a duration.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout converts the configured seconds to a duration.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// Addr is the host:port the server binds.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TTL converts the configured cache TTL to a duration.
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Timeout converts the configured statement timeout to a duration.
func (c PostgresConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
