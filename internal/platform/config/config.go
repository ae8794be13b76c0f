// Package config loads service configuration in three layers: struct
// defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix namespaces generic overrides: CMS_SERVER__ADDR -> server.addr.
const EnvPrefix = "CMS_"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Environment string         `koanf:"environment" validate:"oneof=development production"`
	Server      ServerConfig   `koanf:"server"`
	Source      SourceConfig   `koanf:"source"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Cache       CacheConfig    `koanf:"cache"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type SourceConfig struct {
	Kind    string `koanf:"kind" validate:"oneof=csv postgres"`
	CSVPath string `koanf:"csv_path" validate:"required_if=Kind csv"`
}

type PostgresConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type CacheConfig struct {
	TTL  time.Duration `koanf:"ttl" validate:"gt=0"`
	Size int           `koanf:"size" validate:"gt=0"`
}

func defaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Source: SourceConfig{
			Kind:    SourceCSV,
			CSVPath: "kolab_messages.csv",
		},
		Postgres: PostgresConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Cache: CacheConfig{
			TTL:  time.Hour,
			Size: 512,
		},
	}
}

// legacy names kept from the deployment scripts
var envMappings = map[string]string{
	"data_file":    "source.csv_path",
	"postgres_dsn": "postgres.dsn",
	"environment":  "environment",
}

// Load builds the configuration: defaults < file < environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Source.Kind == SourcePostgres && c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required when source.kind is %q", SourcePostgres)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps an environment variable to a koanf path; unknown
// variables map to "" and are ignored.
//
//	DATA_FILE          -> source.csv_path
//	CMS_CACHE__TTL     -> cache.ttl
//	CMS_SOURCE__KIND   -> source.kind
func envTransformFunc(key string) string {
	lower := strings.ToLower(key)
	if path, ok := envMappings[lower]; ok {
		return path
	}
	if !strings.HasPrefix(key, EnvPrefix) {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(lower, strings.ToLower(EnvPrefix)), "__", ".")
}
