package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/EldenRingDatabase/erdb-sub000/internal/correction"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ERDB_"

// Generator holds all configuration for the effect and attack power generator.
type Generator struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Input tables
	TablesPath  string `yaml:"tables_path"  env:"TABLES_PATH"`
	EffectsPath string `yaml:"effects_path" env:"EFFECTS_PATH"`
	MaxLevel    int    `yaml:"max_level"    env:"MAX_LEVEL"`

	// Batch evaluation
	Workers int `yaml:"workers" env:"WORKERS"` // 0 means GOMAXPROCS

	// Result store
	Persist  bool           `yaml:"persist"  env:"PERSIST"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname"   env:"NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultGenerator returns Generator config with sensible defaults.
func DefaultGenerator() Generator {
	return Generator{
		LogLevel:    "info",
		TablesPath:  "data/tables.yaml",
		EffectsPath: "data/effects.yaml",
		MaxLevel:    correction.DefaultMaxLevel,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "erdb",
			Password: "erdb",
			DBName:   "erdb",
			SSLMode:  "disable",
		},
	}
}

// LoadGenerator loads generator config from a YAML file and applies
// ERDB_* environment overrides on top.
// If the file doesn't exist, defaults are used.
func LoadGenerator(path string) (Generator, error) {
	cfg := DefaultGenerator()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.MaxLevel <= 0 {
		return cfg, fmt.Errorf("max_level must be positive, got %d", cfg.MaxLevel)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}
