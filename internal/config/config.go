package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, read from LSACC_* environment variables
type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"4242"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Seed admin, created on start-up when missing
	AdminName     string `env:"ADMIN_NAME" envDefault:"maex"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminColour   string `env:"ADMIN_COLOUR" envDefault:"#CAFFEE"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

const prefix = "LSACC_"

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	opts.Prefix = prefix

	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("%sREDIS_URL required when %sSTORAGE_TYPE=redis", prefix, prefix)
		}
	default:
		return fmt.Errorf("invalid %sSTORAGE_TYPE %q: must be 'memory' or 'redis'", prefix, c.StorageType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid %sPORT %d", prefix, c.Port)
	}
	return nil
}

// SeedAdmin reports whether an admin account should be created on start-up
func (c Config) SeedAdmin() bool {
	return c.AdminName != "" && c.AdminPassword != ""
}
