package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AlibekovAA/todo-api/internal/common/constants"
)

var ErrInvalidJWTSecret = errors.New("JWT_SECRET must be at least 32 bytes")

type Config struct {
	HTTPPort       string        `env:"PORT" envDefault:"5000"`
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	LogDir         string        `env:"LOG_DIR"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"INFO"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := validateJWTSecret(cfg.JWTSecret); err != nil {
		return Config{}, err
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = constants.DefaultHTTPPort
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = constants.DefaultRequestTimeout
	}

	return cfg, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}
