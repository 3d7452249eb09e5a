package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/todo-api/internal/common/config"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todo")
	t.Setenv("JWT_SECRET", validSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "5000" {
		t.Errorf("expected port 5000, got %s", cfg.HTTPPort)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
	if !cfg.MigrateOnStart {
		t.Error("expected migrations on start by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todo")
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("PORT", "8080")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("MIGRATE_ON_START", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.RequestTimeout != 2*time.Second || cfg.MigrateOnStart {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", validSecret)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todo")
	t.Setenv("JWT_SECRET", "short")

	_, err := config.Load()
	if !errors.Is(err, config.ErrInvalidJWTSecret) {
		t.Fatalf("expected ErrInvalidJWTSecret, got %v", err)
	}
}
