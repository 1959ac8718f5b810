package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shoplite")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Address())
	}
}

func TestLoadFailsWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shoplite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected load to fail without JWT_SECRET")
	}
}

func TestLoadFailsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected load to fail without DATABASE_URL")
	}
}

func TestLoadRejectsBadBcryptCost(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatalf("expected load to reject out-of-range bcrypt cost")
	}
}

func TestLoadParsesTokenTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h, got %v", cfg.TokenTTL)
	}
}
