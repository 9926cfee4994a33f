package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DBHost != "localhost" {
		t.Fatalf("expected default db host localhost, got %q", cfg.DBHost)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.ServerPort)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_NAME", "pokertest")
	t.Setenv("SERVER_PORT", "9090")

	cfg := Load()

	if cfg.DBName != "pokertest" {
		t.Fatalf("expected db name pokertest, got %q", cfg.DBName)
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.ServerPort)
	}
}
