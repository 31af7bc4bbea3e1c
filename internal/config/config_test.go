package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NSS_JWT_SECRET", "test-secret")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database defaults = %s:%d, want localhost:5432", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Attendance.RefreshSeconds != 5 {
		t.Errorf("Attendance.RefreshSeconds = %d, want default 5", cfg.Attendance.RefreshSeconds)
	}
	if cfg.Attendance.TokenTTLSeconds != 30 {
		t.Errorf("Attendance.TokenTTLSeconds = %d, want default 30", cfg.Attendance.TokenTTLSeconds)
	}
	if cfg.JWT.Expiry != 24*time.Hour {
		t.Errorf("JWT.Expiry = %v, want 24h", cfg.JWT.Expiry)
	}
	if cfg.JWT.Issuer != "nss-backend" {
		t.Errorf("JWT.Issuer = %q, want nss-backend", cfg.JWT.Issuer)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NSS_JWT_SECRET", "test-secret")
	t.Setenv("NSS_SERVER_PORT", "9090")
	t.Setenv("NSS_DATABASE_PASSWORD", "hunter2")
	t.Setenv("NSS_ATTENDANCE_TOKEN_TTL_SECONDS", "60")
	t.Setenv("NSS_JWT_EXPIRY_HOURS", "1")

	cfg := Load()

	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("JWT.Secret = %q, want value from NSS_JWT_SECRET", cfg.JWT.Secret)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, env override should win over default", cfg.Server.Port)
	}
	if cfg.Database.Password != "hunter2" {
		t.Errorf("Database.Password = %q, want value from NSS_DATABASE_PASSWORD", cfg.Database.Password)
	}
	if cfg.Attendance.TokenTTLSeconds != 60 {
		t.Errorf("Attendance.TokenTTLSeconds = %d, want env override 60", cfg.Attendance.TokenTTLSeconds)
	}
	if cfg.JWT.Expiry != time.Hour {
		t.Errorf("JWT.Expiry = %v, want 1h from NSS_JWT_EXPIRY_HOURS", cfg.JWT.Expiry)
	}

	// Untouched keys keep their defaults
	if cfg.Attendance.RefreshSeconds != 5 {
		t.Errorf("Attendance.RefreshSeconds = %d, want default 5", cfg.Attendance.RefreshSeconds)
	}
}
