package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
app:
  port: 9090
  gin_mode: release
  demo_mode: true

database:
  driver: sqlite
  dsn: "file:test.db"

redis:
  addr: "localhost:6380"
  db: 2

session:
  ttl: "72h"

jwt:
  secret: "file-secret"
  issuer: "hmsauth-test"
  ttl: "1h"

otp:
  mode: random
  length: 8
  ttl: "2m"

casbin:
  model_path: "config/casbin_model.conf"

trial:
  deadline: "2026-09-01T00:00:00Z"
  warning_window: "24h"

log:
  level: warn
  format: json
`

func writeTestConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HMSAUTH_CONFIG", path)
}

func TestLoad(t *testing.T) {
	writeTestConfig(t, testYAML)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("port = %s", cfg.Port)
	}
	if !cfg.DemoMode {
		t.Error("demo mode not set")
	}
	if cfg.DBDriver != "sqlite" || cfg.DSN != "file:test.db" {
		t.Errorf("database = %s %s", cfg.DBDriver, cfg.DSN)
	}
	if cfg.SessionTTL != 72*time.Hour {
		t.Errorf("session ttl = %s", cfg.SessionTTL)
	}
	if cfg.JWTTTL != time.Hour || cfg.JWTIssuer != "hmsauth-test" {
		t.Errorf("jwt = %s %s", cfg.JWTTTL, cfg.JWTIssuer)
	}
	if cfg.OTPMode != "random" || cfg.OTPLength != 8 || cfg.OTPTTL != 2*time.Minute {
		t.Errorf("otp = %s %d %s", cfg.OTPMode, cfg.OTPLength, cfg.OTPTTL)
	}
	wantDeadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.TrialDeadline.Equal(wantDeadline) {
		t.Errorf("deadline = %s", cfg.TrialDeadline)
	}
	if cfg.TrialWarning != 24*time.Hour {
		t.Errorf("warning window = %s", cfg.TrialWarning)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "json" {
		t.Errorf("log = %s %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	writeTestConfig(t, testYAML)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("jwt secret = %s", cfg.JWTSecret)
	}
	if cfg.RedisAddr != "redis.internal:6379" {
		t.Errorf("redis addr = %s", cfg.RedisAddr)
	}
}

func TestLoad_Defaults(t *testing.T) {
	writeTestConfig(t, `
app:
  port: 8080
database:
  driver: sqlite
  dsn: "file:x.db"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionTTL != 0 {
		t.Errorf("session ttl default = %s, want 0", cfg.SessionTTL)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("jwt ttl default = %s", cfg.JWTTTL)
	}
	if cfg.TrialWarning != 48*time.Hour {
		t.Errorf("warning default = %s", cfg.TrialWarning)
	}
	// Empty deadline starts a trial window in the future.
	if !cfg.TrialDeadline.After(time.Now()) {
		t.Errorf("default deadline not in the future: %s", cfg.TrialDeadline)
	}
}

func TestLoad_BadDurations(t *testing.T) {
	writeTestConfig(t, `
app:
  port: 8080
session:
  ttl: "soon"
`)
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a bad duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("HMSAUTH_CONFIG", filepath.Join(t.TempDir(), "nope.yml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
