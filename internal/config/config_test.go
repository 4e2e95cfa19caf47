package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRACKER_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8000" || cfg.DBPath != "data/tracker.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.Secret != InsecureSessionSecret || !cfg.Session.Secure || cfg.Session.SameSite != "none" {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"*"}) {
		t.Fatalf("unexpected CORS defaults: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", cfg.SlogLevel())
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Fatalf("expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRACKER_CONFIG", "")
	t.Setenv("TRACKER_ADDR", ":9999")
	t.Setenv("TRACKER_SESSION_SECRET", "from-env")
	t.Setenv("TRACKER_SESSION_SECURE", "false")
	t.Setenv("TRACKER_CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRACKER_LOG_LEVEL", "debug")
	t.Setenv("TRACKER_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Session.Secret != "from-env" || cfg.Session.Secure {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
	if !reflect.DeepEqual(cfg.TrustedProxies, []string{"10.0.0.0/8", "192.168.1.1"}) {
		t.Fatalf("unexpected trusted proxies: %v", cfg.TrustedProxies)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	content := "db_path: /tmp/x.db\nsession:\n  same_site: lax\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TRACKER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.Session.SameSite != "lax" {
		t.Fatalf("file not applied: %+v", cfg)
	}
}

func TestLoad_RejectsInvalidSameSite(t *testing.T) {
	t.Setenv("TRACKER_CONFIG", "")
	t.Setenv("TRACKER_SESSION_SAME_SITE", "sometimes")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid same_site")
	}
}
