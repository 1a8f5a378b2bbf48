package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.BanksURL != "https://api.vietqr.io/v2/banks" {
		t.Fatalf("BanksURL = %q", cfg.BanksURL)
	}
	if cfg.QRImageHost != "img.vietqr.io" {
		t.Fatalf("QRImageHost = %q", cfg.QRImageHost)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PROJECTID", "luongnho-dev")
	t.Setenv("LOGLEVEL", "debug")
	t.Setenv("QRIMAGEHOST", "qr.example.test")
	t.Setenv("HTTPTIMEOUT", "3s")
	t.Setenv("ALLOWEDORIGINS", "https://a.test, https://b.test")

	cfg := New()

	if cfg.ProjectID != "luongnho-dev" || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.QRImageHost != "qr.example.test" {
		t.Fatalf("QRImageHost = %q", cfg.QRImageHost)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.test" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}
