package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":9091" {
		t.Fatalf("HTTPAddr default: %v", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("ShutdownTimeout default: %v", cfg.ShutdownTimeout)
	}
	if cfg.BackendBaseURL != "" {
		t.Fatalf("BackendBaseURL default should be empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8000")
	t.Setenv("SHUTDOWN_TIMEOUT", "10")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("BACKEND_BASE_URL", "https://app.example.com")

	cfg := Load()
	if cfg.HTTPAddr != ":8000" {
		t.Fatalf("HTTPAddr override: %v", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout override: %v", cfg.ShutdownTimeout)
	}
	if !cfg.TracingEnable {
		t.Fatalf("TracingEnable override")
	}
	if cfg.BackendBaseURL != "https://app.example.com" {
		t.Fatalf("BackendBaseURL override: %v", cfg.BackendBaseURL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "abc")
	t.Setenv("TRACING_ENABLED", "nope")
	cfg := Load()
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("invalid duration should fall back: %v", cfg.ShutdownTimeout)
	}
	if cfg.TracingEnable {
		t.Fatalf("invalid bool should fall back")
	}
}
