package config

import (
	"context"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PARLEY_API_URL", "")
	t.Setenv("PARLEY_LOG_LEVEL", "")
	t.Setenv("PARLEY_DATA_DIR", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, "http://localhost:8000")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if !strings.HasSuffix(cfg.DataDir, ".parley") {
		t.Errorf("DataDir = %q, want it to end in .parley", cfg.DataDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PARLEY_API_URL", "https://chat.example.com")
	t.Setenv("PARLEY_LOG_LEVEL", "debug")
	t.Setenv("PARLEY_DATA_DIR", "/tmp/parley-test")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://chat.example.com" {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, "https://chat.example.com")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.DataDir != "/tmp/parley-test" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/parley-test")
	}
}
