package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired sets the minimum environment for Load to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SOURCES_BASE_URL", "https://data.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 8*time.Second {
		t.Errorf("expected default fetch timeout 8s, got %s", cfg.Fetch.Timeout)
	}
	if cfg.Sources.TextCatalog != "/data/LP_text_master.csv" {
		t.Errorf("unexpected default text catalog path: %q", cfg.Sources.TextCatalog)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging defaults: %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_RequiredBaseURL(t *testing.T) {
	t.Setenv("SOURCES_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SOURCES_BASE_URL is unset")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("SOURCE_SPEAKERS", "/data/custom_speakers.csv")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 2*time.Second {
		t.Errorf("expected fetch timeout 2s, got %s", cfg.Fetch.Timeout)
	}
	if cfg.Sources.Speakers != "/data/custom_speakers.csv" {
		t.Errorf("expected overridden speakers path, got %q", cfg.Sources.Speakers)
	}
	if len(cfg.Server.TrustedProxies) != 2 {
		t.Errorf("expected 2 trusted proxies, got %v", cfg.Server.TrustedProxies)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestValidate_BadValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		wants string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"bad base url", map[string]string{"SOURCES_BASE_URL": "ftp://x"}, "SOURCES_BASE_URL"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wants) {
				t.Errorf("expected error mentioning %s, got %v", tt.wants, err)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := c.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("expected 127.0.0.1:8080, got %q", got)
	}

	c.Host = ""
	if got := c.Addr(); got != ":8080" {
		t.Errorf("expected :8080, got %q", got)
	}
}

func TestSourcesConfig_URL(t *testing.T) {
	c := SourcesConfig{BaseURL: "https://data.example.com/"}

	if got := c.URL("/data/x.csv"); got != "https://data.example.com/data/x.csv" {
		t.Errorf("unexpected joined URL: %q", got)
	}
	if got := c.URL("data/x.csv"); got != "https://data.example.com/data/x.csv" {
		t.Errorf("unexpected joined URL: %q", got)
	}
	if got := c.URL("https://cdn.example.com/x.csv"); got != "https://cdn.example.com/x.csv" {
		t.Errorf("absolute URL must pass through, got %q", got)
	}
}
