// Package config provides centralized configuration management for the
// landing page service. It loads configuration from environment variables
// with sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Sources SourcesConfig
	Fetch   FetchConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// SourcesConfig names the published CSV masters the page is built from.
// Relative paths are resolved against BaseURL; absolute URLs are used as-is.
type SourcesConfig struct {
	// BaseURL is the location the master spreadsheets publish to (required)
	BaseURL string `env:"SOURCES_BASE_URL" required:"true"`

	// TextCatalog is the display-text master (default: /data/LP_text_master.csv)
	TextCatalog string `env:"SOURCE_TEXT_CATALOG" default:"/data/LP_text_master.csv"`

	// Speakers is the speakers master (default: /data/speakers_master.csv)
	Speakers string `env:"SOURCE_SPEAKERS" default:"/data/speakers_master.csv"`

	// Schedule is the schedule master (default: /data/schedule_master.csv)
	Schedule string `env:"SOURCE_SCHEDULE" default:"/data/schedule_master.csv"`

	// Assets is the asset manifest (default: /data/assets_full.csv)
	Assets string `env:"SOURCE_ASSETS" default:"/data/assets_full.csv"`
}

// FetchConfig holds resource fetch settings.
type FetchConfig struct {
	// Timeout bounds a single source fetch (default: 8s)
	Timeout time.Duration `env:"FETCH_TIMEOUT" default:"8s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// URL resolves a source path against the base URL.
func (c *SourcesConfig) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
