// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"bookgateway/internal/httpx"
	"bookgateway/internal/platform/outbound"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	LogLevel string

	Books   outbound.Descriptor
	Authors outbound.Descriptor
	Search  outbound.Descriptor

	OutboundRPS        float64
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	MaxRequestBytes    int64
	EnableHSTS         bool
	TrustedProxies     []netip.Prefix
}

// LoadEnvFiles reads .env and .env.local when present. Variables already set in the
// environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment.
func Load() (Config, error) {
	timeoutSeconds, err := getFloat("BACKEND_TIMEOUT_SECONDS", outbound.DefaultTimeout.Seconds())
	if err != nil {
		return Config{}, err
	}
	timeout := time.Duration(timeoutSeconds * float64(time.Second))

	cfg := Config{
		Addr:     getEnv("APP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Books: outbound.Descriptor{
			Name:    "books",
			BaseURI: os.Getenv("BOOKS_SERVICE_BASE_URI"),
			Secret:  os.Getenv("BOOKS_SERVICE_SECRET"),
			Timeout: timeout,
		},
		Authors: outbound.Descriptor{
			Name:    "authors",
			BaseURI: os.Getenv("AUTHORS_SERVICE_BASE_URI"),
			Secret:  os.Getenv("AUTHORS_SERVICE_SECRET"),
			Timeout: timeout,
		},
		Search: outbound.Descriptor{
			Name:    "search",
			BaseURI: os.Getenv("SEARCH_SERVICE_BASE_URI"),
			Secret:  os.Getenv("SEARCH_SERVICE_SECRET"),
			Timeout: timeout,
		},
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EnableHSTS:         os.Getenv("ENABLE_HSTS") == "true",
	}

	if cfg.OutboundRPS, err = getFloat("OUTBOUND_RPS", 0); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 20); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 40); err != nil {
		return Config{}, err
	}
	maxBytes, err := getInt("MAX_REQUEST_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxRequestBytes = int64(maxBytes)

	if cfg.TrustedProxies, err = httpx.ParseTrustedProxies(splitList(os.Getenv("TRUSTED_PROXIES"))); err != nil {
		return Config{}, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	return cfg, nil
}

var ErrMissingBackend = errors.New("backend base uri is required")

// Require reports every named backend ("books", "authors", "search") that has no base URI.
func (c Config) Require(names ...string) error {
	var errs []error
	for _, name := range names {
		var d outbound.Descriptor
		switch name {
		case "books":
			d = c.Books
		case "authors":
			d = c.Authors
		case "search":
			d = c.Search
		default:
			errs = append(errs, fmt.Errorf("unknown backend %q", name))
			continue
		}
		if d.BaseURI == "" {
			errs = append(errs, fmt.Errorf("%w: set %s_SERVICE_BASE_URI", ErrMissingBackend, strings.ToUpper(name)))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
