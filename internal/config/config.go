package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// API
	Environment  domain.Environment
	Token        string
	ClientID     string
	CustomerCode string
	JWKURL       string
	Scopes       []domain.Scope

	// Webhook receiver
	Port     int
	LogLevel string

	// HTTP client
	HTTPTimeout    time.Duration
	ConnectTimeout time.Duration

	// Resilience (CLI and receiver only; the client itself never retries)
	MaxRetries      int
	InitialBackoff  time.Duration
	MaxConcurrency  int
	BreakerFailures int

	// Webhook replay guard
	ReplayTTL time.Duration

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
// In the sandbox a missing token falls back to the fixed sandbox token.
func Load() (*Config, error) {
	env := domain.ParseEnvironment(strings.ToUpper(getEnv("TOCHKA_ENV", "SANDBOX")))

	token := getEnv("TOCHKA_TOKEN", "")
	if token == "" && env == domain.Sandbox {
		token = domain.SandboxToken
	}

	scopes, err := parseScopes(getEnv("TOCHKA_SCOPES", ""))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:  env,
		Token:        token,
		ClientID:     getEnv("TOCHKA_CLIENT_ID", ""),
		CustomerCode: getEnv("CUSTOMER_CODE", ""),
		JWKURL:       getEnv("TOCHKA_JWK_URL", ""),
		Scopes:       scopes,

		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPTimeout:    getEnvDuration("HTTP_TIMEOUT", 20*time.Second),
		ConnectTimeout: getEnvDuration("CONNECT_TIMEOUT", 5*time.Second),

		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		InitialBackoff:  getEnvDuration("INITIAL_BACKOFF", 200*time.Millisecond),
		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 50),
		BreakerFailures: getEnvInt("BREAKER_FAILURES", 5),

		ReplayTTL: getEnvDuration("REPLAY_TTL", 24*time.Hour),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}, nil
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	if c.Token == "" {
		return &domain.ErrConfig{Message: "TOCHKA_TOKEN is required in PRODUCTION"}
	}
	if c.Environment == domain.Production && c.Token == domain.SandboxToken {
		return &domain.ErrConfig{Message: "the sandbox token cannot be used in PRODUCTION"}
	}
	if c.CustomerCode != "" && len(c.CustomerCode) != 9 {
		return &domain.ErrConfig{Message: fmt.Sprintf("CUSTOMER_CODE must be 9 characters, got %d", len(c.CustomerCode))}
	}
	if c.HTTPTimeout <= 0 || c.ConnectTimeout <= 0 {
		return &domain.ErrConfig{Message: "HTTP_TIMEOUT and CONNECT_TIMEOUT must be positive"}
	}
	return nil
}

// parseScopes reads a comma separated list of permission names.
func parseScopes(raw string) ([]domain.Scope, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var scopes []domain.Scope
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		s, err := domain.ParseScope(part)
		if err != nil {
			return nil, &domain.ErrConfig{Message: fmt.Sprintf("TOCHKA_SCOPES: %v", err)}
		}
		scopes = append(scopes, s)
	}
	return scopes, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
