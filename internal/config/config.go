package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ErrMissingEnv is returned when a mandatory environment variable is unset or blank.
var ErrMissingEnv = errors.New("required environment variable is not set")

const (
	envWebhookURL   = "WEBHOOK_URL"
	envPlacesAPIKey = "PLACES_API_KEY"
)

// LoggingConfig controls the slog handler built at startup.
type LoggingConfig struct {
	Level  string
	Format string
}

// Config holds runtime configuration shared across the application.
// It is loaded once and passed by value; nothing reads the environment after Load.
type Config struct {
	Addr           string
	WebhookURL     string
	PlacesAPIKey   string
	AllowedOrigins []string
	Logging        LoggingConfig
}

// Load reads environment variables and returns a fully populated Config.
func Load() (Config, error) {
	webhookURL, err := requireEnv(envWebhookURL)
	if err != nil {
		return Config{}, err
	}
	if err := validateWebhookURL(webhookURL); err != nil {
		return Config{}, err
	}

	apiKey, err := requireEnv(envPlacesAPIKey)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Addr:           envOrDefault("HTTP_ADDR", ":8080"),
		WebhookURL:     webhookURL,
		PlacesAPIKey:   apiKey,
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		Logging: LoggingConfig{
			Level:  envOrDefault("LOG_LEVEL", "info"),
			Format: envOrDefault("LOG_FORMAT", "text"),
		},
	}, nil
}

func requireEnv(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%s: %w", key, ErrMissingEnv)
	}
	return v, nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", envWebhookURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL", envWebhookURL)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
