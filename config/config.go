package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DEFAULT_BASE_URL        = "http://localhost:8000"
	DEFAULT_ADDR            = ":8000"
	DEFAULT_ALLOWED_ORIGINS = "http://localhost:3000,http://127.0.0.1:3000"
	DEFAULT_MAX_TEXT_LENGTH = 1000
	DEFAULT_HEALTH_INTERVAL = 15 * time.Second
)

// ClientConfig configures the reflection client and its view of the emotion API.
type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	HealthInterval time.Duration
}

// ServerConfig configures the emotion analysis service.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	MaxTextLength  int
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getList(key, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// defaultTimeout mirrors the production/dev split used for the other HTTP clients.
func defaultTimeout() time.Duration {
	if AppEnv() == "production" {
		return 10 * time.Second
	}
	return 60 * time.Second
}

// LogLevel reads LOG_LEVEL, defaulting to info.
func LogLevel() slog.Level {
	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func GetClientConfig() (ClientConfig, error) {
	base := strings.TrimRight(getEnv("EMOTION_API_BASE_URL", DEFAULT_BASE_URL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("invalid EMOTION_API_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ClientConfig{}, fmt.Errorf("invalid EMOTION_API_BASE_URL: unsupported scheme %q", u.Scheme)
	}

	timeout, err := getDuration("EMOTION_API_TIMEOUT", defaultTimeout())
	if err != nil {
		return ClientConfig{}, err
	}

	interval, err := getDuration("EMOTION_API_HEALTH_INTERVAL", DEFAULT_HEALTH_INTERVAL)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		BaseURL:        base,
		Timeout:        timeout,
		HealthInterval: interval,
	}, nil
}

func GetServerConfig() (ServerConfig, error) {
	maxLen := DEFAULT_MAX_TEXT_LENGTH
	if raw := getEnv("EMOTION_API_MAX_TEXT_LENGTH", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return ServerConfig{}, fmt.Errorf("invalid EMOTION_API_MAX_TEXT_LENGTH: %q", raw)
		}
		maxLen = n
	}

	return ServerConfig{
		Addr:           getEnv("EMOTION_API_ADDR", DEFAULT_ADDR),
		AllowedOrigins: getList("EMOTION_API_ALLOWED_ORIGINS", DEFAULT_ALLOWED_ORIGINS),
		MaxTextLength:  maxLen,
	}, nil
}
