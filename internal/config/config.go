package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"docview/internal/pipeline"
)

// ViewerConfig bounds the files the viewer accepts and how long one attempt
// may take.
type ViewerConfig struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
	ReadTimeoutSec    int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	AppHost        string
	Port           string
	Timezone       string
	LogLevel       string
	BodyLimitBytes int
	MetricsEnabled bool
	Viewer         ViewerConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	def := pipeline.DefaultLimits()
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// Above the file ceiling so oversize uploads reach the validator.
		BodyLimitBytes: getEnvInt("HTTP_BODY_LIMIT", 64*1024*1024),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		Viewer: ViewerConfig{
			MaxFileSizeBytes:  getEnvInt64("VIEWER_MAX_FILE_SIZE", def.MaxSizeBytes),
			AllowedExtensions: getEnvList("VIEWER_ALLOWED_EXTENSIONS", def.AllowedExtensions),
			ReadTimeoutSec:    getEnvInt("VIEWER_READ_TIMEOUT_SEC", 30),
		},
	}
}

// Limits is the validator configuration.
func (c *AppConfig) Limits() pipeline.Limits {
	return pipeline.Limits{
		MaxSizeBytes:      c.Viewer.MaxFileSizeBytes,
		AllowedExtensions: c.Viewer.AllowedExtensions,
	}
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ReadTimeout is the per-attempt deadline; zero disables it.
func (c *AppConfig) ReadTimeout() time.Duration {
	if c.Viewer.ReadTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.Viewer.ReadTimeoutSec) * time.Second
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
