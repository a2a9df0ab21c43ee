package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MemoryDatabaseURL selects the in-memory store instead of Postgres.
const MemoryDatabaseURL = "memory"

const (
	defaultPatentSearchURL = "https://developer.uspto.gov/ibd-api/v1/application/publications"
	defaultCORSOrigin      = "http://localhost:5173"
)

// Config holds runtime configuration sourced from env vars and flags.
type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	JWTIssuer           string
	JWTTTL              time.Duration
	CORSOrigins         []string
	PatentSearchURL     string
	PatentSearchTimeout time.Duration
	LogLevel            string
	LogFormat           string
}

// Load reads configuration from the environment, overlays command-line flags
// from args, and performs minimal validation.
func Load(args []string) (Config, error) {
	cfg := fromEnv()
	if err := parseFlags(&cfg, args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, errors.New("token lifetime must be positive")
	}

	return cfg, nil
}

func fromEnv() Config {
	return Config{
		Port:                fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:           fallback(os.Getenv("JWT_ISSUER"), "research-tracker"),
		JWTTTL:              minutes(os.Getenv("JWT_TTL_MINUTES"), 60),
		CORSOrigins:         parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), defaultCORSOrigin)),
		PatentSearchURL:     fallback(os.Getenv("PATENT_SEARCH_URL"), defaultPatentSearchURL),
		PatentSearchTimeout: seconds(os.Getenv("PATENT_SEARCH_TIMEOUT_SECONDS"), 10),
		LogLevel:            fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:           fallback(os.Getenv("LOG_FORMAT"), "json"),
	}
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func minutes(value string, def int) time.Duration {
	return time.Duration(positiveInt(value, def)) * time.Minute
}

func seconds(value string, def int) time.Duration {
	return time.Duration(positiveInt(value, def)) * time.Second
}

func positiveInt(value string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
