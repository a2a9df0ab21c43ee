package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES",
		"CORS_ALLOWED_ORIGINS", "PATENT_SEARCH_URL", "PATENT_SEARCH_TIMEOUT_SECONDS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/rt")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(nil)
	require.NoError(t, err)

	want := Config{
		Port:                "8080",
		DatabaseURL:         "postgres://localhost/rt",
		JWTSecret:           "secret",
		JWTIssuer:           "research-tracker",
		JWTTTL:              time.Hour,
		CORSOrigins:         []string{"http://localhost:5173"},
		PatentSearchURL:     defaultPatentSearchURL,
		PatentSearchTimeout: 10 * time.Second,
		LogLevel:            "info",
		LogFormat:           "json",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
	assert.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("PATENT_SEARCH_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.PatentSearchTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_TTL_MINUTES", "-5")
	t.Setenv("PATENT_SEARCH_TIMEOUT_SECONDS", "abc")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.PatentSearchTimeout)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "env-db")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load([]string{"-p", "9090", "-d", "flag-db", "-s", "flag-secret", "-t", "5"})
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "flag-db", cfg.DatabaseURL)
	assert.Equal(t, "flag-secret", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.JWTTTL)
}

func TestLoad_RequiredValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{name: "missing database", env: map[string]string{"JWT_SECRET": "s"}, want: "DATABASE_URL is required"},
		{name: "missing secret", env: map[string]string{"DATABASE_URL": "db"}, want: "JWT_SECRET is required"},
		{name: "zero ttl flag", env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "s"}, args: []string{"-t", "0"}, want: "token lifetime must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestLoad_UnknownFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "s")

	_, err := Load([]string{"-nope"})
	assert.Error(t, err)
}

func TestParseCSV_EmptyFallsBackToWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCSV(" , "))
}
