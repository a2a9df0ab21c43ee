package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/research-tracker/internal/auth"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/middleware"
	"github.com/hongminglow/research-tracker/internal/storage/postgres"
)

// TestAuthIntegration registers, logs in and records a patent against a live Postgres.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "true" {
		t.Skip("set RUN_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := mustGetEnv(t, "DATABASE_URL")

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(mustGetEnv(t, "JWT_SECRET"), "research-tracker", time.Hour)
	logger := logging.Discard()

	mux := http.NewServeMux()
	NewAuthHandler(store.Users(), tokens, logger).Register(mux)
	NewPatentHandler(store.Patents(), logger).Register(mux, middleware.Authenticate(tokens))

	ts := httptest.NewServer(mux)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	status, _ := postJSON(t, ts.URL+"/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
		"role":     "user",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d", status)
	}

	status, body := postJSON(t, ts.URL+"/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}
	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if strings.TrimSpace(login.Token) == "" || login.Username != username {
		t.Fatalf("unexpected login response: %s", body)
	}

	status, body = postJSON(t, ts.URL+"/patents/add", login.Token, map[string]string{
		"title":       "Integration widget",
		"description": "created by the integration test",
		"date":        "2024-01-05",
	})
	if status != http.StatusCreated {
		t.Fatalf("add patent status = %d: %s", status, body)
	}

	t.Logf("registered %s, logged in and created a patent: %s", username, body)
}

func postJSON(t *testing.T, url, token string, payload any) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
