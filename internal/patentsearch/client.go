// Package patentsearch proxies patent-number lookups to the upstream
// publication search API.
package patentsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyQuery is returned when Search is called without a patent number.
var ErrEmptyQuery = errors.New("patent number is required")

const maxBodyBytes = 4 << 20

// UpstreamError describes a failed upstream call. StatusCode is zero for
// transport failures.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("patent search upstream: status %d: %s", e.StatusCode, e.Message)
	}
	return "patent search upstream: " + e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client calls the upstream search endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Search returns the upstream JSON body untouched.
func (c *Client) Search(ctx context.Context, patentNumber string) (json.RawMessage, error) {
	patentNumber = strings.TrimSpace(patentNumber)
	if patentNumber == "" {
		return nil, ErrEmptyQuery
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	q.Set("searchText", patentNumber)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		}
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "upstream returned invalid JSON"}
	}
	return json.RawMessage(body), nil
}
