package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dillweed/terminal-chat/iox"
)

// DefaultBaseURL is the hosted API endpoint used when no override is set.
const DefaultBaseURL = "https://api.openai.com/v1"

// maxErrorBody bounds how much of an error response body is attached to a
// StatusError.
const maxErrorBody = 8 * 1024

// Config configures a Client.
type Config struct {
	// APIKey is the bearer token. Required.
	APIKey string
	// BaseURL overrides DefaultBaseURL when set.
	BaseURL string
	// HTTPClient overrides the default client when set (tests).
	HTTPClient *http.Client
}

// Client issues streaming requests.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No overall timeout: the stream stays open as long as the server
		// keeps sending. Hung connections are left to process supervision.
		httpClient = &http.Client{Timeout: 0}
	}
	return &Client{apiKey: cfg.APIKey, baseURL: base, http: httpClient}
}

// Stream sends req and returns the response body carrying the SSE stream.
// The caller owns closing the body.
func (c *Client) Stream(ctx context.Context, req Request) (io.ReadCloser, error) {
	body, err := json.Marshal(buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		iox.DiscardClose(resp.Body)
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(errBody)),
		}
	}

	return resp.Body, nil
}
