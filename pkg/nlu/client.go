package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPClient implements Client over HTTP
type HTTPClient struct {
	baseURL     string
	messagePath string
	httpClient  *http.Client
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// Config holds configuration for the NLU client
type Config struct {
	BaseURL     string
	MessagePath string        // Default: /api/chat/intent
	Timeout     time.Duration // Default: 0, no client-side limit beyond the context
}

// NewHTTPClient creates a new NLU HTTP client
func NewHTTPClient(config Config) *HTTPClient {
	if config.MessagePath == "" {
		config.MessagePath = "/api/chat/intent"
	}
	if !strings.HasPrefix(config.MessagePath, "/") {
		config.MessagePath = "/" + config.MessagePath
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &HTTPClient{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		messagePath: config.MessagePath,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

// Classify posts the message with the bearer token. A 401 maps to
// ErrUnauthorized; every other failure wraps ErrUnavailable.
func (c *HTTPClient) Classify(ctx context.Context, token string, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.messagePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(snippet))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: success flag not set", ErrUnavailable)
	}

	return &out, nil
}
