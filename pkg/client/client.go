package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// Client is an HTTP client for the sandwatch API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new sandwatch API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GatewayAnswer is the common shape of gateway-process responses: Found is
// false when no process matches the configured signature, which is a valid
// answer rather than an error.
type GatewayAnswer struct {
	Found     bool                 `json:"found"`
	Detail    string               `json:"detail,omitempty"`
	Process   *types.ProcessHandle `json:"process,omitempty"`
	Stdout    string               `json:"stdout,omitempty"`
	Stderr    string               `json:"stderr,omitempty"`
	LogsError string               `json:"logs_error,omitempty"`
}

// ProcessList is the /processes response.
type ProcessList struct {
	Count     int                   `json:"count"`
	Processes []types.ProcessRecord `json:"processes"`
}

// MountStatus fetches the current storage mount verdict.
func (c *Client) MountStatus(ctx context.Context) (*types.MountStatus, error) {
	var status types.MountStatus
	if err := c.get(ctx, "/status/mount", &status); err != nil {
		return nil, fmt.Errorf("mount status: %w", err)
	}
	return &status, nil
}

// BucketStatus fetches the control-plane bucket probe result.
func (c *Client) BucketStatus(ctx context.Context) (*types.BucketStatus, error) {
	var status types.BucketStatus
	if err := c.get(ctx, "/status/bucket", &status); err != nil {
		return nil, fmt.Errorf("bucket status: %w", err)
	}
	return &status, nil
}

// Processes lists the sandbox process table, logs included when asked.
func (c *Client) Processes(ctx context.Context, includeLogs bool) (*ProcessList, error) {
	path := "/processes"
	if includeLogs {
		path += "?logs=true"
	}
	var list ProcessList
	if err := c.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return &list, nil
}

// GatewayLogs fetches the gateway process and its log snapshot.
func (c *Client) GatewayLogs(ctx context.Context) (*GatewayAnswer, error) {
	var answer GatewayAnswer
	if err := c.get(ctx, "/processes/gateway/logs", &answer); err != nil {
		return nil, fmt.Errorf("gateway logs: %w", err)
	}
	return &answer, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
