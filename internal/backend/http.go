package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// HTTPBackend talks to the sandbox runtime's process API over HTTP with
// bearer-token auth.
type HTTPBackend struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPBackend creates a backend client for the given API base URL.
func NewHTTPBackend(baseURL, token string) *HTTPBackend {
	return &HTTPBackend{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *HTTPBackend) StartProcess(ctx context.Context, command string) (*types.ProcessHandle, error) {
	body, _ := json.Marshal(map[string]string{"cmd": command})

	var handle types.ProcessHandle
	if err := b.do(ctx, "POST", "/processes", bytes.NewReader(body), &handle); err != nil {
		return nil, fmt.Errorf("start process: %w", err)
	}
	return &handle, nil
}

func (b *HTTPBackend) GetStatus(ctx context.Context, id string) (types.ProcessStatus, error) {
	var handle types.ProcessHandle
	if err := b.do(ctx, "GET", "/processes/"+id, nil, &handle); err != nil {
		return "", fmt.Errorf("get status for %s: %w", id, err)
	}
	return handle.Status, nil
}

func (b *HTTPBackend) GetLogs(ctx context.Context, id string) (*types.LogSnapshot, error) {
	var logs types.LogSnapshot
	if err := b.do(ctx, "GET", "/processes/"+id+"/logs", nil, &logs); err != nil {
		return nil, fmt.Errorf("get logs for %s: %w", id, err)
	}
	return &logs, nil
}

func (b *HTTPBackend) ListProcesses(ctx context.Context) ([]*types.ProcessHandle, error) {
	var handles []*types.ProcessHandle
	if err := b.do(ctx, "GET", "/processes", nil, &handles); err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return handles, nil
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode backend response: %w", err)
		}
	}
	return nil
}
