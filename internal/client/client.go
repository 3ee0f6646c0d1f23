// Package client is a thin HTTP client for the echome API, used by the
// kitwatch CLI and integration tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"echome/internal/domain"
)

// Client talks to a running API server on behalf of one authenticated user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	Slug    string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Slug
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Slug != "" {
			return fmt.Errorf("%s %s: %w", method, path, &apiErr)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Token mints a development token for the given user.
func (c *Client) Token(ctx context.Context, userID string) (string, error) {
	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/token", map[string]string{"user_id": userID}, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// DraftAction applies one wizard action and returns the resulting state.
func (c *Client) DraftAction(ctx context.Context, action map[string]any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/v1/drafts/current/actions", action, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetDraft clears the server-side draft.
func (c *Client) ResetDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/drafts/current", nil, nil)
}

// Generate submits the current draft and returns the new job id.
func (c *Client) Generate(ctx context.Context) (string, error) {
	var resp struct {
		JobID  string `json:"job_id"`
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/kits/generate", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

// KitStatus fetches one job snapshot. Shaped as a poller.StatusFetcher.
func (c *Client) KitStatus(ctx context.Context, jobID string) (*domain.KitJob, error) {
	var job domain.KitJob
	if err := c.do(ctx, http.MethodGet, "/v1/kits/"+jobID+"/status", nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// BatchStatus fetches one batch snapshot. Shaped as a poller.BatchFetcher.
func (c *Client) BatchStatus(ctx context.Context, batchID string) (*domain.BatchJob, error) {
	var batch domain.BatchJob
	if err := c.do(ctx, http.MethodGet, "/v1/batches/"+batchID+"/status", nil, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ImportBatch submits source URLs for batch generation.
func (c *Client) ImportBatch(ctx context.Context, urls []string) (string, error) {
	var resp struct {
		BatchID string `json:"batch_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/batches/import", map[string]any{"urls": urls}, &resp); err != nil {
		return "", err
	}
	return resp.BatchID, nil
}
