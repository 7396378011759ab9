package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/all-dot-files/tictoc/pkg/errors"
)

// Client is an API client for a tictoc server
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: token,
	}
}

// SetToken sets the bearer token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Start starts the remote timer for key.
func (c *Client) Start(ctx context.Context, key string) (StartResponse, error) {
	var resp StartResponse
	path, err := timerPath("api.Start", key)
	if err != nil {
		return resp, err
	}
	err = c.doRequest(ctx, http.MethodPost, path+"/start", nil, &resp)
	return resp, err
}

// Stop stops the remote timer for key.
func (c *Client) Stop(ctx context.Context, key string) (StopResponse, error) {
	var resp StopResponse
	path, err := timerPath("api.Stop", key)
	if err != nil {
		return resp, err
	}
	err = c.doRequest(ctx, http.MethodPost, path+"/stop", nil, &resp)
	return resp, err
}

// Elapsed reads the remote timer for key in unit. An empty unit means the
// server's default.
func (c *Client) Elapsed(ctx context.Context, key, unit string) (ElapsedResponse, error) {
	var resp ElapsedResponse
	path, err := timerPath("api.Elapsed", key)
	if err != nil {
		return resp, err
	}
	if unit != "" {
		path += "?unit=" + url.QueryEscape(unit)
	}
	err = c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

// Timers lists every timer on the server.
func (c *Client) Timers(ctx context.Context) ([]TimerView, error) {
	var timers []TimerView
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/timers", nil, &timers); err != nil {
		return nil, err
	}
	return timers, nil
}

// timerPath builds the URL path for key. Routes match the decoded path, so
// a key containing '/' cannot be addressed.
func timerPath(op, key string) (string, error) {
	if strings.Contains(key, "/") {
		return "", errors.Newf(errors.ErrInvalidInput, op, "timer key %q contains '/'", key).
			WithSuggestion("use a key without slashes for remote timers")
	}
	if key == "" {
		key = DefaultKeyParam
	}
	return "/api/v1/timers/" + url.PathEscape(key), nil
}

// doRequest performs an HTTP request. Error replies come back as
// *errors.AppError carrying the server's code.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Code != "" {
			return errors.New(apiErr.Code, "api."+method, apiErr.Error)
		}
		return errors.Newf(errors.ErrInternal, "api."+method, "request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
