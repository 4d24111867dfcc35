// Package api holds the typed HTTP clients the web tier uses to consume the
// REST API. One base client owns transport concerns (base URL, timeout,
// bearer credentials, envelope decoding); per-resource clients expose typed
// operations over it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/logger"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
	log     *logger.Logger
}

func NewClient(cfg Config, baseLog *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing api base url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     baseLog.With("client", "APIClient"),
	}, nil
}

// envelope mirrors the API response wrapper with the payload left raw so
// callers decode into their own type.
type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		ae := apierr.New(resp.StatusCode, env.Code, errors.New(env.Message))
		ae.Fields = env.Errors
		return ae
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

func listPath(resource string, page, pageSize int, search string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}
	return "/api/" + resource + "?" + q.Encode()
}
