package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the ddld HTTP API. It never retries and sets no
// request timeout: a call runs until the server answers or the
// transport fails.
type Client struct {
	addr       Address
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		addr:       NewAddress(baseURL),
		httpClient: &http.Client{},
	}
}

// NewClientWithHTTP lets callers supply their own transport.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{addr: NewAddress(baseURL), httpClient: hc}
}

func (c *Client) Address() Address {
	return c.addr
}

// SearchNodes runs a node query. The pattern is sent even when empty.
func (c *Client) SearchNodes(ctx context.Context, pattern string) ([]Node, error) {
	q := url.Values{}
	q.Set("pattern", pattern)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.addr.NodesQuery(q), nil)
	if err != nil {
		return nil, fmt.Errorf("ddld: creating search request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "search")
	if err != nil {
		return nil, err
	}

	nodes := []Node{}
	if err := json.Unmarshal(body, &nodes); err != nil {
		return nil, fmt.Errorf("ddld: parsing search response: %w", err)
	}
	return nodes, nil
}

// DeleteNode trashes a node by id.
func (c *Client) DeleteNode(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.addr.Node(id), nil)
	if err != nil {
		return fmt.Errorf("ddld: creating delete request: %w", err)
	}
	_, err = c.do(req, "delete "+id)
	return err
}

// AcquireNode asks the service to pull a node into its local cache.
func (c *Client) AcquireNode(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.addr.CacheItem(id), nil)
	if err != nil {
		return fmt.Errorf("ddld: creating acquire request: %w", err)
	}
	_, err = c.do(req, "acquire "+id)
	return err
}

// ScanPaths triggers a cache scan of the given remote paths and returns
// the response body untouched.
func (c *Client) ScanPaths(ctx context.Context, paths []string) (string, error) {
	form := url.Values{}
	for _, p := range paths {
		form.Add("acd_paths[]", p)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr.Cache(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("ddld: creating scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req, "scan")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Sync triggers a full cache reconciliation pass.
func (c *Client) Sync(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr.Cache(), nil)
	if err != nil {
		return fmt.Errorf("ddld: creating sync request: %w", err)
	}
	_, err = c.do(req, "sync")
	return err
}

// FetchLog returns the service's recent log records, oldest first.
func (c *Client) FetchLog(ctx context.Context) ([]LogRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.addr.Log(), nil)
	if err != nil {
		return nil, fmt.Errorf("ddld: creating log request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "log")
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("ddld: parsing log response: %w", err)
	}
	records := make([]LogRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := DecodeLogRecord(raw)
		if err != nil {
			log.Printf("warning: ddld: skipping log record %d: %v", i, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) do(req *http.Request, what string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ddld: %s request failed: %w", what, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ddld: reading %s response: %w", what, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ddld: %s returned %d: %s", what, resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
