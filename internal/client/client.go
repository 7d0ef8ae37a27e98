// Package client talks to the console's menu and page endpoints.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/menu"
)

const (
	// MenuPath is the endpoint returning the menu as [[path, label], ...].
	MenuPath = "/get_menu"
	// PagePrefix and PageSuffix address a fragment: /get_page/{path}.html.
	PagePrefix = "/get_page/"
	PageSuffix = ".html"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client fetches menus and page fragments from a console server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the server at baseURL (e.g. "http://127.0.0.1:8880").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageURL returns the server-relative URL of the fragment for path. The path
// is used as given, without escaping.
func PageURL(path string) string {
	return PagePrefix + path + PageSuffix
}

// Menu fetches and decodes the menu.
func (c *Client) Menu(ctx context.Context) (menu.Menu, error) {
	body, err := c.get(ctx, MenuPath)
	if err != nil {
		return nil, err
	}
	var m menu.Menu
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decoding menu: %w", err)
	}
	return m, nil
}

// Index fetches the shell page served at "/".
func (c *Client) Index(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Page fetches the raw fragment for path.
func (c *Client) Page(ctx context.Context, path string) (string, error) {
	body, err := c.get(ctx, PageURL(path))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.log.Debug("fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
