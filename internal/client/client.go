// Package client talks to a json-server style /toys REST endpoint.
package client

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

	"github.com/idilsaglam/toyboard/internal/model"
)

const toysPath = "/toys"

// Client is safe for concurrent use; each call is one round trip with no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New returns a client rooted at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches every toy in server order.
func (c *Client) List(ctx context.Context) ([]model.Toy, error) {
	var toys []model.Toy
	if err := c.do(ctx, http.MethodGet, toysPath, nil, &toys); err != nil {
		return nil, fmt.Errorf("list toys: %w", err)
	}
	if toys == nil {
		toys = []model.Toy{}
	}
	return toys, nil
}

// Create posts nt and returns the stored toy with its server-assigned id.
func (c *Client) Create(ctx context.Context, nt model.NewToy) (model.Toy, error) {
	var toy model.Toy
	if err := c.do(ctx, http.MethodPost, toysPath, nt, &toy); err != nil {
		return model.Toy{}, fmt.Errorf("create toy: %w", err)
	}
	return toy, nil
}

// Like proposes a new likes count for id. The returned toy carries the
// count the server settled on, which need not equal likes.
func (c *Client) Like(ctx context.Context, id model.ID, likes int) (model.Toy, error) {
	var toy model.Toy
	path := toysPath + "/" + url.PathEscape(id.String())
	if err := c.do(ctx, http.MethodPatch, path, model.LikesPatch(likes), &toy); err != nil {
		return model.Toy{}, fmt.Errorf("like toy %s: %w", id, err)
	}
	return toy, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
