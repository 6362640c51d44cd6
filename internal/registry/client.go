// Package registry looks up packages in the npm registry search endpoint.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/favnpm/internal/log"
	"github.com/zjrosen/favnpm/internal/tracing"
)

// Package is one normalized search hit.
type Package struct {
	Name string
}

// Names returns the package names in display order.
func Names(pkgs []Package) []string {
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names
}

// Searcher performs registry lookups.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Package, error)
}

// Config locates the search endpoint.
type Config struct {
	BaseURL    string
	QueryParam string
	Size       int
	Timeout    time.Duration
}

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client is an HTTP Searcher.
type Client struct {
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
}

var _ Searcher = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracer sets the tracer used for search spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid registry URL: %w", err)
	}
	if cfg.QueryParam == "" {
		cfg.QueryParam = "text"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = tracing.Tracer()
	}
	return c, nil
}

// searchResponse accepts both the documented `items` key and the `objects`
// key used by registry.npmjs.org.
type searchResponse struct {
	Items   []searchItem `json:"items"`
	Objects []searchItem `json:"objects"`
}

type searchItem struct {
	Package struct {
		Name string `json:"name"`
	} `json:"package"`
}

// Search returns the packages matching query in registry order.
// An empty query returns no packages without contacting the registry.
func (c *Client) Search(ctx context.Context, query string) (pkgs []Package, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	ctx, span := tracing.StartClientSpan(ctx, c.tracer, tracing.SpanRegistrySearch,
		attribute.String(tracing.AttrQuery, query))
	defer func() {
		span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(pkgs)))
		tracing.EndSpan(span, err)
	}()

	reqURL, err := c.searchURL(query)
	if err != nil {
		return nil, &NetworkError{Op: "build request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &NetworkError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "search", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &NetworkError{Op: "search", StatusCode: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, &NetworkError{Op: "decode response", StatusCode: resp.StatusCode, Err: err}
	}

	items := body.Items
	if items == nil {
		items = body.Objects
	}

	pkgs = make([]Package, 0, len(items))
	for _, item := range items {
		if item.Package.Name == "" {
			continue
		}
		pkgs = append(pkgs, Package{Name: item.Package.Name})
	}

	log.Debug(log.CatSearch, "registry search", "query", query, "results", len(pkgs), "took", time.Since(start))
	return pkgs, nil
}

func (c *Client) searchURL(query string) (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(c.cfg.QueryParam, query)
	if c.cfg.Size > 0 {
		q.Set("size", strconv.Itoa(c.cfg.Size))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
