// Package favorites stores a chosen package in the favorites service.
package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/favnpm/internal/log"
	"github.com/zjrosen/favnpm/internal/tracing"
)

// Request is the body of a favorite submission.
type Request struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Committer persists favorites.
type Committer interface {
	Commit(ctx context.Context, req Request) Outcome
}

// Config locates the favorites endpoint.
type Config struct {
	URL     string
	Timeout time.Duration
}

const maxBodyBytes = 1 << 20

// Client is an HTTP Committer.
type Client struct {
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
	newID  func() string
}

var _ Committer = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracer sets the tracer used for commit spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithRequestIDFunc overrides request ID generation.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid favorites URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		cfg:   cfg,
		http:  &http.Client{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = tracing.Tracer()
	}
	return c, nil
}

type responseBody struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// Commit posts req and classifies the response. Once issued the request runs
// to completion or timeout: cancellation of ctx is not propagated.
func (c *Client) Commit(ctx context.Context, req Request) (out Outcome) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Timeout)
	defer cancel()

	requestID := c.newID()
	ctx, span := tracing.StartClientSpan(ctx, c.tracer, tracing.SpanFavoritesCommit,
		attribute.String(tracing.AttrPackageName, req.Name),
		attribute.String(tracing.AttrRequestID, requestID),
		attribute.String(tracing.AttrHTTPURL, c.cfg.URL),
	)
	defer func() {
		span.SetAttributes(attribute.String(tracing.AttrOutcome, out.Kind.String()))
		tracing.EndSpan(span, out.Err)
	}()

	payload, err := json.Marshal(req)
	if err != nil {
		return failed("", fmt.Errorf("encoding request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return failed("", fmt.Errorf("building request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.ErrorErr(log.CatFavorites, "commit request failed", err, "name", req.Name, "request_id", requestID)
		return failed("", fmt.Errorf("posting favorite: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	var body responseBody
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := body.Message
		if reason == "" {
			reason = DefaultFailureReason
		}
		log.Error(log.CatFavorites, "commit rejected", "name", req.Name, "status", resp.StatusCode,
			"message", reason, "request_id", requestID)
		return failed(reason, &StatusError{StatusCode: resp.StatusCode, Message: reason})
	}

	if body.Result == DuplicateMarker {
		log.Info(log.CatFavorites, "favorite already stored", "name", req.Name, "request_id", requestID)
		return Outcome{Kind: OutcomeDuplicate}
	}

	log.Info(log.CatFavorites, "favorite stored", "name", req.Name, "request_id", requestID)
	return Outcome{Kind: OutcomeAccepted}
}
