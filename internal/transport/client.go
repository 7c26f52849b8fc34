package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"study/internal/logging"
)

// Config captures the settings needed to reach the backend.
type Config struct {
	BaseURL        string
	TimeoutSeconds int
	UserAgent      string
}

// HTTPDoer is the subset of *http.Client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends requests to the study backend. It holds no per-request state
// and is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient HTTPDoer
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a Client. A zero TimeoutSeconds leaves the timeout to
// the HTTP transport.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TimeoutSeconds: cfg.TimeoutSeconds,
			UserAgent:      strings.TrimSpace(cfg.UserAgent),
		},
	}
	httpClient := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client.httpClient = httpClient
	for _, opt := range opts {
		opt(client)
	}
	if client.logger == nil {
		client.logger = logging.NewNop()
	}
	client.logger = logging.NewComponentLogger(client.logger, "transport")
	return client
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Send issues exactly one HTTP call for req. Requests are never retried: the
// backend's POST endpoints are not idempotent. On failure the returned error
// is an *ErrorInfo.
func (c *Client) Send(ctx context.Context, req Request) (ParsedBody, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	logger := c.logger.With(
		logging.String(logging.FieldRequestID, requestID),
		logging.String("method", string(req.Method)),
		logging.String("path", req.Path),
	)

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return EmptyBody(), err
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Debug("request failed", logging.Error(err), logging.Duration("elapsed", time.Since(started)))
		return EmptyBody(), NetworkError(unwrapURLError(err))
	}
	defer resp.Body.Close()

	// Error bodies often carry the only useful diagnostic, so the body is
	// normalized before the status is inspected.
	parsed := NormalizeResponse(resp)
	logger.Debug("request completed",
		logging.Int("status", resp.StatusCode),
		logging.String("body_kind", parsed.Kind.String()),
		logging.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parsed, Classify(parsed, resp.StatusCode)
	}
	return parsed, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(string(req.Method)))
	if method == "" {
		method = string(MethodGet)
	}
	path := strings.TrimSpace(req.Path)
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	contentType := jsonContentType
	var body io.Reader
	if req.Body != nil {
		reader, bodyType, err := req.Body.encode()
		if err != nil {
			return nil, &ErrorInfo{Kind: KindMalformedBody, Message: fmt.Sprintf("Invalid request: %v", err), cause: err}
		}
		body = reader
		contentType = bodyType
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, NetworkError(err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	if c.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if token := strings.TrimSpace(req.Token); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// unwrapURLError drops the "Post <url>:" prefix net/http adds to faults.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
